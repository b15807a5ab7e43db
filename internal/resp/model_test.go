package resp_test

import (
	"testing"

	"github.com/eternalApril/respwire/internal/resp"
)

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b resp.Value
		want bool
	}{
		{"Same simple string", resp.MakeSimpleString("OK"), resp.MakeSimpleString("OK"), true},
		{"Simple string vs error", resp.MakeSimpleString("OK"), resp.MakeError("OK"), false},
		{"Simple string vs bulk string", resp.MakeSimpleString("OK"), resp.MakeBulkString("OK"), false},
		{"Different integers", resp.MakeInteger(1), resp.MakeInteger(2), false},
		{"Null vs empty bulk string", resp.MakeNilBulkString(), resp.MakeBulkString(""), false},
		{"Null vs null bulk string", resp.MakeNilBulkString(), resp.MakeNilBulkString(), true},
		{"Nil vs empty bulk bytes", resp.MakeBulkBytes(nil), resp.MakeBulkString(""), true},
		{"Nil vs empty array", resp.Value{Type: resp.TypeArray}, resp.MakeArray(), true},
		{"Array length differs", resp.MakeArray(resp.MakeInteger(1)), resp.MakeArray(), false},
		{
			"Nested arrays equal",
			resp.MakeArray(resp.MakeArray(resp.MakeBulkString("x"))),
			resp.MakeArray(resp.MakeArray(resp.MakeBulkString("x"))),
			true,
		},
		{
			"Nested arrays differ",
			resp.MakeArray(resp.MakeArray(resp.MakeBulkString("x"))),
			resp.MakeArray(resp.MakeArray(resp.MakeNilBulkString())),
			false,
		},
		{"Unknown types", resp.Value{Type: '#'}, resp.Value{Type: '#'}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	v := resp.MakeArray(
		resp.MakeSimpleString("OK"),
		resp.MakeError("ERR boom"),
		resp.MakeInteger(7),
		resp.MakeNilBulkString(),
		resp.MakeArray(resp.MakeBulkString("a"), resp.MakeArray()),
	)

	want := "1) OK\n" +
		"2) (error) ERR boom\n" +
		"3) (integer) 7\n" +
		"4) (nil)\n" +
		"5) 1) \"a\"\n" +
		"   2) (empty array)"

	if got := v.String(); got != want {
		t.Errorf("String() got =\n%s\nwant =\n%s", got, want)
	}
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []resp.Type{
		resp.TypeSimpleString, resp.TypeError, resp.TypeInteger, resp.TypeBulkString, resp.TypeArray,
	} {
		if !typ.Valid() {
			t.Errorf("%v.Valid() = false", typ)
		}
	}

	if resp.Type('#').Valid() {
		t.Error("'#'.Valid() = true")
	}
}
