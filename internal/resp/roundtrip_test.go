package resp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eternalApril/respwire/internal/resp"
)

var roundTripValues = []resp.Value{
	resp.MakeSimpleString("OK"),
	resp.MakeSimpleString(""),
	resp.MakeError("WRONGTYPE Operation against a key holding the wrong kind of value"),
	resp.MakeInteger(0),
	resp.MakeInteger(-9223372036854775808),
	resp.MakeInteger(9223372036854775807),
	resp.MakeNilBulkString(),
	resp.MakeBulkString(""),
	resp.MakeBulkString("Hello world!"),
	resp.MakeBulkBytes([]byte{0, '\r', '\n', 0xff}),
	resp.MakeArray(),
	resp.MakeCommand("SET", "key", "value"),
	resp.MakeArray(
		resp.MakeArray(
			resp.MakeArray(resp.MakeNilBulkString(), resp.MakeBulkString("")),
			resp.MakeInteger(-1),
		),
		resp.MakeArray(),
		resp.MakeError("ERR"),
	),
}

func TestRoundTrip(t *testing.T) {
	for _, v := range roundTripValues {
		b, err := resp.Serialize(v)
		if err != nil {
			t.Fatalf("Serialize(%#v) failed: %v", v, err)
		}

		got, err := resp.Parse(b)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", b, err)
		}

		if !got.Equal(v) {
			t.Errorf("round trip of %q got %#v, want %#v", b, got, v)
		}
	}
}

func FuzzParse(f *testing.F) {
	for _, v := range roundTripValues {
		b, err := resp.Serialize(v)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Add([]byte("$5\r\nHi\r\n"))
	f.Add([]byte("*-1\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := resp.Parse(data)
		if err != nil {
			if !errors.Is(err, resp.ErrMalformedInput) {
				t.Fatalf("Parse() error = %v, want %v", err, resp.ErrMalformedInput)
			}
			return
		}

		b, err := resp.Serialize(v)
		if err != nil {
			t.Fatalf("Serialize() of parsed value failed: %v", err)
		}

		again, err := resp.Parse(b)
		if err != nil {
			t.Fatalf("Parse() of re-serialized value failed: %v", err)
		}
		if !again.Equal(v) {
			t.Fatalf("re-parse got %#v, want %#v", again, v)
		}

		// simple strings and errors have exactly one encoding
		simple := v.Type == resp.TypeSimpleString || v.Type == resp.TypeError
		if simple && !bytes.Equal(b, data) {
			t.Fatalf("Serialize() = %q, input was %q", b, data)
		}
	})
}
