package resp

import (
	"bytes"
	"strconv"
	"strings"
)

// Type is the sigil that opens every RESP value on the wire
type Type byte

const (
	TypeSimpleString Type = '+'
	TypeError        Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
)

// Valid reports whether t is one of the five supported sigils
func (t Type) Valid() bool {
	switch t {
	case TypeSimpleString, TypeError, TypeInteger, TypeBulkString, TypeArray:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk string"
	case TypeArray:
		return "array"
	}
	return "invalid type " + strconv.QuoteRune(rune(t))
}

// Value is a single RESP value. Type selects which of the payload fields is meaningful
type Value struct {
	Str     []byte  // SimpleString, Error, BulkString
	Array   []Value // Array
	Integer int64   // Integer
	Type    Type
	IsNull  bool // nil BulkString
}

// Equal reports whether v and o carry the same variant and recursively equal payloads.
// A nil BulkString is never equal to an empty one; nil and empty slices are otherwise interchangeable
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}

	switch v.Type {
	case TypeSimpleString, TypeError:
		return bytes.Equal(v.Str, o.Str)
	case TypeInteger:
		return v.Integer == o.Integer
	case TypeBulkString:
		if v.IsNull || o.IsNull {
			return v.IsNull == o.IsNull
		}
		return bytes.Equal(v.Str, o.Str)
	case TypeArray:
		if v.IsNull != o.IsNull || len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	}

	return false
}

// String renders v in a redis-cli like form, used for diagnostics
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb, 0)
	return sb.String()
}

func (v Value) format(sb *strings.Builder, indent int) {
	switch v.Type {
	case TypeSimpleString:
		sb.Write(v.Str)
	case TypeError:
		sb.WriteString("(error) ")
		sb.Write(v.Str)
	case TypeInteger:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(v.Integer, 10))
	case TypeBulkString:
		if v.IsNull {
			sb.WriteString("(nil)")
			return
		}
		sb.WriteString(strconv.Quote(string(v.Str)))
	case TypeArray:
		if len(v.Array) == 0 {
			sb.WriteString("(empty array)")
			return
		}
		for i, el := range v.Array {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", indent))
			}
			prefix := strconv.Itoa(i+1) + ") "
			sb.WriteString(prefix)
			el.format(sb, indent+len(prefix))
		}
	default:
		sb.WriteString("(" + v.Type.String() + ")")
	}
}
