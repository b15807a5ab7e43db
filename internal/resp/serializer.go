package resp

import (
	"bytes"
	"strconv"
)

var (
	crlf           = []byte("\r\n")
	nilBulkString  = []byte("$-1\r\n")
	lineBreakBytes = "\r\n"
)

// Serialize converts v into the exact bytes sent over the wire
func Serialize(v Value, opts ...Option) ([]byte, error) {
	return Append(nil, v, opts...)
}

// Append appends the encoding of v to dst and returns the extended slice.
// On error dst is returned unchanged
func Append(dst []byte, v Value, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	out, err := appendValue(dst, v, 0, o.maxDepth)
	if err != nil {
		return dst, err
	}
	return out, nil
}

func appendValue(dst []byte, v Value, depth, maxDepth int) ([]byte, error) {
	switch v.Type {
	case TypeSimpleString, TypeError:
		if bytes.ContainsAny(v.Str, lineBreakBytes) {
			return dst, &InvalidValueError{Type: v.Type, Reason: "text contains CR or LF"}
		}
		return appendRaw(dst, v.Type, v.Str), nil

	case TypeInteger:
		return appendHeader(dst, TypeInteger, v.Integer), nil

	case TypeBulkString:
		if v.IsNull {
			return append(dst, nilBulkString...), nil
		}
		dst = appendHeader(dst, TypeBulkString, int64(len(v.Str)))
		dst = append(dst, v.Str...)
		return append(dst, crlf...), nil

	case TypeArray:
		if v.IsNull {
			return dst, &InvalidValueError{Type: TypeArray, Reason: "null arrays are not supported"}
		}
		if depth >= maxDepth {
			return dst, &InvalidValueError{
				Type:   TypeArray,
				Reason: "more than " + strconv.Itoa(maxDepth) + " nested arrays",
				Err:    ErrNestingTooDeep,
			}
		}

		var err error
		dst = appendHeader(dst, TypeArray, int64(len(v.Array)))
		for _, el := range v.Array {
			if dst, err = appendValue(dst, el, depth+1, maxDepth); err != nil {
				return dst, err
			}
		}
		return dst, nil
	}

	return dst, &InvalidValueError{Type: v.Type, Reason: "unknown type"}
}

// appendHeader writes the type prefix, numeric value, and CRLF
func appendHeader(dst []byte, prefix Type, n int64) []byte {
	dst = append(dst, byte(prefix))
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, crlf...)
}

// appendRaw writes the type prefix, raw bytes, and CRLF (for SimpleString and Error)
func appendRaw(dst []byte, prefix Type, b []byte) []byte {
	dst = append(dst, byte(prefix))
	dst = append(dst, b...)
	return append(dst, crlf...)
}
