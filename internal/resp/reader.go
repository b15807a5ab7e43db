package resp

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	expectCRLF  = `"\r\n"`
	expectSigil = `one of '+', '-', ':', '$', '*'`
)

// nilBulkLength is the only negative length accepted, and only for bulk strings
var nilBulkLength = []byte("-1\r\n")

// Parse decodes b as exactly one RESP value. Bytes left over after the value are malformed input.
// The returned Value never aliases b
func Parse(b []byte, opts ...Option) (Value, error) {
	v, n, err := ParsePrefix(b, opts...)
	if err != nil {
		return Value{}, err
	}

	if n != len(b) {
		return Value{}, malformed(n, "end of input")
	}

	return v, nil
}

// ParsePrefix decodes the value at the start of b and reports how many bytes it occupied
func ParsePrefix(b []byte, opts ...Option) (Value, int, error) {
	p := parser{buf: b, maxDepth: buildOptions(opts).maxDepth}

	v, n, err := p.value(0, 0)
	if err != nil {
		return Value{}, 0, err
	}

	return v, n, nil
}

// parser is a read-only view over the input. The cursor is passed in and returned by
// every method instead of being stored, so a failed branch never moves shared state
type parser struct {
	buf      []byte
	maxDepth int
}

// value parses the value whose sigil is at off. depth counts the arrays enclosing it
func (p parser) value(off, depth int) (Value, int, error) {
	if off >= len(p.buf) {
		return Value{}, off, malformed(off, expectSigil)
	}

	switch t := Type(p.buf[off]); t {
	case TypeSimpleString, TypeError:
		return p.simpleString(t, off+1)
	case TypeInteger:
		return p.integer(off + 1)
	case TypeBulkString:
		return p.bulkString(off + 1)
	case TypeArray:
		return p.array(off+1, depth)
	}

	return Value{}, off, malformed(off, expectSigil)
}

// simpleString read Simple String and Error
func (p parser) simpleString(t Type, off int) (Value, int, error) {
	line, next, err := p.line(off)
	if err != nil {
		return Value{}, off, err
	}

	return Value{Type: t, Str: bytes.Clone(line)}, next, nil
}

func (p parser) integer(off int) (Value, int, error) {
	line, next, err := p.line(off)
	if err != nil {
		return Value{}, off, err
	}

	digits := line
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	if err := checkDigits(digits, off+len(line)-len(digits)); err != nil {
		return Value{}, off, err
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return Value{}, off, &MalformedInputError{Offset: off, Expected: "integer in int64 range", Err: err}
	}

	return MakeInteger(n), next, nil
}

func (p parser) bulkString(off int) (Value, int, error) {
	if bytes.HasPrefix(p.buf[off:], nilBulkLength) {
		return MakeNilBulkString(), off + len(nilBulkLength), nil
	}

	n, start, err := p.length(off)
	if err != nil {
		return Value{}, off, err
	}

	if len(p.buf)-start < n {
		return Value{}, off, malformed(start, fmt.Sprintf("%d bytes of bulk string content", n))
	}

	end := start + n
	if !bytes.HasPrefix(p.buf[end:], crlf) {
		return Value{}, off, malformed(end, expectCRLF)
	}

	return Value{Type: TypeBulkString, Str: bytes.Clone(p.buf[start:end])}, end + len(crlf), nil
}

func (p parser) array(off, depth int) (Value, int, error) {
	if depth >= p.maxDepth {
		return Value{}, off, &MalformedInputError{
			Offset:   off - 1,
			Expected: fmt.Sprintf("at most %d nested arrays", p.maxDepth),
			Err:      ErrNestingTooDeep,
		}
	}

	if off < len(p.buf) && p.buf[off] == '-' {
		return Value{}, off, malformed(off, "non-negative array length")
	}

	n, next, err := p.length(off)
	if err != nil {
		return Value{}, off, err
	}

	if n == 0 {
		return MakeArray(), next, nil
	}

	// the shortest value, "+\r\n", takes three bytes
	if n > (len(p.buf)-next)/3 {
		return Value{}, off, malformed(next, fmt.Sprintf("%d array elements", n))
	}

	elements := make([]Value, n)
	for i := range elements {
		if elements[i], next, err = p.value(next, depth+1); err != nil {
			return Value{}, off, err
		}
	}

	return Value{Type: TypeArray, Array: elements}, next, nil
}

// length reads a non-negative decimal length terminated by CRLF
func (p parser) length(off int) (int, int, error) {
	line, next, err := p.line(off)
	if err != nil {
		return 0, off, err
	}

	if err := checkDigits(line, off); err != nil {
		return 0, off, err
	}

	n, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, off, &MalformedInputError{Offset: off, Expected: "length in int range", Err: err}
	}

	return n, next, nil
}

// line returns the bytes from off up to the next CRLF and the offset just past it.
// A CR or LF that is not part of a CRLF pair is malformed
func (p parser) line(off int) ([]byte, int, error) {
	rest := p.buf[off:]

	i := bytes.IndexAny(rest, lineBreakBytes)
	if i < 0 {
		return nil, off, malformed(len(p.buf), expectCRLF)
	}

	if rest[i] != '\r' || i+1 >= len(rest) || rest[i+1] != '\n' {
		return nil, off, malformed(off+i, expectCRLF)
	}

	return rest[:i], off + i + len(crlf), nil
}

// checkDigits requires a non-empty run of ASCII digits; off is the position of digits[0]
func checkDigits(digits []byte, off int) error {
	if len(digits) == 0 {
		return malformed(off, "decimal digit")
	}

	for i, c := range digits {
		if c < '0' || c > '9' {
			return malformed(off+i, "decimal digit")
		}
	}

	return nil
}
