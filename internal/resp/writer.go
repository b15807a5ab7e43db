package resp

import (
	"bufio"
	"io"
)

// Encoder handles the serialization of RESP Value objects into an output stream
type Encoder struct {
	writer  *bufio.Writer
	scratch []byte
	opts    []Option
}

// NewEncoder initializes an Encoder with a buffered writer
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{
		writer: bufio.NewWriter(w),
		opts:   opts,
	}
}

// Write serializes a RESP Value into the buffer. Nothing is buffered when v is invalid,
// so a rejected value never leaves a half-written frame behind
func (e *Encoder) Write(v Value) error {
	b, err := Append(e.scratch[:0], v, e.opts...)
	if err != nil {
		return err
	}
	e.scratch = b

	_, err = e.writer.Write(b)
	return err
}

// Flush sends all buffered data to the underlying writer
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

// Buffered returns the number of bytes waiting for Flush
func (e *Encoder) Buffered() int {
	return e.writer.Buffered()
}
