package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalApril/respwire/internal/resp"
)

func TestDecodeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("*2\r\n$5\r\nHello\r\n:3\r\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"decode"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1) \"Hello\"\n2) (integer) 3\n", out.String())
}

func TestDecodeMalformed(t *testing.T) {
	var out bytes.Buffer
	err := decode(strings.NewReader("$5\r\nHi\r\n"), &out)
	assert.ErrorIs(t, err, resp.ErrMalformedInput)
	assert.Empty(t, out.String())
}

func TestEncodeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"encode", "SET", "key", "Hello world!"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$12\r\nHello world!\r\n", out.String())
}
