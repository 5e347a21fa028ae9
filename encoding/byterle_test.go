package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestByteRLEDecoder_RunThenLiteral(t *testing.T) {
	// run: header 0x00 -> 3 repeats of 0x05; literal: header 0xFD (-3) -> 3 raw bytes.
	src := bytes.NewReader([]byte{0x00, 0x05, 0xFD, 0x01, 0x02, 0x03})
	dec := NewByteRLEDecoder(src)

	got := make([]byte, 6)
	assert.NoError(t, dec.NextN(got))
	assert.Equal(t, []byte{5, 5, 5, 1, 2, 3}, got)

	_, err := dec.Next()
	assert.Equal(t, io.EOF, errors.Cause(err), "expected a clean EOF at the end of the stream")
}

func TestByteRLEDecoder_TruncatedLiteralIsNotCleanEOF(t *testing.T) {
	// literal header claims 3 bytes but only 1 follows.
	src := bytes.NewReader([]byte{0xFD, 0x01})
	dec := NewByteRLEDecoder(src)
	err := dec.NextN(make([]byte, 3))
	assert.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}
