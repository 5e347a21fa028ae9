package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRLEv1Decoder_Run(t *testing.T) {
	// header 0x02 -> run of 5, delta byte 0xFF (-1), zigzag-varint base 0x14 (10).
	src := bytes.NewReader([]byte{0x02, 0xFF, 0x14})
	dec := NewIntRLEv1Decoder(src)

	got := make([]int64, 5)
	assert.NoError(t, dec.NextN(got))
	assert.Equal(t, []int64{10, 9, 8, 7, 6}, got)
}

func TestIntRLEv1Decoder_Literal(t *testing.T) {
	// header 0xFE (-2) -> literal run of 2, zigzag varints 0x0A (5), 0x05 (-3).
	src := bytes.NewReader([]byte{0xFE, 0x0A, 0x05})
	dec := NewIntRLEv1Decoder(src)

	got := make([]int64, 2)
	assert.NoError(t, dec.NextN(got))
	assert.Equal(t, []int64{5, -3}, got)
}
