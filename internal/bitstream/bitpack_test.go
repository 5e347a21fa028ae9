package bitstream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitUnpacker_Width4(t *testing.T) {
	// {1,2,3,4} packed at width 4, MSB-first: 0001 0010 0011 0100.
	src := bytes.NewReader([]byte{0x12, 0x34})
	u := NewBitUnpacker(src, 4)

	got := make([]uint64, 4)
	assert.NoError(t, u.NextN(got))
	assert.Equal(t, []uint64{1, 2, 3, 4}, got)
}

func TestEncodeWidth_RoundTrip(t *testing.T) {
	for code, width := range WidthDecoding {
		got, err := EncodeWidth(width)
		assert.NoError(t, err)
		assert.Equal(t, code, got)
	}
}

func TestEncodeWidth_Invalid(t *testing.T) {
	_, err := EncodeWidth(25)
	assert.Error(t, err)
}
