package bitstream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadUvarint(t *testing.T) {
	// 300 as LEB128: 0xAC 0x02
	v, err := ReadUvarint(bytes.NewReader([]byte{0xAC, 0x02}))
	assert.NoError(t, err)
	assert.Equal(t, uint64(300), v)
}

func TestZigzag(t *testing.T) {
	cases := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.unsigned, ZigzagEncode(c.signed))
		assert.Equal(t, c.signed, ZigzagDecode(c.unsigned))
	}
}

func TestReadVarintZigzag(t *testing.T) {
	v, err := ReadVarintZigzag(bytes.NewReader([]byte{0x05})) // zigzag(5)=-3
	assert.NoError(t, err)
	assert.Equal(t, int64(-3), v)
}
