package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRLEv2Decoder_ShortRepeat(t *testing.T) {
	// 5 instances of 10000, width 2 bytes: header 0x0a, value 0x27 0x10.
	src := bytes.NewReader([]byte{0x0a, 0x27, 0x10})
	dec := NewIntRLEv2Decoder(src, false)

	for i := 0; i < 5; i++ {
		v, err := dec.NextUnsigned()
		assert.NoError(t, err)
		assert.Equal(t, uint64(10000), v)
	}
}

func TestIntRLEv2Decoder_Direct(t *testing.T) {
	// 4 values {1,2,3,4} packed at width 4: header 0x46 0x03, data 0x12 0x34.
	src := bytes.NewReader([]byte{0x46, 0x03, 0x12, 0x34})
	dec := NewIntRLEv2Decoder(src, false)

	got := make([]uint64, 4)
	for i := range got {
		v, err := dec.NextUnsigned()
		assert.NoError(t, err)
		got[i] = v
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, got)
}

func TestIntRLEv2Decoder_PatchedBase(t *testing.T) {
	// length 2, base values width 4 ({0,0} deltas), base 10 (bw=1 byte,
	// positive), one patch entry with patch_bit_width 24 + patch_gap_width
	// 3 = 27 bits, which is not itself a legal RLE v2 width: the patch
	// list must unpack at ClosestFixedBits(27) = 28 bits/entry, not 27.
	// The single patch (gap 0, patch value 5) rewrites index 0 to
	// 10 + (5 << 4) = 90; index 1 is left at the unpatched base, 10.
	//
	// header: sub=PATCHED_BASE(2), wCode=3 (width 4), length-1=1
	//   byte0 = 0b10_00011_0 = 0x86, byte1 (length low byte) = 0x01
	// byte2: bw-1=0, pwCode=23 (width 24) -> 0b000_10111 = 0x17
	// byte3: pgw-1=2 (pgw=3), pll=1 -> 0b010_00001 = 0x41
	// base: 0x0A (10, sign bit clear)
	// values (width 4, length 2, deltas {0,0}): 0x00
	// patch list (28 bits encoding gap=0,patch=5 as a 28-bit integer,
	// padded on the right to a byte boundary): 0x00 0x00 0x00 0x50
	src := bytes.NewReader([]byte{0x86, 0x01, 0x17, 0x41, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x50})
	dec := NewIntRLEv2Decoder(src, true)

	got := make([]int64, 2)
	for i := range got {
		v, err := dec.NextSigned()
		assert.NoError(t, err)
		got[i] = v
	}
	assert.Equal(t, []int64{90, 10}, got)
}

func TestIntRLEv2Decoder_Delta(t *testing.T) {
	// arithmetic sequence {5,7,9,11}: header 0xC2 0x03, base 0x0A (zigzag 5),
	// delta-base 0x04 (zigzag 2), then two packed magnitude-2 deltas 0xA0.
	src := bytes.NewReader([]byte{0xC2, 0x03, 0x0A, 0x04, 0xA0})
	dec := NewIntRLEv2Decoder(src, true)

	got := make([]int64, 4)
	for i := range got {
		v, err := dec.NextSigned()
		assert.NoError(t, err)
		got[i] = v
	}
	assert.Equal(t, []int64{5, 7, 9, 11}, got)
}
