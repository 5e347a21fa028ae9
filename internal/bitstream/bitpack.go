package bitstream

import (
	"io"

	"github.com/pkg/errors"
)

// WidthDecoding is the set of widths the 5-bit width-encoding field can name
// (spec.md section 4.1). Index into WidthDecoding by the 5-bit code to get
// the width; widthEncoding is the reverse lookup, with no entry where a
// width isn't a legal code point (e.g. 25, 27, 29, 31).
var WidthDecoding = [32]int{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
	17, 18, 19, 20, 21, 22, 23, 24, 26, 28, 30, 32, 40, 48, 56, 64,
}

// widthEncoding maps a legal bit width to its 5-bit code; widths not in
// WidthDecoding are absent (zero value 0, which callers must not mistake
// for a real code — use EncodeWidth, which errors instead).
var widthEncoding = buildWidthEncoding()

func buildWidthEncoding() map[int]int {
	m := make(map[int]int, len(WidthDecoding))
	for code, width := range WidthDecoding {
		m[width] = code
	}
	return m
}

// EncodeWidth returns the 5-bit code for width, or an error if width is not
// one of the fixed set RLE v2 supports.
func EncodeWidth(width int) (int, error) {
	code, ok := widthEncoding[width]
	if !ok {
		return 0, errors.Errorf("corrupt: %d is not a valid RLE v2 bit width", width)
	}
	return code, nil
}

// ClosestFixedBits rounds width up to the nearest value RLE v2's bit-packer
// actually supports (WidthDecoding), the way the PATCHED_BASE patch list's
// combined gap+value width is padded before packing (spec.md section 4.3;
// original_source/src/RLEv2.cc's getClosestFixedBits). Values above 64 clamp
// to 64; callers that must reject an out-of-range width check that before
// calling this.
func ClosestFixedBits(width int) int {
	if width <= 0 {
		return 1
	}
	if width > 64 {
		return 64
	}
	for _, w := range WidthDecoding {
		if w >= width {
			return w
		}
	}
	return 64
}

// BitUnpacker unpacks a sequence of fixed-width, MSB-first-packed unsigned
// integers from an underlying byte stream, carrying a partially consumed
// byte across calls the way the teacher's readBits/forgetBits does
// (orc/encoding/int.go). A sub-encoding boundary in RLE v2 always starts a
// fresh byte, so callers construct a new BitUnpacker per sub-encoding run
// rather than resetting one in place.
type BitUnpacker struct {
	r        io.ByteReader
	width    int
	lastByte byte
	bitsLeft uint
}

// NewBitUnpacker returns an unpacker reading width-bit values from r.
func NewBitUnpacker(r io.ByteReader, width int) *BitUnpacker {
	return &BitUnpacker{r: r, width: width}
}

// Next returns the next width-bit unsigned value. Only ever called
// mid-block (the sub-encoding header is always read before the first
// BitUnpacker is constructed), so a read failure here — even a plain
// io.EOF — is a truncated stream, not a clean row boundary; re-wrapped
// as a fresh error so it isn't mistaken for one by a Cause-chain walk.
func (u *BitUnpacker) Next() (uint64, error) {
	var result uint64
	bitsNeeded := u.width
	for bitsNeeded > 0 {
		if u.bitsLeft == 0 {
			b, err := u.r.ReadByte()
			if err != nil {
				return 0, errors.Errorf("truncated bit-packed value: %v", err)
			}
			u.lastByte = b
			u.bitsLeft = 8
		}
		take := bitsNeeded
		if take > int(u.bitsLeft) {
			take = int(u.bitsLeft)
		}
		shift := u.bitsLeft - uint(take)
		mask := byte(1<<uint(take) - 1)
		bits := (u.lastByte >> shift) & mask
		result = (result << uint(take)) | uint64(bits)
		u.bitsLeft -= uint(take)
		bitsNeeded -= take
	}
	return result, nil
}

// NextN fills dst with len(dst) unpacked values.
func (u *BitUnpacker) NextN(dst []uint64) error {
	for i := range dst {
		v, err := u.Next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
