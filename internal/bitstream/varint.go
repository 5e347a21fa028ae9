package bitstream

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxVarintBytes bounds a malformed varint (continuation bit never
// clearing) the way the teacher's ReadVUint effectively is bounded by a
// 64-bit accumulator overflowing; we bound explicitly instead of relying
// on wraparound, since spec.md section 8 requires Corrupt on malformed
// input rather than a silently wrong value.
const maxVarintBytes = 10

// ReadUvarint reads a base-128, little-endian, continuation-bit-in-MSB
// unsigned varint (LEB128), the wire format ORC uses for unsigned integer
// RLE v1 literals and RLE v2 length/header fields (spec.md section 4.2).
// Grounded on the teacher's encoding.ReadVUint (orc/encoding/encoding.go).
// Only ever called mid-block (after a header byte has already been
// consumed), so any read failure here — including an ordinary io.EOF —
// means the stream ended inside a value, not at a clean row boundary;
// the error is deliberately re-wrapped as a fresh value so it does not
// read as a boundary-clean io.EOF to a caller walking the Cause chain.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Errorf("truncated varint: %v", err)
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errors.New("corrupt: varint exceeds 10 bytes")
}

// ZigzagDecode maps an unsigned varint back to a signed value using ORC's
// zigzag scheme: even -> positive half, odd -> negative half. Grounded on
// the teacher's encoding.unZigzag / encoding/int.go UnZigzag.
func ZigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -(int64(u & 1))
}

// ZigzagEncode is the inverse of ZigzagDecode, kept alongside it since
// patch reconstruction in RLE v2 PATCHED_BASE re-zigzags an unzigzagged
// value after patching (spec.md section 4.3 step 6; teacher's readPatched
// in orc/encoding/int.go).
func ZigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ReadVarintZigzag reads an unsigned varint and zigzag-decodes it in one
// step — the representation integer RLE v1 uses for signed columns and
// RLE v2 DELTA's base value (spec.md section 4.3).
func ReadVarintZigzag(r io.ByteReader) (int64, error) {
	u, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return ZigzagDecode(u), nil
}

// ReadBigEndianUint64 reads n big-endian bytes (1..8) as an unsigned
// integer — the representation RLE v2 uses for SHORT_REPEAT and
// PATCHED_BASE base/patch values (spec.md section 4.3), which are packed
// into the smallest number of bytes that holds the value rather than
// always 8.
func ReadBigEndianUint64(r io.Reader, n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, errors.Errorf("corrupt: invalid big-endian width %d", n)
	}
	var buf [8]byte
	if err := ReadFull(r, buf[8-n:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
