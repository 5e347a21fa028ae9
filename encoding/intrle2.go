package encoding

import (
	"io"

	"github.com/pkg/errors"

	"github.com/colstream/orcvec/internal/bitstream"
)

// rleV2Sub is the 2-bit sub-encoding selector in an RLE v2 block's first
// byte (spec.md section 4.3).
type rleV2Sub byte

const (
	subShortRepeat rleV2Sub = 0
	subDirect      rleV2Sub = 1
	subPatchedBase rleV2Sub = 2
	subDelta       rleV2Sub = 3
)

// byteAndReader is what intrle2 needs from its source: single bytes for
// header fields, raw byte runs for fixed-width base/patch values.
type byteAndReader interface {
	io.ByteReader
	io.Reader
}

// IntRLEv2Decoder decodes integer RLE v2 (spec.md section 4.3): one
// 2-bit-tagged sub-encoding block at a time — SHORT_REPEAT, DIRECT,
// PATCHED_BASE, or DELTA — buffered and served through a cursor exactly
// like the byte/bool decoders above. Grounded on the teacher's
// IntRL2.Decode/readPatched/readBits (orc/encoding/int.go), reproduced
// field-for-field: the same header bit layouts, the same carried-bit-state
// unpacker (here internal/bitstream.BitUnpacker), and the same
// zigzag-at-the-end-of-the-block finalization (every sub-encoding appends
// the wire representation — zigzag-encoded when signed, literal when
// not — and only the final pass un-zigzags).
type IntRLEv2Decoder struct {
	r      byteAndReader
	signed bool
	buf    []uint64 // finalized: signed columns store UnZigzag'd bits reinterpreted as uint64
	pos    int
}

// NewIntRLEv2Decoder returns a decoder reading from r. signed selects
// whether decoded values are zigzag-unwrapped (integer columns) or taken
// literally (LENGTH/SECONDARY streams, which are always unsigned).
func NewIntRLEv2Decoder(r byteAndReader, signed bool) *IntRLEv2Decoder {
	return &IntRLEv2Decoder{r: r, signed: signed}
}

// NextSigned returns the next value as int64. Valid regardless of the
// decoder's signed flag; callers that know the column is unsigned should
// use NextUnsigned instead to avoid a needless reinterpretation.
func (d *IntRLEv2Decoder) NextSigned() (int64, error) {
	v, err := d.next()
	return int64(v), err
}

// NextUnsigned returns the next value as uint64.
func (d *IntRLEv2Decoder) NextUnsigned() (uint64, error) {
	return d.next()
}

func (d *IntRLEv2Decoder) next() (uint64, error) {
	if d.pos >= len(d.buf) {
		if err := d.decodeBlock(); err != nil {
			return 0, err
		}
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

func (d *IntRLEv2Decoder) decodeBlock() error {
	firstByte, err := d.r.ReadByte()
	if err != nil {
		return errors.WithStack(err)
	}
	sub := rleV2Sub(firstByte >> 6)

	var wire []uint64
	switch sub {
	case subShortRepeat:
		wire, err = d.decodeShortRepeat(firstByte)
	case subDirect:
		wire, err = d.decodeDirect(firstByte)
	case subPatchedBase:
		if !d.signed {
			return errors.New("corrupt: int rle v2 PATCHED_BASE on an unsigned stream")
		}
		wire, err = d.decodePatchedBase(firstByte)
	case subDelta:
		wire, err = d.decodeDelta(firstByte)
	default:
		return errors.Errorf("corrupt: int rle v2 sub-encoding %d not recognized", sub)
	}
	if err != nil {
		return err
	}

	d.buf = d.buf[:0]
	if d.signed {
		for _, w := range wire {
			d.buf = append(d.buf, uint64(bitstream.ZigzagDecode(w)))
		}
	} else {
		d.buf = append(d.buf, wire...)
	}
	d.pos = 0
	return nil
}

// decodeShortRepeat: byte0 = [2 bits sub][3 bits width-1][3 bits count-3].
func (d *IntRLEv2Decoder) decodeShortRepeat(firstByte byte) ([]uint64, error) {
	width := int(1 + (firstByte>>3)&0x07)
	repeatCount := int(3 + firstByte&0x07)
	logger.Tracef("int rle v2: short repeat count %d width %d", repeatCount, width)

	v, err := bitstream.ReadBigEndianUint64(d.r, width)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, repeatCount)
	for i := range out {
		out[i] = v
	}
	return out, nil
}

// decodeDirect: 2-byte header = [2 bits sub][5 bits W][9 bits length-1],
// followed by length values packed at width W.
func (d *IntRLEv2Decoder) decodeDirect(firstByte byte) ([]uint64, error) {
	b1, err := d.r.ReadByte()
	if err != nil {
		return nil, errors.Errorf("truncated int rle v2 direct header: %v", err)
	}
	header := uint16(firstByte)<<8 | uint16(b1)
	wCode := byte(header >> 9 & 0x1f)
	width, err := decodeWidth(wCode, false)
	if err != nil {
		return nil, err
	}
	length := int(header&0x1ff) + 1
	logger.Tracef("int rle v2: direct width %d length %d", width, length)

	unpacker := bitstream.NewBitUnpacker(d.r, width)
	out := make([]uint64, length)
	if err := unpacker.NextN(out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodePatchedBase: 4-byte header, then L values of width W (the
// base-relative magnitudes), then a patch list of PLL entries each
// (PGW+PW) bits wide. Grounded field-for-field on the teacher's
// readPatched.
func (d *IntRLEv2Decoder) decodePatchedBase(firstByte byte) ([]uint64, error) {
	rest := make([]byte, 3)
	if err := bitstream.ReadFull(d.r, rest); err != nil {
		return nil, err
	}
	header := [4]byte{firstByte, rest[0], rest[1], rest[2]}

	wCode := header[0] >> 1 & 0x1f
	width, err := decodeWidth(wCode, false)
	if err != nil {
		return nil, err
	}
	length := int(uint16(header[0])&0x01<<8|uint16(header[1])) + 1
	bw := int(header[2]>>5&0x07) + 1
	pwCode := header[2] & 0x1f
	pw, err := decodeWidth(pwCode, false)
	if err != nil {
		return nil, err
	}
	pgw := int(header[3]>>5&0x07) + 1
	if pw+pgw > 64 {
		return nil, errors.New("corrupt: int rle v2 patch width + gap width must be <= 64")
	}
	pll := int(header[3] & 0x1f)

	baseBytes := make([]byte, bw)
	if err := bitstream.ReadFull(d.r, baseBytes); err != nil {
		return nil, err
	}
	neg := baseBytes[0]>>7 == 1
	baseBytes[0] &= 0x7f
	var ubase uint64
	for i := 0; i < bw; i++ {
		ubase |= uint64(baseBytes[i]) << uint(8*(bw-i-1))
	}
	base := int64(ubase)
	if neg {
		base = -base
	}
	logger.Tracef("int rle v2: patched base width %d length %d bw %d pw %d pgw %d pll %d base %d",
		width, length, bw, pw, pgw, pll, base)

	values := make([]uint64, length)
	unpacker := bitstream.NewBitUnpacker(d.r, width)
	for i := range values {
		delta, err := unpacker.Next()
		if err != nil {
			return nil, err
		}
		values[i] = bitstream.ZigzagEncode(base + int64(delta))
	}

	patchUnpacker := bitstream.NewBitUnpacker(d.r, bitstream.ClosestFixedBits(pw+pgw))
	mark := 0
	for i := 0; i < pll; i++ {
		pp, err := patchUnpacker.Next()
		if err != nil {
			return nil, err
		}
		gap := int(pp >> uint(pw))
		patch := pp & (1<<uint(pw) - 1)
		// A gap of 255 is the largest value a single patch-list entry can
		// carry; when the value being skipped past needs no patch bits at
		// all, the encoder emits gap=255, patch=0 and relies on the next
		// entry continuing the accumulation rather than writing early.
		for gap == 255 && patch == 0 && i+1 < pll {
			mark += 255
			i++
			pp, err = patchUnpacker.Next()
			if err != nil {
				return nil, err
			}
			gap = int(pp >> uint(pw))
			patch = pp & (1<<uint(pw) - 1)
		}
		mark += gap
		if mark >= len(values) {
			return nil, errors.Errorf("corrupt: int rle v2 patch mark %d out of range (length %d)", mark, len(values))
		}

		v := bitstream.ZigzagDecode(values[mark])
		v -= base
		v |= int64(patch << uint(width))
		v += base
		values[mark] = bitstream.ZigzagEncode(v)
	}

	return values, nil
}

// decodeDelta: 2-byte header = [2 bits sub][5 bits W][9 bits length-1],
// a base value (varint, zigzag if signed), a signed varint delta-base,
// then (length-2) deltas of width W (or none at all if W==0, meaning a
// constant delta run).
func (d *IntRLEv2Decoder) decodeDelta(firstByte byte) ([]uint64, error) {
	b1, err := d.r.ReadByte()
	if err != nil {
		return nil, errors.Errorf("truncated int rle v2 delta header: %v", err)
	}
	width, err := decodeWidth(firstByte>>1&0x1f, true)
	if err != nil {
		return nil, err
	}
	length := int(firstByte)&0x01<<8 | int(b1)
	length++

	var ubase uint64
	var base int64
	if d.signed {
		base, err = bitstream.ReadVarintZigzag(d.r)
		if err != nil {
			return nil, err
		}
		ubase = bitstream.ZigzagEncode(base)
	} else {
		ubase, err = bitstream.ReadUvarint(d.r)
		if err != nil {
			return nil, err
		}
	}
	logger.Tracef("int rle v2: delta length %d width %d base %d", length, width, base)

	deltaBase, err := bitstream.ReadVarintZigzag(d.r)
	if err != nil {
		return nil, err
	}

	out := make([]uint64, 0, length)
	out = append(out, ubase)
	if d.signed {
		out = append(out, bitstream.ZigzagEncode(base+deltaBase))
	} else if deltaBase >= 0 {
		out = append(out, ubase+uint64(deltaBase))
	} else {
		out = append(out, ubase-uint64(-deltaBase))
	}

	var unpacker *bitstream.BitUnpacker
	if width > 0 {
		unpacker = bitstream.NewBitUnpacker(d.r, width)
	}
	for i := 2; i < length; i++ {
		if width == 0 {
			// fixed delta: every step repeats the same delta-base
			if d.signed {
				prev := bitstream.ZigzagDecode(out[len(out)-1])
				out = append(out, bitstream.ZigzagEncode(prev+deltaBase))
			} else if prev := out[len(out)-1]; deltaBase >= 0 {
				out = append(out, prev+uint64(deltaBase))
			} else {
				out = append(out, prev-uint64(-deltaBase))
			}
			continue
		}
		delta, err := unpacker.Next()
		if err != nil {
			return nil, err
		}
		if d.signed {
			prev := bitstream.ZigzagDecode(out[len(out)-1])
			if deltaBase >= 0 {
				out = append(out, bitstream.ZigzagEncode(prev+int64(delta)))
			} else {
				out = append(out, bitstream.ZigzagEncode(prev-int64(delta)))
			}
		} else {
			prev := out[len(out)-1]
			if deltaBase >= 0 {
				out = append(out, prev+delta)
			} else {
				out = append(out, prev-delta)
			}
		}
	}
	return out, nil
}

// decodeWidth maps a 5-bit width code to a bit width, honoring RLE v2's
// one exception: code 0 in a DELTA header means "no width, fixed delta"
// rather than width 1.
func decodeWidth(code byte, delta bool) (int, error) {
	if int(code) >= len(bitstream.WidthDecoding) {
		return 0, errors.Errorf("corrupt: int rle v2 width code %d out of range", code)
	}
	if code == 0 && delta {
		return 0, nil
	}
	return bitstream.WidthDecoding[code], nil
}
