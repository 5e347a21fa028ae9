package encoding

import (
	"io"

	"github.com/pkg/errors"

	"github.com/colstream/orcvec/internal/bitstream"
)

// maxLiteralRunV1 bounds a single RLE v1 literal block (header -128 would
// otherwise claim 128 literals, the format's actual maximum).
const maxLiteralRunV1 = 128

// IntRLEv1Decoder decodes the integer RLE v1 predecessor format (spec.md
// section 4.3): a signed control byte selects either a delta run (run
// length, a signed single-byte delta, and a zigzag-varint base) or a
// literal block (a zigzag varint per value). Every value is carried as
// int64; unsigned columns zigzag-decode the same wire representation ORC
// v1 always uses, so there is no separate unsigned variant. Grounded on
// the teacher's zigzag/varint primitives (orc/encoding/encoding.go,
// now internal/bitstream) applied to the v1 control-byte layout the
// teacher's column readers never exercised (the teacher's test corpus is
// v2-only) but which spec.md section 4.3 requires.
type IntRLEv1Decoder struct {
	r   io.ByteReader
	buf []int64
	pos int
}

// NewIntRLEv1Decoder returns a decoder reading from r.
func NewIntRLEv1Decoder(r io.ByteReader) *IntRLEv1Decoder {
	return &IntRLEv1Decoder{r: r}
}

// Next returns the next decoded signed value.
func (d *IntRLEv1Decoder) Next() (int64, error) {
	if d.pos >= len(d.buf) {
		if err := d.decodeRun(); err != nil {
			return 0, err
		}
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

// NextN fills dst with len(dst) decoded values.
func (d *IntRLEv1Decoder) NextN(dst []int64) error {
	for i := range dst {
		v, err := d.Next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (d *IntRLEv1Decoder) decodeRun() error {
	header, err := d.r.ReadByte()
	if err != nil {
		return errors.WithStack(err)
	}
	sh := int8(header)
	if sh >= 0 {
		runLen := int(sh) + minRepeatSize
		deltaByte, err := d.r.ReadByte()
		if err != nil {
			return errors.Errorf("truncated int rle v1 run: %v", err)
		}
		delta := int64(int8(deltaByte))
		base, err := bitstream.ReadVarintZigzag(d.r)
		if err != nil {
			return err
		}
		logger.Tracef("int rle v1: run of %d base %d delta %d", runLen, base, delta)
		d.buf = append(d.buf[:0], make([]int64, runLen)...)
		v := base
		for i := 0; i < runLen; i++ {
			d.buf[i] = v
			v += delta
		}
	} else {
		literalLen := -int(sh)
		if literalLen > maxLiteralRunV1 {
			return errors.Errorf("corrupt: int rle v1 literal run %d exceeds %d", literalLen, maxLiteralRunV1)
		}
		logger.Tracef("int rle v1: literal run of %d", literalLen)
		d.buf = append(d.buf[:0], make([]int64, literalLen)...)
		for i := 0; i < literalLen; i++ {
			v, err := bitstream.ReadVarintZigzag(d.r)
			if err != nil {
				return err
			}
			d.buf[i] = v
		}
	}
	d.pos = 0
	return nil
}
