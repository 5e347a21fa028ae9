package encoding

import "io"

// BoolRLEDecoder decodes a boolean stream (used for PRESENT/null masks,
// spec.md section 4.4): the underlying bytes are byte-RLE encoded, and
// each decoded byte packs 8 boolean values MSB-first. Grounded on the
// teacher's DecodeBools (orc/encoding/bool.go), which wraps DecodeByteRL
// and unpacks each byte into up to 8 bools.
type BoolRLEDecoder struct {
	bytes   *ByteRLEDecoder
	cur     byte
	bitsLeft uint
}

// NewBoolRLEDecoder returns a decoder reading from r.
func NewBoolRLEDecoder(r io.ByteReader) *BoolRLEDecoder {
	return &BoolRLEDecoder{bytes: NewByteRLEDecoder(r)}
}

// Next returns the next decoded boolean.
func (d *BoolRLEDecoder) Next() (bool, error) {
	if d.bitsLeft == 0 {
		b, err := d.bytes.Next()
		if err != nil {
			return false, err
		}
		d.cur = b
		d.bitsLeft = 8
	}
	d.bitsLeft--
	bit := (d.cur >> d.bitsLeft) & 1
	return bit != 0, nil
}

// NextN fills dst with len(dst) decoded booleans.
func (d *BoolRLEDecoder) NextN(dst []bool) error {
	for i := range dst {
		v, err := d.Next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
