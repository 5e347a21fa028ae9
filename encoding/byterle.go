// Package encoding implements the run-length and bit-packed decoders
// spec.md section 4.3/4.4 names: byte RLE, boolean RLE (built on byte
// RLE), and integer RLE v1/v2. Every decoder here reads from an
// io.ByteReader (satisfied by *bitstream.Reader) and has no notion of
// chunk boundaries or decompression — that is the bitstream layer's job.
package encoding

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger()

// SetLogLevel adjusts the package's trace verbosity, mirroring the
// teacher's column.SetLogLevel / the logrus idiom used throughout
// orc/encoding and orc/column.
func SetLogLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// minRepeatSize is the shortest run the encoder ever emits; used in the
// decoder's header-byte arithmetic (the teacher's MIN_REPEAT_SIZE in
// orc/encoding/byte.go).
const minRepeatSize = 3

// ByteRLEDecoder pulls one decoded byte at a time from a byte-RLE stream,
// decoding a fresh run into an internal buffer whenever the caller has
// consumed the current one. This mirrors the teacher's split between a
// decoder that decodes one run/block at a time (orc/encoding, the
// Decode-style calls) and a stream-level reader that buffers the block and
// serves values out of it with a cursor (orc/stream/int_reader.go's
// IntRLV2Reader.pos) — the two are one type here since byte RLE has no
// sub-encoding variety to warrant separating them.
type ByteRLEDecoder struct {
	r   io.ByteReader
	buf []byte
	pos int
}

// NewByteRLEDecoder returns a decoder reading from r.
func NewByteRLEDecoder(r io.ByteReader) *ByteRLEDecoder {
	return &ByteRLEDecoder{r: r}
}

// Next returns the next decoded byte, decoding a new run from r if the
// current one is exhausted.
func (d *ByteRLEDecoder) Next() (byte, error) {
	if d.pos >= len(d.buf) {
		if err := d.decodeRun(); err != nil {
			return 0, err
		}
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

// NextN fills dst with len(dst) decoded bytes.
func (d *ByteRLEDecoder) NextN(dst []byte) error {
	for i := range dst {
		v, err := d.Next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// decodeRun reads one control byte and the run/literal it introduces.
// Grounded on the teacher's DecodeByteRL (orc/encoding/byte.go): a header
// byte read as signed int8; non-negative means a run of header+3 repeats
// of the following byte, negative means a literal run of -header raw
// bytes.
func (d *ByteRLEDecoder) decodeRun() error {
	header, err := d.r.ReadByte()
	if err != nil {
		return errors.WithStack(err)
	}
	sh := int8(header)
	if sh >= 0 {
		runLen := int(sh) + minRepeatSize
		v, err := d.r.ReadByte()
		if err != nil {
			return errors.Errorf("truncated byte rle run: %v", err)
		}
		logger.Tracef("byte rle: run of %d value %d", runLen, v)
		d.buf = append(d.buf[:0], make([]byte, runLen)...)
		for i := range d.buf {
			d.buf[i] = v
		}
	} else {
		literalLen := -int(sh)
		logger.Tracef("byte rle: literal run of %d", literalLen)
		d.buf = append(d.buf[:0], make([]byte, literalLen)...)
		for i := 0; i < literalLen; i++ {
			v, err := d.r.ReadByte()
			if err != nil {
				return errors.Errorf("truncated byte rle literal: %v", err)
			}
			d.buf[i] = v
		}
	}
	d.pos = 0
	return nil
}
