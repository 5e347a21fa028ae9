package column

import (
	"github.com/colstream/orcvec"
	"github.com/colstream/orcvec/encoding"
	"github.com/colstream/orcvec/internal/bitstream"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
	"github.com/colstream/orcvec/vector"
)

// rowBuffer is the reader-owned byte arena a fillAll call appends decoded
// string/binary payloads into; every value returned from a fillAll
// aliases a slice of it, per spec.md section 3's "borrowed pointer,
// invalidated by the next call" rule. Reset at the start of every
// fillAll so the arena never grows without bound across many batches.
type rowBuffer struct {
	buf []byte
}

func (d *rowBuffer) reset() {
	d.buf = d.buf[:0]
}

func (d *rowBuffer) read(r *bitstream.Reader, length int) ([]byte, error) {
	start := len(d.buf)
	d.buf = append(d.buf, make([]byte, length)...)
	if err := bitstream.ReadFull(r, d.buf[start:]); err != nil {
		return nil, err
	}
	return d.buf[start : start+length], nil
}

// directBytesReader decodes a DATA stream of raw bytes alongside a
// LENGTH stream of byte counts into a vector.BytesBatch — the shape
// shared by STRING's direct encoding (spec.md section 4.7), BINARY
// (spec.md section 4.10), and the substrate CHAR/VARCHAR build on
// (spec.md section 4.9). Grounded on the teacher's stringDirectV2Reader
// (orc/column/string.go): a length-prefixed read off a raw data stream,
// generalized from copying each value into its own Go string
// (`r.data.NextString(l)`) into slicing a reusable arena so the batch
// model's borrowed-pointer contract holds.
type directBytesReader struct {
	columnID uint32
	hasNulls bool

	present  *presence
	data     *bitstream.Reader
	length   unsignedIntDecoder
	rowBuffer rowBuffer

	b *vector.BytesBatch
}

// unsignedIntDecoder is satisfied by either RLE generation's unsigned
// decoder; LENGTH and DICTIONARY index streams are always unsigned
// regardless of the column's own signedness (spec.md section 4.3).
type unsignedIntDecoder interface {
	NextUnsigned() (uint64, error)
}

func newUnsignedIntDecoder(enc schema.ColumnEncoding, r *bitstream.Reader) unsignedIntDecoder {
	if enc.Kind.IsV2() {
		return encoding.NewIntRLEv2Decoder(r, false)
	}
	return &v1Unsigned{d: encoding.NewIntRLEv1Decoder(r)}
}

// v1Unsigned adapts IntRLEv1Decoder (which always decodes zigzag-signed
// values, the only representation RLE v1 has) to the NextUnsigned shape
// LENGTH and dictionary index (DATA) streams need; a negative length/index
// is Corrupt.
type v1Unsigned struct {
	d *encoding.IntRLEv1Decoder
}

func (u *v1Unsigned) NextUnsigned() (uint64, error) {
	v, err := u.d.Next()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, orcvec.NewError(orcvec.Corrupt, "negative length/index %d in RLE v1 stream", v)
	}
	return uint64(v), nil
}

func newDirectBytesReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*directBytesReader, error) {
	data := openStream(ss, t.ColumnID, schema.DATA)
	if data == nil {
		return nil, orcvec.NewError(orcvec.Corrupt, "column %d: missing DATA stream", t.ColumnID)
	}
	lengthStream := openStream(ss, t.ColumnID, schema.LENGTH)
	if lengthStream == nil {
		return nil, orcvec.NewError(orcvec.Corrupt, "column %d: missing LENGTH stream", t.ColumnID)
	}

	r := &directBytesReader{
		columnID: t.ColumnID,
		present:  newPresence(ss, t.ColumnID),
		data:     data,
		length:   newUnsignedIntDecoder(enc, lengthStream),
		b:        vector.NewBytesBatch(capacity),
	}
	r.hasNulls = r.present.hasStream()
	return r, nil
}

func (r *directBytesReader) batch() vector.Batch { return r.b }

func (r *directBytesReader) Next(n int) (int, error) {
	return r.fillAll(n, nil)
}

func (r *directBytesReader) fillAll(n int, parentPresent []bool) (int, error) {
	r.rowBuffer.reset()
	present := make([]bool, n)
	populated := 0
	for i := 0; i < n; i++ {
		if parentPresent != nil && !parentPresent[i] {
			present[i] = false
			populated++
			continue
		}
		p, err := r.readRowPresence()
		if err != nil {
			if isCleanEOF(err) {
				break
			}
			return populated, err
		}
		present[i] = p
		if p {
			l, err := r.length.NextUnsigned()
			if err != nil {
				if isCleanEOF(err) {
					break
				}
				return populated, err
			}
			v, err := r.rowBuffer.read(r.data, int(l))
			if err != nil {
				return populated, err
			}
			r.b.Values[i] = v
		}
		populated++
	}
	r.b.Fill(populated, present[:populated])
	return populated, nil
}

func (r *directBytesReader) readRowPresence() (bool, error) {
	if !r.hasNulls {
		return true, nil
	}
	return r.present.next()
}

func (r *directBytesReader) Skip(n int) error {
	_, err := r.fillAll(n, nil)
	return err
}

func (r *directBytesReader) Close() error { return nil }

// StringDirectColumnReader decodes a STRING column whose stripe encoding
// is DIRECT/DIRECT_V2 (spec.md section 4.7).
type StringDirectColumnReader struct{ *directBytesReader }

// NewStringDirectColumnReader builds a reader for t over ss.
func NewStringDirectColumnReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*StringDirectColumnReader, error) {
	r, err := newDirectBytesReader(t, enc, ss, capacity)
	if err != nil {
		return nil, err
	}
	return &StringDirectColumnReader{r}, nil
}

// Batch returns the reader's decoded batch.
func (r *StringDirectColumnReader) Batch() *vector.BytesBatch { return r.b }
