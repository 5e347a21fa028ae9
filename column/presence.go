// Package column implements the per-type column readers (spec.md section
// 4.5-4.12): the null/presence layer every reader shares, one reader per
// leaf type, struct composition, and the builder that walks a schema tree
// to assemble a reader graph over a stripe's streams. Grounded throughout
// on the teacher's orc/column package — same struct-embeds-base-reader
// shape, same "decode presence, then decode data for present rows" two
// phase Next loop (orc/column/int.go, string.go, struct.go) — generalized
// from its per-row api.Value output into the columnar vector.Batch model
// spec.md section 3 requires, and driven by stripestream.StripeStreams
// instead of a protobuf-described file handle.
package column

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/colstream/orcvec/encoding"
	"github.com/colstream/orcvec/internal/bitstream"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
)

var logger = logrus.StandardLogger()

// SetLogLevel adjusts the package's trace verbosity.
func SetLogLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// presence wraps a column's optional PRESENT stream. A column with no
// PRESENT stream (schema.Type with no nulls possible in this stripe) has
// presence.dec == nil and every row is present without consuming
// anything (spec.md section 4.5 / section 6).
type presence struct {
	dec *encoding.BoolRLEDecoder
}

func newPresence(ss stripestream.StripeStreams, columnID uint32) *presence {
	s, ok := ss.Stream(columnID, schema.PRESENT)
	if !ok {
		return &presence{}
	}
	return &presence{dec: encoding.NewBoolRLEDecoder(bitstream.New(s))}
}

func (p *presence) hasStream() bool { return p.dec != nil }

// next returns whether the next row is present, consuming one bit of the
// PRESENT stream if one exists.
func (p *presence) next() (bool, error) {
	if p.dec == nil {
		return true, nil
	}
	return p.dec.Next()
}

// byteReaderFrom adapts a stripestream.SeekableByteStream into the
// io.ByteReader (and, where needed, io.Reader) every decoder in package
// encoding consumes.
func byteReaderFrom(s stripestream.SeekableByteStream) *bitstream.Reader {
	return bitstream.New(s)
}

// openStream fetches and wraps a named stream, or returns a nil reader if
// the column has no such stream for this stripe (e.g. a DICTIONARY_DATA
// stream when DictionarySize is 0).
func openStream(ss stripestream.StripeStreams, columnID uint32, kind schema.StreamKind) *bitstream.Reader {
	s, ok := ss.Stream(columnID, kind)
	if !ok {
		return nil
	}
	return byteReaderFrom(s)
}

var _ io.ByteReader = (*bitstream.Reader)(nil)
