// Package testfixture provides an in-memory stripestream.StripeStreams
// implementation built from literal []byte streams, so column and
// encoding tests can exercise a reader against a hand-built fixture
// without a writer or a real ORC file. Modeled on the teacher's
// orc/io.NewMockFile (orc/io/file.go), which backs its own tests with a
// byte slice standing in for a file; generalized here into a
// column/stream-keyed map since this core's tests drive the
// stripestream.StripeStreams contract directly rather than a file.
package testfixture

import (
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
)

type streamKey struct {
	columnID uint32
	kind     schema.StreamKind
}

// Streams is a hand-assembled stripestream.StripeStreams: set an
// encoding and zero or more stream payloads per column, then hand it to
// a column reader's Build/New constructor.
type Streams struct {
	encodings map[uint32]schema.ColumnEncoding
	streams   map[streamKey][]byte
	selected  []bool
}

// New returns an empty fixture.
func New() *Streams {
	return &Streams{
		encodings: make(map[uint32]schema.ColumnEncoding),
		streams:   make(map[streamKey][]byte),
	}
}

// SetEncoding records the stripe encoding for columnID.
func (s *Streams) SetEncoding(columnID uint32, enc schema.ColumnEncoding) *Streams {
	s.encodings[columnID] = enc
	return s
}

// SetStream records a stream's raw bytes for (columnID, kind). Passing a
// nil slice is different from never calling SetStream: omit the call
// entirely to simulate a stream the stripe doesn't carry at all.
func (s *Streams) SetStream(columnID uint32, kind schema.StreamKind, data []byte) *Streams {
	s.streams[streamKey{columnID, kind}] = data
	return s
}

// SetSelected records which columns (by id) are selected; omit the call
// entirely to simulate "every column selected" (the default).
func (s *Streams) SetSelected(selected []bool) *Streams {
	s.selected = selected
	return s
}

// SelectedColumns implements stripestream.StripeStreams.
func (s *Streams) SelectedColumns() []bool { return s.selected }

// Encoding implements stripestream.StripeStreams.
func (s *Streams) Encoding(columnID uint32) schema.ColumnEncoding {
	return s.encodings[columnID]
}

// Stream implements stripestream.StripeStreams.
func (s *Streams) Stream(columnID uint32, kind schema.StreamKind) (stripestream.SeekableByteStream, bool) {
	data, ok := s.streams[streamKey{columnID, kind}]
	if !ok {
		return nil, false
	}
	return &byteStream{data: data}, true
}

// byteStream serves its whole payload as a single chunk, then reports
// end of stream; position providers are not exercised by these fixtures
// since nothing in this core seeks within a stream yet.
type byteStream struct {
	data []byte
	done bool
}

func (b *byteStream) Next() ([]byte, bool) {
	if b.done {
		return nil, false
	}
	b.done = true
	return b.data, true
}

func (b *byteStream) Seek(stripestream.PositionProvider) {}
