// Package stripestream declares the two external collaborators the column
// reader core consumes and never constructs: the provider of decompressed,
// seekable per-(column, stream-kind) byte streams for one stripe, and the
// stream itself. Their implementations (stripe index, footer, postscript
// parsing, ZLIB/SNAPPY decompression) are out of scope (spec.md section 1);
// only the interfaces are specified here, mirroring how the teacher keeps
// orc/io.File a thin seek/clone contract that orc/stream builds decoders
// on top of (github.com/patrickhuang888/goorc orc/io/file.go).
package stripestream

import "github.com/colstream/orcvec/schema"

// SeekableByteStream is a cursor over decompressed bytes for one
// (column, stream kind) pair within a stripe.
type SeekableByteStream interface {
	// Next yields the next chunk of decompressed bytes, in order. false
	// means EOF; EOF is sticky once reported.
	Next() (chunk []byte, ok bool)

	// Seek rewinds to a checkpoint. Mandatory by interface; a forward-only
	// caller (this core never seeks to row, spec.md section 1 Non-goals)
	// may implement it as a no-op.
	Seek(checkpoint PositionProvider)
}

// PositionProvider carries whatever coordinates a SeekableByteStream
// implementation needs to rewind (stripe index entry positions); opaque to
// the core.
type PositionProvider interface {
	Next() uint64
}

// StripeStreams is the per-stripe provider of column streams and encoding
// metadata that the reader builder (column.Build) and every column reader
// consult.
type StripeStreams interface {
	// SelectedColumns reports, by column id, which columns the caller wants
	// materialized; unselected struct children are never instantiated and
	// their streams are never opened (spec.md section 4.12).
	SelectedColumns() []bool

	// Encoding returns the encoding chosen for columnID in this stripe.
	// Required for every non-root column; absence for a selected column is
	// a caller bug, not a format error.
	Encoding(columnID uint32) schema.ColumnEncoding

	// Stream returns the named stream for (columnID, kind), or ok=false if
	// it is absent. A missing PRESENT stream means "all rows present"
	// (spec.md section 6); a missing mandatory stream for a used column is
	// the caller's responsibility to surface as Corrupt when the column
	// reader asks for it and gets none.
	Stream(columnID uint32, kind schema.StreamKind) (s SeekableByteStream, ok bool)
}
