package column

import (
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
	"github.com/colstream/orcvec/vector"
)

// BinaryColumnReader decodes a BINARY column (spec.md section 4.10): the
// same LENGTH+DATA stream shape as STRING's direct encoding, with no
// UTF-8 semantics imposed on the bytes. Shares directBytesReader with
// StringDirectColumnReader rather than duplicating the decode loop,
// since the wire shape and the borrow-until-next-call contract are
// identical; only the exported type differs.
type BinaryColumnReader struct{ *directBytesReader }

// NewBinaryColumnReader builds a reader for t over ss.
func NewBinaryColumnReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*BinaryColumnReader, error) {
	r, err := newDirectBytesReader(t, enc, ss, capacity)
	if err != nil {
		return nil, err
	}
	return &BinaryColumnReader{r}, nil
}

// Batch returns the reader's decoded batch.
func (r *BinaryColumnReader) Batch() *vector.BytesBatch { return r.b }
