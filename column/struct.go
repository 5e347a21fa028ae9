package column

import (
	"github.com/colstream/orcvec"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
	"github.com/colstream/orcvec/vector"
)

// StructColumnReader composes an ordered list of child column readers
// behind one presence stream (spec.md section 4.11). Grounded on the
// teacher's structReader (orc/column/struct.go), whose Next loop decodes
// its own presence bit then calls every child's Next for that row;
// generalized here into the fillAll(n, parentPresent) contract so a
// struct nested inside another struct gates its children the same way a
// top-level struct gates its own (spec.md section 4.5: a null parent
// means the child's own PRESENT/DATA streams are not consumed at all for
// that row).
type StructColumnReader struct {
	columnID uint32
	hasNulls bool

	present  *presence
	children []columnReader

	b *vector.StructBatch
}

// NewStructColumnReader builds a reader for t over ss, recursively
// building one reader per selected child via build. A child whose column
// id is absent from ss.SelectedColumns() is skipped entirely — its reader
// is never constructed and build never opens any of its streams (spec.md
// section 4.12).
func NewStructColumnReader(t *schema.Type, ss stripestream.StripeStreams, capacity int, build func(*schema.Type, stripestream.StripeStreams, int) (columnReader, error)) (*StructColumnReader, error) {
	selected := ss.SelectedColumns()

	var children []columnReader
	var childBatches []vector.Batch
	var fieldNames []string
	for i, c := range t.Children {
		if !isSelected(selected, c.ColumnID) {
			continue
		}
		cr, err := build(c, ss, capacity)
		if err != nil {
			return nil, err
		}
		children = append(children, cr)
		childBatches = append(childBatches, cr.batch())
		if i < len(t.FieldNames) {
			fieldNames = append(fieldNames, t.FieldNames[i])
		}
	}

	r := &StructColumnReader{
		columnID: t.ColumnID,
		present:  newPresence(ss, t.ColumnID),
		children: children,
		b:        vector.NewStructBatch(capacity, fieldNames, childBatches),
	}
	r.hasNulls = r.present.hasStream()
	return r, nil
}

func (r *StructColumnReader) batch() vector.Batch { return r.b }

// Batch returns the reader's decoded batch.
func (r *StructColumnReader) Batch() *vector.StructBatch { return r.b }

func (r *StructColumnReader) Next(n int) (int, error) {
	return r.fillAll(n, nil)
}

func (r *StructColumnReader) fillAll(n int, parentPresent []bool) (int, error) {
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
		populated++
	}

	// Every child fills the same [0, populated) range in lockstep, gated
	// by this struct's own presence mask so an absent struct row never
	// makes a child touch its PRESENT/DATA streams. A child that comes up
	// short here isn't a clean boundary (the struct's own presence stream
	// already vouched for `populated` rows existing) — it means the
	// child's streams disagree with the parent's row count, which is
	// corruption, not end-of-stripe.
	for _, c := range r.children {
		got, err := c.fillAll(populated, present[:populated])
		if err != nil {
			return populated, err
		}
		if got != populated {
			return populated, orcvec.NewError(orcvec.Corrupt, "column %d: child column ran out after %d of %d rows", r.columnID, got, populated)
		}
	}

	r.b.Fill(populated, present[:populated])
	return populated, nil
}

func (r *StructColumnReader) readRowPresence() (bool, error) {
	if !r.hasNulls {
		return true, nil
	}
	return r.present.next()
}

func (r *StructColumnReader) Skip(n int) error {
	_, err := r.fillAll(n, nil)
	return err
}

func (r *StructColumnReader) Close() error {
	for _, c := range r.children {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}
