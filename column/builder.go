package column

import (
	"github.com/colstream/orcvec"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
)

// Build walks t and assembles a Reader for the whole column tree,
// fetching each column's stripe encoding from ss (spec.md section
// 4.12). Grounded on the teacher's column.NewReader/NewWriter dispatch
// (orc/column/package.go), which switches on api.Category the same way;
// here the switch lives over schema.TypeKind and raises NotImplemented
// for any kind outside spec.md section 1's scope at construction time,
// never mid-batch, per spec.md section 7.
func Build(t *schema.Type, ss stripestream.StripeStreams, capacity int) (Reader, error) {
	r, err := build(t, ss, capacity)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func build(t *schema.Type, ss stripestream.StripeStreams, capacity int) (columnReader, error) {
	if !t.Implemented() {
		return nil, orcvec.NewError(orcvec.NotImplemented, "column %d: kind %s is not implemented", t.ColumnID, t.Kind)
	}

	if t.Kind == schema.STRUCT {
		return NewStructColumnReader(t, ss, capacity, build)
	}

	enc := ss.Encoding(t.ColumnID)

	switch t.Kind {
	case schema.BOOLEAN, schema.BYTE, schema.SHORT, schema.INT, schema.LONG:
		return NewIntegerColumnReader(t, enc, ss, capacity)
	case schema.BINARY:
		return NewBinaryColumnReader(t, enc, ss, capacity)
	case schema.STRING:
		if enc.Kind.IsDictionary() {
			return NewStringDictionaryColumnReader(t, enc, ss, capacity)
		}
		return NewStringDirectColumnReader(t, enc, ss, capacity)
	case schema.CHAR:
		return NewCharColumnReader(t, enc, ss, capacity)
	case schema.VARCHAR:
		return NewVarcharColumnReader(t, enc, ss, capacity)
	default:
		return nil, orcvec.NewError(orcvec.NotImplemented, "column %d: kind %s is not implemented", t.ColumnID, t.Kind)
	}
}
