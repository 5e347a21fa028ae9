package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colstream/orcvec/internal/testfixture"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/vector"
)

func TestStructColumnReader(t *testing.T) {
	root := &schema.Type{
		Kind:       schema.STRUCT,
		FieldNames: []string{"a", "b"},
		Children: []*schema.Type{
			{Kind: schema.LONG},
			{Kind: schema.STRING},
		},
	}
	schema.AssignColumnIDs(root, 0) // root=0, a=1, b=2

	// column 1 (LONG, DIRECT_V2 width 4): {5,6}, zigzag {10,12} -> header 0x46 0x01, data 0xAC.
	longData := []byte{0x46, 0x01, 0xAC}
	// column 2 (STRING LENGTH, DIRECT_V2 width 4): {2,2} -> header 0x46 0x01, data 0x22.
	strLength := []byte{0x46, 0x01, 0x22}
	strData := []byte("hiyo")

	ss := testfixture.New().
		SetEncoding(1, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(1, schema.DATA, longData).
		SetEncoding(2, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(2, schema.LENGTH, strLength).
		SetStream(2, schema.DATA, strData)

	reader, err := Build(root, ss, 2)
	assert.NoError(t, err)

	n, err := reader.Next(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	sr := reader.(*StructColumnReader)
	b := sr.Batch()
	assert.False(t, b.IsNull(0))
	assert.False(t, b.IsNull(1))

	a := b.Children[0].(*vector.LongBatch)
	assert.Equal(t, []int64{5, 6}, a.Values[:2])

	bb := b.Children[1].(*vector.BytesBatch)
	assert.Equal(t, "hi", string(bb.Values[0]))
	assert.Equal(t, "yo", string(bb.Values[1]))
}

func TestStructColumnReader_SkipsUnselectedChildren(t *testing.T) {
	root := &schema.Type{
		Kind:       schema.STRUCT,
		FieldNames: []string{"a", "b"},
		Children: []*schema.Type{
			{Kind: schema.LONG},
			{Kind: schema.STRING},
		},
	}
	schema.AssignColumnIDs(root, 0) // root=0, a=1, b=2

	// column 1 (LONG, DIRECT_V2 width 4): {5,6}, zigzag {10,12} -> header 0x46 0x01, data 0xAC.
	longData := []byte{0x46, 0x01, 0xAC}

	// Column 2 (b) is deselected: no encoding or streams are registered for
	// it at all, so building its reader would fail if it were attempted.
	ss := testfixture.New().
		SetSelected([]bool{true, true, false}).
		SetEncoding(1, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(1, schema.DATA, longData)

	reader, err := Build(root, ss, 2)
	assert.NoError(t, err)

	n, err := reader.Next(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	sr := reader.(*StructColumnReader)
	b := sr.Batch()
	assert.Equal(t, 1, len(b.Children))
	assert.Equal(t, []string{"a"}, b.FieldNames)

	a := b.Children[0].(*vector.LongBatch)
	assert.Equal(t, []int64{5, 6}, a.Values[:2])
}
