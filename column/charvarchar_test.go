package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colstream/orcvec/internal/testfixture"
	"github.com/colstream/orcvec/schema"
)

func TestVarcharColumnReader_TruncatesAtRuneBoundary(t *testing.T) {
	// one row, length 6 (DIRECT_V2 width 4): header 0x46 0x00, data 0x60.
	length := []byte{0x46, 0x00, 0x60}
	data := []byte("h\xc3\xa9llo") // "héllo", é is 2 bytes

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.LENGTH, length).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.VARCHAR, MaxLength: 2}
	r, err := NewVarcharColumnReader(col, ss.Encoding(0), ss, 1)
	assert.NoError(t, err)

	n, err := r.Next(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "hé", string(r.Batch().Values[0]))
}

func TestTruncateUTF8(t *testing.T) {
	v := []byte("h\xc3\xa9llo")
	assert.Equal(t, "hé", string(truncateUTF8(v, 2)))
	assert.Equal(t, "héllo", string(truncateUTF8(v, 100)))
	assert.Equal(t, "", string(truncateUTF8(v, 0)))
}

func TestCharColumnReader_PadsShortValues(t *testing.T) {
	// one row, length 2 (DIRECT_V2 width 4): header 0x46 0x00, data 0x20.
	length := []byte{0x46, 0x00, 0x20}
	data := []byte("hi")

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.LENGTH, length).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.CHAR, MaxLength: 5}
	r, err := NewCharColumnReader(col, ss.Encoding(0), ss, 1)
	assert.NoError(t, err)

	n, err := r.Next(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "hi   ", string(r.Batch().Values[0]))
}

func TestCharColumnReader_TruncatesLongValues(t *testing.T) {
	// one row, length 6 (DIRECT_V2 width 4): header 0x46 0x00, data 0x60.
	length := []byte{0x46, 0x00, 0x60}
	data := []byte("h\xc3\xa9llo") // "héllo", é is 2 bytes

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.LENGTH, length).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.CHAR, MaxLength: 2}
	r, err := NewCharColumnReader(col, ss.Encoding(0), ss, 1)
	assert.NoError(t, err)

	n, err := r.Next(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "hé", string(r.Batch().Values[0]))
}

func TestPadToChars(t *testing.T) {
	assert.Equal(t, "hi   ", string(padToChars([]byte("hi"), 5)))
	assert.Equal(t, "hi", string(padToChars([]byte("hi"), 2)))
	assert.Equal(t, "hé", string(padToChars([]byte("h\xc3\xa9llo"), 2)))
}
