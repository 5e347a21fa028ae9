package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colstream/orcvec/internal/testfixture"
	"github.com/colstream/orcvec/schema"
)

func TestIntegerColumnReader_WithNulls(t *testing.T) {
	// presence: byte-rle literal of one byte 0xA0 (10100000) -> true,false,true,...
	presence := []byte{0xFF, 0xA0}
	// data (DIRECT_V2, width 8, 2 values): header 0x4E 0x01, zigzag-encoded
	// values 0x54 (42), 0x0E (7).
	data := []byte{0x4E, 0x01, 0x54, 0x0E}

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.PRESENT, presence).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.LONG}
	r, err := NewIntegerColumnReader(col, ss.Encoding(0), ss, 3)
	assert.NoError(t, err)

	n, err := r.Next(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	b := r.Batch()
	assert.False(t, b.IsNull(0))
	assert.Equal(t, int64(42), b.Values[0])
	assert.True(t, b.IsNull(1))
	assert.False(t, b.IsNull(2))
	assert.Equal(t, int64(7), b.Values[2])
}

func TestIntegerColumnReader_EndOfStripeIsNotAnError(t *testing.T) {
	// short repeat of 10000 (zigzag 20000 = 0x4E20), 5 times, no PRESENT stream.
	data := []byte{0x0a, 0x4E, 0x20}
	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.LONG}
	r, err := NewIntegerColumnReader(col, ss.Encoding(0), ss, 10)
	assert.NoError(t, err)

	n, err := r.Next(10)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(10000), r.Batch().Values[i])
	}
}
