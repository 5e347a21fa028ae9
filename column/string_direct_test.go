package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colstream/orcvec/internal/testfixture"
	"github.com/colstream/orcvec/schema"
)

func TestStringDirectColumnReader(t *testing.T) {
	// LENGTH (DIRECT_V2, width 4, values {3,2}): header 0x46 0x01, data 0x32.
	length := []byte{0x46, 0x01, 0x32}
	data := []byte("abcde") // "abc" (3) then "de" (2)

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DIRECT_V2}).
		SetStream(0, schema.LENGTH, length).
		SetStream(0, schema.DATA, data)

	col := &schema.Type{ColumnID: 0, Kind: schema.STRING}
	r, err := NewStringDirectColumnReader(col, ss.Encoding(0), ss, 2)
	assert.NoError(t, err)

	n, err := r.Next(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "abc", string(r.Batch().Values[0]))
	assert.Equal(t, "de", string(r.Batch().Values[1]))
}
