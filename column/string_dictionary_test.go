package column

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colstream/orcvec"
	"github.com/colstream/orcvec/internal/testfixture"
	"github.com/colstream/orcvec/schema"
)

func TestStringDictionaryColumnReader(t *testing.T) {
	// dictionary lengths {3,4} (DIRECT_V2 width 4): header 0x46 0x01, data 0x34.
	length := []byte{0x46, 0x01, 0x34}
	dictData := []byte("foobazz") // "foo" (3), "bazz" (4)

	// indices {1,0,1} (DIRECT_V2 width 1): header 0x40 0x02, data 0xA0.
	index := []byte{0x40, 0x02, 0xA0}

	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DICTIONARY_V2, DictionarySize: 2}).
		SetStream(0, schema.LENGTH, length).
		SetStream(0, schema.DICTIONARY_DATA, dictData).
		SetStream(0, schema.DATA, index)

	col := &schema.Type{ColumnID: 0, Kind: schema.STRING}
	r, err := NewStringDictionaryColumnReader(col, ss.Encoding(0), ss, 3)
	assert.NoError(t, err)

	n, err := r.Next(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "bazz", string(r.Batch().Values[0]))
	assert.Equal(t, "foo", string(r.Batch().Values[1]))
	assert.Equal(t, "bazz", string(r.Batch().Values[2]))
}

func TestStringDictionaryColumnReader_IndexOutOfRangeIsCorrupt(t *testing.T) {
	ss := testfixture.New().
		SetEncoding(0, schema.ColumnEncoding{Kind: schema.DICTIONARY_V2, DictionarySize: 0}).
		SetStream(0, schema.DATA, []byte{0x40, 0x02, 0xA0})

	col := &schema.Type{ColumnID: 0, Kind: schema.STRING}
	r, err := NewStringDictionaryColumnReader(col, ss.Encoding(0), ss, 3)
	assert.NoError(t, err)

	_, err = r.Next(3)
	assert.Error(t, err)
	assert.True(t, orcvec.IsCorrupt(err))
}
