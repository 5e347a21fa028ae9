package column

import (
	"github.com/colstream/orcvec"
	"github.com/colstream/orcvec/internal/bitstream"
	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
	"github.com/colstream/orcvec/vector"
)

// dictionary is a stripe's fully materialized DICTIONARY_DATA blob plus a
// prefix-sum offset table, built once up front. Construction is eager
// rather than following the teacher's dictStringsReader
// (orc/column/string.go), which grows a []string lazily as indices hit
// never-before-seen entries — a lazy cache suits a row-at-a-time reader
// but not a batch reader that may revisit any index in any order within
// a single fillAll.
type dictionary struct {
	blob    []byte
	offsets []uint64 // len == size+1; offsets[i]:offsets[i+1] is entry i
}

func buildDictionary(size int, enc schema.ColumnEncoding, lengthStream, dataStream *bitstream.Reader) (*dictionary, error) {
	offsets := make([]uint64, size+1)
	if size == 0 {
		return &dictionary{offsets: offsets}, nil
	}

	lengths := make([]uint64, size)
	dec := newUnsignedIntDecoder(enc, lengthStream)
	for i := 0; i < size; i++ {
		l, err := dec.NextUnsigned()
		if err != nil {
			return nil, orcvec.NewError(orcvec.Corrupt, "dictionary: truncated LENGTH stream at entry %d: %v", i, err)
		}
		lengths[i] = l
	}

	var total uint64
	for i, l := range lengths {
		offsets[i] = total
		total += l
	}
	offsets[size] = total

	blob := make([]byte, total)
	if err := bitstream.ReadFull(dataStream, blob); err != nil {
		return nil, orcvec.NewError(orcvec.Corrupt, "dictionary: truncated DICTIONARY_DATA stream: %v", err)
	}

	return &dictionary{blob: blob, offsets: offsets}, nil
}

func (d *dictionary) entry(idx uint64) ([]byte, error) {
	if idx+1 >= uint64(len(d.offsets)) {
		return nil, orcvec.NewError(orcvec.Corrupt, "dictionary index %d out of range (size %d)", idx, len(d.offsets)-1)
	}
	return d.blob[d.offsets[idx]:d.offsets[idx+1]], nil
}

// StringDictionaryColumnReader decodes a STRING column whose stripe
// encoding is DICTIONARY/DICTIONARY_V2 (spec.md section 4.8): a DATA
// stream of unsigned indices into a stripe-wide dictionary built from
// LENGTH and DICTIONARY_DATA. Grounded on the teacher's
// stringDictionaryV2Reader (orc/column/string.go) for the stream
// composition; the eager dictionary construction above replaces its
// lazy per-index decode.
type StringDictionaryColumnReader struct {
	columnID uint32
	hasNulls bool

	present *presence
	index   unsignedIntDecoder
	dict    *dictionary

	b *vector.BytesBatch
}

// NewStringDictionaryColumnReader builds a reader for t over ss.
func NewStringDictionaryColumnReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*StringDictionaryColumnReader, error) {
	data := openStream(ss, t.ColumnID, schema.DATA)
	if data == nil {
		return nil, orcvec.NewError(orcvec.Corrupt, "column %d: missing DATA stream", t.ColumnID)
	}
	lengthStream := openStream(ss, t.ColumnID, schema.LENGTH)
	dictStream := openStream(ss, t.ColumnID, schema.DICTIONARY_DATA)

	dict, err := buildDictionary(int(enc.DictionarySize), enc, lengthStream, dictStream)
	if err != nil {
		return nil, err
	}

	r := &StringDictionaryColumnReader{
		columnID: t.ColumnID,
		present:  newPresence(ss, t.ColumnID),
		index:    newUnsignedIntDecoder(enc, data),
		dict:     dict,
		b:        vector.NewBytesBatch(capacity),
	}
	r.hasNulls = r.present.hasStream()
	return r, nil
}

func (r *StringDictionaryColumnReader) batch() vector.Batch { return r.b }

// Batch returns the reader's decoded batch.
func (r *StringDictionaryColumnReader) Batch() *vector.BytesBatch { return r.b }

func (r *StringDictionaryColumnReader) Next(n int) (int, error) {
	return r.fillAll(n, nil)
}

func (r *StringDictionaryColumnReader) fillAll(n int, parentPresent []bool) (int, error) {
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
		if p {
			idx, err := r.index.NextUnsigned()
			if err != nil {
				if isCleanEOF(err) {
					break
				}
				return populated, err
			}
			v, err := r.dict.entry(idx)
			if err != nil {
				return populated, err
			}
			r.b.Values[i] = v
		}
		populated++
	}
	r.b.Fill(populated, present[:populated])
	return populated, nil
}

func (r *StringDictionaryColumnReader) readRowPresence() (bool, error) {
	if !r.hasNulls {
		return true, nil
	}
	return r.present.next()
}

func (r *StringDictionaryColumnReader) Skip(n int) error {
	_, err := r.fillAll(n, nil)
	return err
}

func (r *StringDictionaryColumnReader) Close() error { return nil }
