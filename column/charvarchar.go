package column

import (
	"unicode/utf8"

	"github.com/colstream/orcvec/schema"
	"github.com/colstream/orcvec/stripestream"
	"github.com/colstream/orcvec/vector"
)

// truncateUTF8 returns the prefix of v containing at most maxChars runes,
// never splitting a multi-byte rune. Supplemented from original_source/'s
// Utf8Utils.truncate (SPEC_FULL.md supplemented feature 4): the
// distillation dropped CHAR/VARCHAR's length semantics entirely, but the
// original enforces maxChars in characters, not bytes, and a naive byte
// slice risks cutting a multi-byte rune in half.
func truncateUTF8(v []byte, maxChars int) []byte {
	if maxChars < 0 {
		return v
	}
	n := 0
	for i := range v {
		if !utf8.RuneStart(v[i]) {
			continue
		}
		if n == maxChars {
			return v[:i]
		}
		n++
	}
	return v
}

// bytesReader is satisfied by any leaf reader whose batch is a
// vector.BytesBatch: the two STRING encodings and BINARY. CHAR/VARCHAR
// wrap whichever one applies and post-process its output.
type bytesReader interface {
	columnReader
	Batch() *vector.BytesBatch
}

func newBytesReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (bytesReader, error) {
	if enc.Kind.IsDictionary() {
		return NewStringDictionaryColumnReader(t, enc, ss, capacity)
	}
	return NewStringDirectColumnReader(t, enc, ss, capacity)
}

// runeCount returns the number of UTF-8 runes starting in v.
func runeCount(v []byte) int {
	n := 0
	for i := range v {
		if utf8.RuneStart(v[i]) {
			n++
		}
	}
	return n
}

// padToChars returns an owned buffer holding v's first maxChars runes,
// right-padded with ASCII space (0x20) out to exactly maxChars runes if v
// has fewer (spec.md section 4.9: "CHAR(L) truncates or right-pads ... to
// exactly L, requiring an owned buffer if padding occurs"). Always a fresh
// allocation, never a reslice of v: v aliases the reader's shared
// rowBuffer arena (column/string_direct.go), which a pad may need to grow
// past, and which gets overwritten on the reader's next fill regardless.
func padToChars(v []byte, maxChars int) []byte {
	truncated := truncateUTF8(v, maxChars)
	n := runeCount(truncated)
	if n >= maxChars {
		out := make([]byte, len(truncated))
		copy(out, truncated)
		return out
	}
	out := make([]byte, 0, len(truncated)+(maxChars-n))
	out = append(out, truncated...)
	for ; n < maxChars; n++ {
		out = append(out, ' ')
	}
	return out
}

// truncatingReader wraps a bytesReader and clamps every decoded value to
// maxChars runes after each fill — VARCHAR's full semantics (spec.md
// section 4.9: truncate only, never padded).
type truncatingReader struct {
	bytesReader
	maxChars int
}

func (r *truncatingReader) Next(n int) (int, error) {
	return r.fillAll(n, nil)
}

func (r *truncatingReader) fillAll(n int, parentPresent []bool) (int, error) {
	populated, err := r.bytesReader.fillAll(n, parentPresent)
	if err != nil {
		return populated, err
	}
	b := r.Batch()
	for i := 0; i < populated; i++ {
		if b.IsNull(i) {
			continue
		}
		b.Values[i] = truncateUTF8(b.Values[i], r.maxChars)
	}
	return populated, nil
}

// paddingReader wraps a bytesReader and clamps every decoded value to
// exactly maxChars runes after each fill, padding with ASCII space when a
// value is shorter — CHAR's full semantics (spec.md section 4.9), distinct
// from VARCHAR's truncate-only truncatingReader.
type paddingReader struct {
	bytesReader
	maxChars int
}

func (r *paddingReader) Next(n int) (int, error) {
	return r.fillAll(n, nil)
}

func (r *paddingReader) fillAll(n int, parentPresent []bool) (int, error) {
	populated, err := r.bytesReader.fillAll(n, parentPresent)
	if err != nil {
		return populated, err
	}
	b := r.Batch()
	for i := 0; i < populated; i++ {
		if b.IsNull(i) {
			continue
		}
		b.Values[i] = padToChars(b.Values[i], r.maxChars)
	}
	return populated, nil
}

// CharColumnReader decodes a CHAR(n) column (spec.md section 4.9).
type CharColumnReader struct{ *paddingReader }

// NewCharColumnReader builds a reader for t over ss.
func NewCharColumnReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*CharColumnReader, error) {
	inner, err := newBytesReader(t, enc, ss, capacity)
	if err != nil {
		return nil, err
	}
	return &CharColumnReader{&paddingReader{bytesReader: inner, maxChars: t.MaxLength}}, nil
}

// VarcharColumnReader decodes a VARCHAR(n) column (spec.md section 4.9).
type VarcharColumnReader struct{ *truncatingReader }

// NewVarcharColumnReader builds a reader for t over ss.
func NewVarcharColumnReader(t *schema.Type, enc schema.ColumnEncoding, ss stripestream.StripeStreams, capacity int) (*VarcharColumnReader, error) {
	inner, err := newBytesReader(t, enc, ss, capacity)
	if err != nil {
		return nil, err
	}
	return &VarcharColumnReader{&truncatingReader{bytesReader: inner, maxChars: t.MaxLength}}, nil
}
