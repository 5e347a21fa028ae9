// Package vector implements the batch types column readers fill: one
// struct per leaf type, each carrying a capacity, a count of rows
// actually populated, a has-nulls flag, and (when has-nulls) a byte mask
// of which rows are present (spec.md section 3). This replaces the
// teacher's per-row api.ColumnVector/api.Value model: the teacher
// materializes one interface{} per cell (orc/api/vector.go); this core
// instead fills pre-allocated columnar slices so a caller can read a
// whole batch without a boxing allocation per value, matching the
// vectorized batch shape the rest of this module is built around.
package vector

import (
	"fmt"
	"strings"
)

// Batch is the common shape every leaf/struct batch implements: a fixed
// capacity established at construction, how many of those slots the last
// Next call actually populated, and the null mask for that range.
type Batch interface {
	// Cap is the number of rows this batch was allocated to hold.
	Cap() int
	// Len is how many of those rows are populated as of the last fill.
	Len() int
	// HasNulls reports whether NotNull must be consulted; when false every
	// row in [0, Len) is present.
	HasNulls() bool
	// IsNull reports whether row i is null. Panics if i >= Len.
	IsNull(i int) bool
}

// notNullMask is embedded by every concrete batch to provide the shared
// capacity/populated/has_nulls/not_null bookkeeping (spec.md section 3).
type notNullMask struct {
	capacity  int
	populated int
	hasNulls  bool
	notNull   []byte // 1 = present, 0 = null; len == capacity
}

func newNotNullMask(capacity int) notNullMask {
	return notNullMask{capacity: capacity, notNull: make([]byte, capacity)}
}

func (m *notNullMask) Cap() int        { return m.capacity }
func (m *notNullMask) Len() int        { return m.populated }
func (m *notNullMask) HasNulls() bool  { return m.hasNulls }

func (m *notNullMask) IsNull(i int) bool {
	if i < 0 || i >= m.populated {
		panic(fmt.Sprintf("vector: row %d out of range [0,%d)", i, m.populated))
	}
	return m.hasNulls && m.notNull[i] == 0
}

// reset prepares the mask for the next fill of up to m.capacity rows. A
// column reader that finds no PRESENT stream never marks a row null and
// the mask stays hasNulls=false.
func (m *notNullMask) reset() {
	m.populated = 0
	m.hasNulls = false
}

func (m *notNullMask) setPresent(n int, present []bool) {
	m.populated = n
	for i := 0; i < n; i++ {
		if present[i] {
			m.notNull[i] = 1
		} else {
			m.notNull[i] = 0
			m.hasNulls = true
		}
	}
}

func (m *notNullMask) setAllPresent(n int) {
	m.populated = n
	m.hasNulls = false
}

// LongBatch holds decoded values for BOOLEAN, BYTE, SHORT, INT, and LONG
// columns (spec.md section 4.6); all widths widen into int64.
type LongBatch struct {
	notNullMask
	Values []int64
}

// NewLongBatch allocates a batch with room for capacity rows.
func NewLongBatch(capacity int) *LongBatch {
	return &LongBatch{notNullMask: newNotNullMask(capacity), Values: make([]int64, capacity)}
}

// Fill marks n rows populated using present as the per-row mask (nil
// means every row is present).
func (b *LongBatch) Fill(n int, present []bool) {
	if present == nil {
		b.setAllPresent(n)
	} else {
		b.setPresent(n, present)
	}
}

// String renders the populated rows, one per line, the way the teacher's
// TypeDescription.String gives a quick look at a decoded value without a
// presentation layer (SPEC_FULL.md supplemented feature 1).
func (b *LongBatch) String() string {
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		if b.IsNull(i) {
			sb.WriteString("null\n")
			continue
		}
		fmt.Fprintf(&sb, "%d\n", b.Values[i])
	}
	return sb.String()
}

// BytesBatch holds decoded byte-slice values for STRING, VARCHAR, CHAR,
// and BINARY columns (spec.md section 4.7/4.8/4.9/4.10). Each element of
// Values aliases a region of a buffer the reader owns — the stripe's
// DATA stream bytes for a direct encoding, or the stripe's dictionary
// blob for a dictionary encoding — and is only valid until the reader's
// next fill call overwrites that buffer; callers that need a value to
// outlive the next Next() must copy it.
type BytesBatch struct {
	notNullMask
	Values [][]byte
}

// NewBytesBatch allocates a batch with room for capacity rows.
func NewBytesBatch(capacity int) *BytesBatch {
	return &BytesBatch{notNullMask: newNotNullMask(capacity), Values: make([][]byte, capacity)}
}

// Fill marks n rows populated using present as the per-row mask (nil
// means every row is present).
func (b *BytesBatch) Fill(n int, present []bool) {
	if present == nil {
		b.setAllPresent(n)
	} else {
		b.setPresent(n, present)
	}
}

func (b *BytesBatch) String() string {
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		if b.IsNull(i) {
			sb.WriteString("null\n")
			continue
		}
		fmt.Fprintf(&sb, "%q\n", b.Values[i])
	}
	return sb.String()
}

// StructBatch composes an ordered list of child batches sharing one row
// range (spec.md section 4.11). A struct row is present only if the
// struct's own presence bit is set; the column reader is responsible for
// AND-ing that against each child's own presence before calling a
// child's fill, per spec.md section 4.5's parent/child presence rule.
type StructBatch struct {
	notNullMask
	FieldNames []string
	Children   []Batch
}

// NewStructBatch allocates a struct batch over the given, already
// allocated, child batches.
func NewStructBatch(capacity int, fieldNames []string, children []Batch) *StructBatch {
	return &StructBatch{
		notNullMask: newNotNullMask(capacity),
		FieldNames:  fieldNames,
		Children:    children,
	}
}

// Fill marks n rows populated using present as the per-row mask (nil
// means every row is present).
func (b *StructBatch) Fill(n int, present []bool) {
	if present == nil {
		b.setAllPresent(n)
	} else {
		b.setPresent(n, present)
	}
}

func (b *StructBatch) String() string {
	var sb strings.Builder
	for i := 0; i < b.Len(); i++ {
		if b.IsNull(i) {
			sb.WriteString("null\n")
			continue
		}
		sb.WriteByte('{')
		for ci, c := range b.Children {
			if ci > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s:", b.FieldNames[ci])
			writeRow(&sb, c, i)
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, b Batch, i int) {
	if b.IsNull(i) {
		sb.WriteString("null")
		return
	}
	switch v := b.(type) {
	case *LongBatch:
		fmt.Fprintf(sb, "%d", v.Values[i])
	case *BytesBatch:
		fmt.Fprintf(sb, "%q", v.Values[i])
	case *StructBatch:
		sb.WriteByte('{')
		for ci, c := range v.Children {
			if ci > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s:", v.FieldNames[ci])
			writeRow(sb, c, i)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("?")
	}
}
