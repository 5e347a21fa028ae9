// Package schema describes the column tree the core reads against: the
// TypeKind tags, the Type node they compose into, and the per-stripe
// ColumnEncoding/StreamKind metadata that the column-reader builder
// consults. It mirrors the shape of the teacher's orc/api.TypeDescription
// (github.com/patrickhuang888/goorc), trimmed to what spec.md section 3
// names, since the footer/protobuf layer that would otherwise produce this
// tree is out of scope here.
package schema

import (
	"fmt"
	"strings"
)

// TypeKind is the wire-stable tag for a column's logical type.
type TypeKind int

const (
	BOOLEAN TypeKind = iota
	BYTE
	SHORT
	INT
	LONG
	FLOAT
	DOUBLE
	STRING
	BINARY
	TIMESTAMP
	LIST
	MAP
	STRUCT
	UNION
	DECIMAL
	DATE
	VARCHAR
	CHAR
)

func (k TypeKind) String() string {
	names := [...]string{"boolean", "byte", "short", "int", "long", "float", "double",
		"string", "binary", "timestamp", "list", "map", "struct", "union",
		"decimal", "date", "varchar", "char"}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// implemented reports whether the core (spec.md section 1/4.12) has a
// reader for this kind. Struct is handled separately by the builder since
// it composes children rather than terminating at a decoder.
func (k TypeKind) implemented() bool {
	switch k {
	case BOOLEAN, BYTE, SHORT, INT, LONG, STRING, BINARY, VARCHAR, CHAR, STRUCT:
		return true
	default:
		return false
	}
}

// Type is one node of the schema tree. Column ids are assigned pre-order
// starting at 0 at the root; struct children are numbered contiguously
// after their parent (spec.md section 3).
type Type struct {
	ColumnID uint32
	Kind     TypeKind

	FieldNames []string
	Children   []*Type

	// MaxLength is the declared length for VARCHAR/CHAR.
	MaxLength int

	// Precision/Scale are carried for DECIMAL, which this core does not
	// decode (spec.md section 1 Non-goals); kept so a caller building a
	// schema from a footer can populate the full node without the core
	// rejecting the value.
	Precision int
	Scale     int
}

func (t *Type) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id %d kind %s", t.ColumnID, t.Kind)
	for i, c := range t.Children {
		fmt.Fprintf(&sb, " %s:%s", t.FieldNames[i], c.Kind)
	}
	return sb.String()
}

// AssignColumnIDs walks t pre-order, assigning ColumnID starting at next,
// and returns the next free id. Call with next=0 on the root.
func AssignColumnIDs(t *Type, next uint32) uint32 {
	t.ColumnID = next
	next++
	for _, c := range t.Children {
		next = AssignColumnIDs(c, next)
	}
	return next
}

// Implemented reports whether the core has a column reader for t.Kind; used
// by the builder (column.Build) to raise NotImplemented at construction
// rather than mid-batch, per spec.md section 7.
func (t *Type) Implemented() bool {
	return t.Kind.implemented()
}

// ColumnEncodingKind is the per-stripe encoding chosen for a column.
type ColumnEncodingKind int

const (
	DIRECT ColumnEncodingKind = iota
	DICTIONARY
	DIRECT_V2
	DICTIONARY_V2
)

func (k ColumnEncodingKind) String() string {
	switch k {
	case DIRECT:
		return "DIRECT"
	case DICTIONARY:
		return "DICTIONARY"
	case DIRECT_V2:
		return "DIRECT_V2"
	case DICTIONARY_V2:
		return "DICTIONARY_V2"
	default:
		return "UNKNOWN"
	}
}

// IsV2 reports whether the integer sub-stream(s) of this encoding use RLE
// v2 rather than v1 (spec.md section 4.3 vs the v1 predecessor format).
func (k ColumnEncodingKind) IsV2() bool {
	return k == DIRECT_V2 || k == DICTIONARY_V2
}

// IsDictionary reports whether string data is indirected through a
// per-stripe dictionary (spec.md section 4.8).
func (k ColumnEncodingKind) IsDictionary() bool {
	return k == DICTIONARY || k == DICTIONARY_V2
}

// ColumnEncoding is the per-stripe, per-column encoding descriptor
// (spec.md section 3); required for every non-root column in every
// stripe.
type ColumnEncoding struct {
	Kind           ColumnEncodingKind
	DictionarySize int
}

// StreamKind keys the (column, kind) -> byte stream lookup a StripeStreams
// provider exposes.
type StreamKind int

const (
	PRESENT StreamKind = iota
	DATA
	LENGTH
	DICTIONARY_DATA
	SECONDARY
	ROW_INDEX
)

func (k StreamKind) String() string {
	switch k {
	case PRESENT:
		return "PRESENT"
	case DATA:
		return "DATA"
	case LENGTH:
		return "LENGTH"
	case DICTIONARY_DATA:
		return "DICTIONARY_DATA"
	case SECONDARY:
		return "SECONDARY"
	case ROW_INDEX:
		return "ROW_INDEX"
	default:
		return "UNKNOWN"
	}
}
