package column

import (
	"io"

	"github.com/colstream/orcvec/vector"
)

// isCleanEOF reports whether err's Cause chain bottoms out in a literal
// io.EOF, as opposed to a Corrupt-kind error or any other wrapped
// failure. The decoders in package encoding only ever let a bare io.EOF
// surface when the very first byte of a fresh run/block could not be
// read — every deeper failure within a run is re-wrapped into a fresh
// error so it cannot be mistaken for one (internal/bitstream,
// encoding/*.go). A reader's fillAll loop uses this to tell "the stream
// legitimately ended here" (spec.md section 8 property 1: 0 rows past
// end, not an error) from "the stream is truncated or the PRESENT/DATA
// streams disagree on length" (Corrupt).
func isCleanEOF(err error) bool {
	type causer interface{ Cause() error }
	for err != nil {
		if err == io.EOF {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// isSelected reports whether columnID should be instantiated, per
// stripestream.StripeStreams.SelectedColumns (spec.md section 4.12). A nil
// or short selection slice means "no restriction" — every column the
// fixture or caller didn't explicitly mask out is selected, which is also
// what a caller asking for every column passes (an empty/absent mask
// rather than an all-true slice sized to the schema).
func isSelected(selected []bool, columnID uint32) bool {
	if int(columnID) >= len(selected) {
		return true
	}
	return selected[columnID]
}

// Reader is the public shape every column reader exposes (spec.md
// section 4.12): fill up to n rows into the reader's batch, advance past
// n rows without materializing them, release any held resources. Each
// concrete reader additionally exposes its own typed Batch() accessor
// (e.g. *IntegerColumnReader.Batch() *vector.LongBatch) since the batch
// shape is part of the reader's identity, not a generic return value.
type Reader interface {
	// Next fills the reader's batch with up to n rows, fewer at
	// end-of-stripe (spec.md section 8 property 1: 0 rows past end, never
	// an error).
	Next(n int) (int, error)

	// Skip advances n rows without filling the batch. Past end-of-stripe
	// it is a no-op rather than an error (SPEC_FULL.md supplemented
	// feature 3); a short read within a row remains Corrupt.
	Skip(n int) error

	// Close releases any resources the reader's streams hold. Safe to
	// call multiple times.
	Close() error
}

// columnReader is the internal contract struct.go drives: every leaf and
// struct reader can be filled with an explicit parent presence mask, so
// a struct's own presence gates whether its children even attempt to
// decode a row (spec.md section 4.5's parent-AND-child presence rule).
// parentPresent == nil means "no parent, every row attempts decode."
type columnReader interface {
	Reader
	fillAll(n int, parentPresent []bool) (int, error)
	batch() vector.Batch
}
