// Package bitstream implements the low-level byte cursor, varint, and
// bit-packing primitives every RLE decoder in package encoding is built on
// top of. It mirrors the teacher's orc/stream.reader (a buffered cursor
// over one decompressed chunk at a time pulled from an io.ReadSeeker) but
// is driven by a stripestream.SeekableByteStream instead of a file handle,
// since chunk decompression is out of this module's scope.
package bitstream

import (
	"io"

	"github.com/pkg/errors"

	"github.com/colstream/orcvec/stripestream"
)

// Reader is a buffered, ordered byte cursor over one SeekableByteStream. It
// implements io.ByteReader so the varint/bit-pack helpers and the RLE
// decoders can all be written against the standard interface, the way the
// teacher's BufferedReader composes io.ByteReader with Seek (orc/stream/reader.go).
type Reader struct {
	src   stripestream.SeekableByteStream
	chunk []byte
	pos   int
	eof   bool
}

// New wraps src. src may be nil, in which case the reader behaves as
// already at EOF.
func New(src stripestream.SeekableByteStream) *Reader {
	if src == nil {
		return &Reader{eof: true}
	}
	return &Reader{src: src}
}

func (r *Reader) fill() bool {
	for r.pos >= len(r.chunk) {
		if r.eof {
			return false
		}
		chunk, ok := r.src.Next()
		if !ok {
			r.eof = true
			return false
		}
		r.chunk = chunk
		r.pos = 0
	}
	return true
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if !r.fill() {
		return 0, io.EOF
	}
	b := r.chunk[r.pos]
	r.pos++
	return b, nil
}

// Read implements io.Reader, filling p as far as the underlying stream
// allows; a short read is only an error if p could not be filled at all.
func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if !r.fill() {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		c := copy(p[n:], r.chunk[r.pos:])
		r.pos += c
		n += c
	}
	return n, nil
}

// ReadFull reads exactly len(p) bytes or returns a Corrupt-wrapped error —
// used by fixed-width field readers (base values, patch lists) where a
// short read always means a truncated stream, never an ordinary EOF.
func ReadFull(r io.Reader, p []byte) error {
	n, err := io.ReadFull(r, p)
	if err != nil {
		return errors.WithStack(errorf("truncated stream: wanted %d bytes, got %d: %v", len(p), n, err))
	}
	return nil
}

func errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Finished reports whether the stream has been fully consumed. The column
// readers do not call it; they detect end of stripe through isCleanEOF.
func (r *Reader) Finished() bool {
	return r.eof && r.pos >= len(r.chunk)
}
