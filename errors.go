package orcvec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the error surface named in spec.md section 7: Corrupt for
// malformed bit streams, NotImplemented for schema kinds this core never
// grew a reader for, InvalidArgument for bad caller input at construction.
type Kind int

const (
	Corrupt Kind = iota
	NotImplemented
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case Corrupt:
		return "corrupt"
	case NotImplemented:
		return "not implemented"
	case InvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// ErrKind reports the Kind carried by err, if any was attached with
// NewError. A plain wrapped I/O error (via errors.WithStack) has no
// Kind and is always treated as Corrupt by callers that need to decide.
func ErrKind(err error) (Kind, bool) {
	type causer interface{ Cause() error }
	for err != nil {
		if ke, ok := err.(*kindError); ok {
			return ke.kind, true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return Corrupt, false
}

func NewError(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&kindError{kind: kind, msg: fmt.Sprintf(format, args...)})
}

func IsCorrupt(err error) bool {
	k, ok := ErrKind(err)
	return !ok || k == Corrupt
}

func IsNotImplemented(err error) bool {
	k, ok := ErrKind(err)
	return ok && k == NotImplemented
}
