package store

import "github.com/pkg/errors"

// Kind classifies store errors so the transport layer can map them to
// statuses without inspecting messages.
type Kind int

const (
	KindNotFound Kind = iota + 1 // referenced document does not exist
	KindBadRequest                // invariant violation the caller can fix
	KindConflict                  // conditional write matched nothing; retry after re-read
	KindInternal                  // transaction infrastructure failure
)

// Error is the single error type returned by the stores and engines.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func BadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: errors.WithStack(err)}
}

// KindOf returns the kind of err, defaulting to KindInternal for anything
// that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
