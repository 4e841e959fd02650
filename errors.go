package fintrack

import "errors"

var (
	// ErrValue reports a value that cannot be parsed or validated.
	ErrValue = errors.New("invalid value")
	// ErrType reports an entry of the wrong kind, or arguments that do not fit
	// a constructor.
	ErrType = errors.New("wrong type")
	// ErrImmutable is returned by views when asked to change.
	ErrImmutable = errors.New("read-only view")
	// ErrNotFound reports an unknown sheet or sheet kind.
	ErrNotFound = errors.New("not found")
)
