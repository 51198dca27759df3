package board

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("forbidden")

	// ErrAlreadyInState marks a reaction request that repeats the current reaction.
	// It is not a failure: callers answer it with a success-shaped response.
	ErrAlreadyInState = errors.New("already in state")
)

// Error carries a caller-facing detail message alongside one of the sentinel kinds.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

// Detail returns the caller-facing message for err, or fallback when err has none.
func Detail(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return fallback
}
