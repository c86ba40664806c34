package usecase

import "errors"

// Category sentinels for handler-side status mapping. Usecases return them
// wrapped with a caller-facing message via fail().
var (
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("access denied")
	ErrUpstream   = errors.New("upstream service error")
)

type categorizedError struct {
	kind error
	msg  string
}

func (e *categorizedError) Error() string { return e.msg }

func (e *categorizedError) Unwrap() error { return e.kind }

// fail builds an error that matches kind under errors.Is while keeping msg as
// the full caller-facing message.
func fail(kind error, msg string) error {
	return &categorizedError{kind: kind, msg: msg}
}
