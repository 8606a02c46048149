package domain

import "fmt"

// Error kinds. The boundary layer maps kinds to status codes; this
// package only classifies.
var (
	ErrBadRequest        = fmt.Errorf("bad request")
	ErrNotFound          = fmt.Errorf("not found")
	ErrInsufficientStock = fmt.Errorf("insufficient stock")
	ErrInternal          = fmt.Errorf("internal failure")
)

// Errorf builds an error that formats as the given message while matching
// kind under errors.Is.
func Errorf(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
