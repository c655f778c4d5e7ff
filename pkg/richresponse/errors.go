package richresponse

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType        = errors.New("invalid argument type")
	ErrUnsupportedMessage = errors.New("unsupported message type")
	ErrInvalidKind        = errors.New("invalid message kind")
	ErrDuplicateKind      = errors.New("duplicate message kind")
)

// FieldError reports a wire field holding a value of the wrong type.
type FieldError struct {
	Field string
	Want  string
	Got   any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s argument must be %s, got %T", e.Field, e.Want, e.Got)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidType
}
