package fulfillment

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid webhook request")
	ErrInvalidResponse = errors.New("response must be a string, a rich response or a list of them")
	ErrInvalidEvent    = errors.New("event must be a string or an object")
	ErrInvalidHandler  = errors.New("handler must be a function or a map of functions")
)
