package blfshot

import (
	"errors"
	"fmt"
)

var (
	ErrFormat          = errors.New("blfshot: not a recognized screenshot container")
	ErrTruncated       = errors.New("blfshot: truncated data")
	ErrClosed          = errors.New("blfshot: container is closed")
	ErrFieldTooLong    = errors.New("blfshot: field too long")
	ErrInvalidText     = errors.New("blfshot: invalid text")
	ErrLimitExceeded   = errors.New("blfshot: limit exceeded")
	ErrInvalidSnapshot = errors.New("blfshot: invalid snapshot")
	ErrInvalidPayload  = errors.New("blfshot: invalid payload")
)

// FieldError reports a header field whose encoded form does not fit its slot.
type FieldError struct {
	Field string
	Len   int // encoded length including the terminator
	Max   int // slot width
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("blfshot: field %s is %d bytes, slot holds %d", e.Field, e.Len, e.Max)
}

func (e *FieldError) Unwrap() error { return ErrFieldTooLong }
