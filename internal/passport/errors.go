package passport

import (
	"errors"
	"fmt"
)

// ErrPassportUnreadable is returned when a passport file is missing or is not a valid PDF.
var ErrPassportUnreadable = errors.New("passport unreadable")

// ParseError wraps an unexpected failure while decoding passport content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("passport parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
