package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedRecord is returned when a file ends inside a record.
	ErrUnterminatedRecord = errors.New("record has no #end")
	// ErrUnterminatedQuote is returned when a file ends inside a quoted string.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
)

// Error locates a structural error in a source file.
type Error struct {
	Path string
	// Line is the 1-based line where the broken record or string starts.
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
