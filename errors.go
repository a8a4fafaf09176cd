package treedom

import (
	"errors"
	"fmt"
)

var (
	// ErrConsumed is returned when Feed or Finish is called after the
	// tree has been taken.
	ErrConsumed = errors.New("parser already consumed")

	// ErrClosed is returned when a parser is used after Close.
	ErrClosed = errors.New("parser closed")
)

// ParseError is a recoverable parse diagnostic. Diagnostics never
// abort construction; the tree remains usable even when the list is
// non-empty.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s at line %d", e.Message, e.Line)
}
