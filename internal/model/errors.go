package model

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the core wraps one of these.
var (
	ErrEmptyInput         = errors.New("no data to parse")
	ErrMissingProfileInfo = errors.New("could not extract profile info")
	ErrNoPositionMarker   = errors.New("no position found in assembly list")
	ErrPercentageOverflow = errors.New("length is greater than the total length")
	ErrUnimplemented      = errors.New("not implemented")
	ErrWrongFileKind      = errors.New("unexpected file kind")
	ErrUnknownPosition    = errors.New("position has no assembly quantity")
)

// Error carries the category of a failure plus where it happened.
type Error struct {
	Kind   error  // one of the Err* sentinels
	Table  string // cutting table or position group, if any
	Detail string
}

func (e *Error) Error() string {
	switch {
	case e.Table != "" && e.Detail != "":
		return fmt.Sprintf("%s: %v: %s", e.Table, e.Kind, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	case e.Table != "":
		return fmt.Sprintf("%s: %v", e.Table, e.Kind)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds an *Error of the given kind.
func NewError(kind error, table, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Table:  table,
		Detail: fmt.Sprintf(format, args...),
	}
}
