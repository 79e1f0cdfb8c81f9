package types

import (
	"errors"
	"fmt"
)

// Decode and encode error classes. Every structured error below unwraps to
// one of these so callers can test with errors.Is.
var (
	ErrFormat              = errors.New("format error")
	ErrTruncatedInput      = errors.New("truncated input")
	ErrAssembly            = errors.New("assembly error")
	ErrMissingCollaborator = errors.New("missing collaborator")
	ErrIO                  = errors.New("i/o error")
)

// Graph validation errors.
var (
	ErrInvalidReference = errors.New("invalid reference")
)

// FormatError reports a line that does not match the field count or field
// types required by its keyword.
type FormatError struct {
	Line    int    // 1-based source line, 0 when unknown
	Keyword string // record keyword
	Field   string // offending field, empty for whole-line problems
	Msg     string
	Err     error // underlying parse error, if any
}

func (e *FormatError) Error() string {
	msg := "format error"
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Keyword != "" {
		msg += fmt.Sprintf(" (%s", e.Keyword)
		if e.Field != "" {
			msg += "." + e.Field
		}
		msg += ")"
	}
	msg += ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error { return e.Err }

// Is matches ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// TruncatedInputError reports that input ended before a declared count was
// satisfied.
type TruncatedInputError struct {
	Line    int
	Keyword string
	What    string // what was being counted, e.g. "pipes" or "cells"
	Want    int
	Got     int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at line %d (%s): want %d %s, got %d",
		e.Line, e.Keyword, e.Want, e.What, e.Got)
}

// Is matches ErrTruncatedInput.
func (e *TruncatedInputError) Is(target error) bool { return target == ErrTruncatedInput }

// AssemblyError reports a record that is structurally orphaned, such as a
// NODE line outside any SLINK or a TS block before the DATASET header.
type AssemblyError struct {
	Line    int
	Keyword string
	Msg     string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly error at line %d (%s): %s", e.Line, e.Keyword, e.Msg)
}

// Is matches ErrAssembly.
func (e *AssemblyError) Is(target error) bool { return target == ErrAssembly }

// MissingCollaboratorError reports that a required collaborator (mask,
// raster codec, stored row) was not available. Callers may choose to
// ignore it; the core never does so silently.
type MissingCollaboratorError struct {
	Collaborator string
	Msg          string
	Err          error
}

func (e *MissingCollaboratorError) Error() string {
	msg := fmt.Sprintf("missing %s: %s", e.Collaborator, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MissingCollaboratorError) Unwrap() error { return e.Err }

// Is matches ErrMissingCollaborator.
func (e *MissingCollaboratorError) Is(target error) bool { return target == ErrMissingCollaborator }

// IOError wraps an underlying file open/read/write failure.
func IOError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
