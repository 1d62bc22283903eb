// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors that carry enough context to
// act on: the failed operation, the resource involved and concrete hints.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an actionable launcher error.
type Error struct {
	// Operation is a verb phrase describing what failed, e.g. "resolve
	// installation root".
	Operation string
	// Resource is the file, path or alias involved (optional).
	Resource string
	// Hints suggest how to fix the problem (optional).
	Hints []string
	// Cause is the underlying error (optional).
	Cause error
}

// New creates an Error for the given operation.
func New(operation string) *Error {
	return &Error{Operation: operation}
}

// WithResource sets the resource involved and returns the error.
func (e *Error) WithResource(resource string) *Error {
	e.Resource = resource
	return e
}

// WithHint appends a fix-it suggestion and returns the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hints = append(e.Hints, hint)
	return e
}

// Wrap records the underlying cause and returns the error.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}

// Error implements the error interface with the concise form.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("failed to ")
	b.WriteString(e.Operation)
	if e.Resource != "" {
		b.WriteString(": ")
		b.WriteString(e.Resource)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal display, hints included. With
// verbose set, the full cause chain is appended.
func (e *Error) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	for _, hint := range e.Hints {
		b.WriteString("\n  • ")
		b.WriteString(hint)
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nCause chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err.Error())
		}
	}
	return b.String()
}

// Display formats any error for the terminal, using Format for issue
// errors and Error() for everything else.
func Display(err error, verbose bool) string {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Format(verbose)
	}
	return err.Error()
}
