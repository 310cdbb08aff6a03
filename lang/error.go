package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadTemplate     = NewError("failed to read template")
	ErrImport           = NewError("import failed")
	ErrNoLoader         = NewError("no template loader configured")
	ErrTemplateNotFound = NewError("template not found")
	ErrUnknownMacro     = NewError("unknown macro or function")
	ErrMaxDepthExceeded = NewError("maximum evaluation depth exceeded")
	ErrNoMatch          = NewError("expression did not match")
	ErrInvalidImport    = NewError("import path is not text")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface as "<msg>: <cause>", omitting whichever
// part is unset.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors
// produced by [Error.Wrap] and [Error.With] share the message of their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && len(t.attrs) == 0 && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }
