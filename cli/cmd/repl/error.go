package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds  = errors.New("index out of range")
	ErrNoMatch      = errors.New("expression did not evaluate")
	ErrEditorFailed = errors.New("editor failed")
)
