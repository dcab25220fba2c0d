package app

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.Base("application already running")

	// ErrStopped indicates the event loop has exited.
	ErrStopped = errors.Base("application stopped")

	// ErrNoFilePath indicates a save without a path on a document that was
	// never opened from disk.
	ErrNoFilePath = errors.Base("no file path")

	// ErrInvalidUTF8 indicates a file whose bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.Base("invalid UTF-8")
)

// FileError records a failed file operation.
type FileError struct {
	Op   string // "open", "save", "reload" or "watch"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised inside a Do callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
