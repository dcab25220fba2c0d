// Package clipboard abstracts the host clipboard used by copy, cut and paste.
//
// The engine only ever sees plain strings; this package owns moving them to
// and from the operating system.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// NewSystem returns the OS clipboard.
func NewSystem() System {
	return System{}
}

// ReadAll returns the clipboard text.
func (System) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadAll returns the stored text.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Default returns the system clipboard when one is available and an
// in-process clipboard otherwise.
func Default() Clipboard {
	if Available() {
		return NewSystem()
	}
	return NewMemory()
}
