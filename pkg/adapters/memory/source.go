package memory

import "context"

// Source implements ports.ProjectSource over an in-memory document, useful
// for tests and for projects assembled at runtime.
type Source struct {
	data []byte
}

// NewSource wraps a raw project document.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// Load returns the wrapped document.
func (s *Source) Load(_ context.Context) ([]byte, error) {
	return s.data, nil
}
