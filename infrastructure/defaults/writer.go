package defaults

import (
	"io"
	"sync"

	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// WriterService adapts an io.Writer to ports.TextWriter.
type WriterService struct {
	mu sync.Mutex
	w  io.Writer
}

var _ ports.TextWriter = (*WriterService)(nil)

// NewWriterService creates a TextWriter over w.
func NewWriterService(w io.Writer) *WriterService {
	return &WriterService{w: w}
}

// Write writes text verbatim.
func (s *WriterService) Write(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, text)
	return err
}
