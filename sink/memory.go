package sink

import (
	"github.com/spacemeshos/writestream/shared"
)

// MemorySink writes into a caller provided buffer. After every write the bytes
// written so far are followed by a single shared.Terminator byte, so the buffer
// reads as a C string between writes. The buffer is never reallocated: a write
// that does not fit, terminator included, fails without writing anything.
type MemorySink struct {
	state state
	buf   []byte
	pos   int
}

// A compile time check to ensure that MemorySink fully implements the ByteSink interface.
var _ ByteSink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return new(MemorySink)
}

// Open binds the sink to buf and resets the write cursor to its start.
func (s *MemorySink) Open(buf []byte) error {
	if err := s.state.openable(); err != nil {
		return err
	}

	s.buf = buf
	s.pos = 0
	s.state = stateOpen
	return nil
}

func (s *MemorySink) Write(p []byte) error {
	if err := s.state.usable(); err != nil {
		return err
	}

	available := len(s.buf) - s.pos
	if len(p)+1 > available {
		return shared.BufferFullError{Required: len(p) + 1, Available: available}
	}

	s.pos += copy(s.buf[s.pos:], p)
	s.buf[s.pos] = shared.Terminator
	return nil
}

func (s *MemorySink) WriteString(str string) error {
	return WriteString(s, str)
}

func (s *MemorySink) WriteInt(n int) error {
	return WriteInt(s, n)
}

// Bytes returns the bytes written so far, excluding the terminator.
// The slice aliases the caller's buffer.
func (s *MemorySink) Bytes() []byte {
	return s.buf[:s.pos]
}

func (s *MemorySink) String() string {
	return string(s.Bytes())
}

// Len returns the number of bytes written so far.
func (s *MemorySink) Len() int {
	return s.pos
}

// Close leaves the buffer and its contents untouched.
func (s *MemorySink) Close() error {
	if err := s.state.usable(); err != nil {
		return err
	}

	s.state = stateClosed
	return nil
}
