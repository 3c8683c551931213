package sink

import (
	"hash"

	"github.com/minio/sha256-simd"
)

// HashSink computes the SHA-256 digest of everything written to it.
type HashSink struct {
	state state
	h     hash.Hash
	n     uint64
}

// A compile time check to ensure that HashSink fully implements the ByteSink interface.
var _ ByteSink = (*HashSink)(nil)

func NewHashSink() *HashSink {
	return new(HashSink)
}

// Open starts a new digest.
func (s *HashSink) Open() error {
	if err := s.state.openable(); err != nil {
		return err
	}

	s.h = sha256.New()
	s.n = 0
	s.state = stateOpen
	return nil
}

func (s *HashSink) Write(p []byte) error {
	if err := s.state.usable(); err != nil {
		return err
	}

	// hash.Hash never returns an error.
	_, _ = s.h.Write(p)
	s.n += uint64(len(p))
	return nil
}

func (s *HashSink) WriteString(str string) error {
	return WriteString(s, str)
}

func (s *HashSink) WriteInt(n int) error {
	return WriteInt(s, n)
}

// Sum returns the digest of the bytes written since Open. It stays available after Close.
func (s *HashSink) Sum() []byte {
	if s.h == nil {
		return sha256.New().Sum(nil)
	}
	return s.h.Sum(nil)
}

// Size returns the number of bytes hashed since Open.
func (s *HashSink) Size() uint64 {
	return s.n
}

func (s *HashSink) Close() error {
	if err := s.state.usable(); err != nil {
		return err
	}
	s.state = stateClosed
	return nil
}
