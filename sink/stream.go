package sink

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// StreamSink writes to an already open handle, e.g. os.Stdout.
//
// Close releases the handle when it implements io.Closer, unless the sink was
// created WithBorrowed.
type StreamSink struct {
	logger   *zap.Logger
	borrowed bool

	state state
	w     io.Writer
}

// A compile time check to ensure that StreamSink fully implements the ByteSink interface.
var _ ByteSink = (*StreamSink)(nil)

func NewStreamSink(opts ...OptionFunc) (*StreamSink, error) {
	options, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &StreamSink{
		logger:   options.logger,
		borrowed: options.borrowed,
	}, nil
}

func (s *StreamSink) Open(w io.Writer) error {
	if err := s.state.openable(); err != nil {
		return err
	}
	if w == nil {
		return errors.New("stream is nil")
	}

	s.w = w
	s.state = stateOpen
	return nil
}

func (s *StreamSink) Write(p []byte) error {
	if err := s.state.usable(); err != nil {
		return err
	}

	n, err := s.w.Write(p)
	if err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("failed to write: expected %d bytes, wrote %d: %w", len(p), n, io.ErrShortWrite)
	}
	return nil
}

func (s *StreamSink) WriteString(str string) error {
	return WriteString(s, str)
}

func (s *StreamSink) WriteInt(n int) error {
	return WriteInt(s, n)
}

func (s *StreamSink) Close() error {
	if err := s.state.usable(); err != nil {
		return err
	}

	w := s.w
	s.w = nil
	s.state = stateClosed

	c, ok := w.(io.Closer)
	if s.borrowed || !ok {
		return nil
	}

	s.logger.Debug("closing stream")
	if err := c.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}
