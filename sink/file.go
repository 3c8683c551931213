package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/spacemeshos/writestream/shared"
)

const tmpSuffix = ".tmp"

// FileSink writes to a file it creates and exclusively owns.
type FileSink struct {
	logger *zap.Logger

	mode         os.FileMode
	bufferSize   int
	minFreeSpace uint64
	atomicCommit bool

	state state
	path  string
	file  *os.File
	buf   *bufio.Writer
}

// A compile time check to ensure that FileSink fully implements the ByteSink interface.
var _ ByteSink = (*FileSink)(nil)

func NewFileSink(opts ...OptionFunc) (*FileSink, error) {
	options, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	bufferSize, err := options.cfg.BufferBytes()
	if err != nil {
		return nil, err
	}
	minFreeSpace, err := options.cfg.MinFreeSpaceBytes()
	if err != nil {
		return nil, err
	}

	return &FileSink{
		logger:       options.logger,
		mode:         options.cfg.Mode(),
		bufferSize:   int(bufferSize),
		minFreeSpace: minFreeSpace,
		atomicCommit: options.cfg.AtomicCommit,
	}, nil
}

// Open creates or truncates the file at path for writing.
// With atomic commit enabled the data is staged next to path and only replaces it on Close.
func (s *FileSink) Open(path string) error {
	if err := s.state.openable(); err != nil {
		return err
	}

	if err := shared.ValidateSpace(filepath.Dir(path), s.minFreeSpace); err != nil {
		return err
	}

	filename := path
	if s.atomicCommit {
		filename = path + tmpSuffix
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, s.mode)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	s.logger.Debug("opened file", zap.String("filename", filename), zap.Bool("atomic", s.atomicCommit))

	s.path = path
	s.file = f
	s.buf = bufio.NewWriterSize(f, s.bufferSize)
	s.state = stateOpen
	return nil
}

func (s *FileSink) Write(p []byte) error {
	if err := s.state.usable(); err != nil {
		return err
	}

	if _, err := s.buf.Write(p); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}

func (s *FileSink) WriteString(str string) error {
	return WriteString(s, str)
}

func (s *FileSink) WriteInt(n int) error {
	return WriteInt(s, n)
}

// Flush pushes buffered bytes to the file.
func (s *FileSink) Flush() error {
	if err := s.state.usable(); err != nil {
		return err
	}

	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush file writer: %w", err)
	}
	return nil
}

// Path returns the destination path given to Open.
func (s *FileSink) Path() string {
	return s.path
}

// Close flushes and closes the file. The sink may be opened again afterwards.
func (s *FileSink) Close() error {
	if err := s.state.usable(); err != nil {
		return err
	}

	file, buf := s.file, s.buf
	s.file, s.buf = nil, nil
	s.state = stateClosed

	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush file writer: %w", err)
	}

	if info, err := file.Stat(); err == nil {
		s.logger.Info("closing file",
			zap.String("filename", s.path),
			zap.String("size", bytefmt.ByteSize(uint64(info.Size()))),
		)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if s.atomicCommit {
		if err := atomic.ReplaceFile(file.Name(), s.path); err != nil {
			return fmt.Errorf("atomic replace: %w", err)
		}
	}

	return nil
}
