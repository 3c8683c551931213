package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotOpen           = errors.New("not open")
	ErrAlreadyOpen       = errors.New("already open")
	ErrClosed            = errors.New("already closed")
	ErrBufferFull        = errors.New("buffer full")
	ErrInvalidWidth      = errors.New("invalid bit width")
	ErrInsufficientSpace = errors.New("insufficient disk space")
)

// ChildWriteError is returned by a fan-out write when one of the children fails.
// Children preceding Index have already received the write.
type ChildWriteError struct {
	Index int
	Err   error
}

func (err ChildWriteError) Error() string {
	return fmt.Sprintf("child %d write failed: %v", err.Index, err.Err)
}

func (err ChildWriteError) Unwrap() error {
	return err.Err
}

// BufferFullError describes a memory write which did not fit into the remaining capacity.
type BufferFullError struct {
	Required  int
	Available int
}

func (err BufferFullError) Error() string {
	return fmt.Sprintf("%v; required: %d bytes, available: %d bytes", ErrBufferFull, err.Required, err.Available)
}

func (err BufferFullError) Is(target error) bool {
	return target == ErrBufferFull
}
