// Package sink provides byte sinks: uniform write destinations backed by files,
// already open handles, memory buffers, or a fan-out over other sinks.
//
// Every sink follows the same lifecycle. It is created unopened, bound to its
// destination by a variant specific Open, written to, and finally closed.
// Writing outside of that window returns shared.ErrNotOpen or shared.ErrClosed.
// Sinks are not safe for concurrent use.
package sink

import (
	"strconv"

	"github.com/spacemeshos/writestream/shared"
)

// Writer is the minimal capability the default string and integer writes are built on.
type Writer interface {
	Write(p []byte) error
}

// ByteSink is a write destination.
type ByteSink interface {
	Writer
	WriteString(s string) error
	WriteInt(n int) error
	Close() error
}

// WriteString writes s to w as raw bytes.
func WriteString(w Writer, s string) error {
	return w.Write([]byte(s))
}

// WriteInt writes n to w in decimal ASCII, with a leading '-' for negative values.
func WriteInt(w Writer, n int) error {
	return WriteString(w, strconv.Itoa(n))
}

type state int

const (
	stateUnopened state = iota
	stateOpen
	stateClosed
)

var states = []string{
	"UNOPENED",
	"OPEN",
	"CLOSED",
}

func (s state) String() string {
	return states[s]
}

// usable reports whether writes and close are allowed in s.
func (s state) usable() error {
	switch s {
	case stateOpen:
		return nil
	case stateClosed:
		return shared.ErrClosed
	default:
		return shared.ErrNotOpen
	}
}

// openable reports whether the sink may be bound to a new destination in s.
func (s state) openable() error {
	if s == stateOpen {
		return shared.ErrAlreadyOpen
	}
	return nil
}
