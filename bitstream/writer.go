package bitstream

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/writestream/shared"
	"github.com/spacemeshos/writestream/sink"
)

type state int

const (
	stateUnopened state = iota
	stateOpen
	stateClosed
)

// BitWriter accumulates bits and writes every completed byte to an underlying sink,
// one Write call per byte. The sink is not owned: closing the BitWriter leaves it open.
//
// A failed sink write is sticky; every later call returns the same error.
type BitWriter struct {
	stream sink.Writer
	state  state
	err    error

	// acc holds n pending bits in its least-significant positions; bits above n are zero.
	acc     uint64
	n       uint
	pending [1]byte
}

// NewWriter returns a new, unopened instance of BitWriter.
func NewWriter() *BitWriter {
	return new(BitWriter)
}

// Open binds the writer to w and clears any pending bits.
func (bw *BitWriter) Open(w sink.Writer) error {
	if bw.state == stateOpen {
		return shared.ErrAlreadyOpen
	}
	if w == nil {
		return errors.New("bit writer sink is nil")
	}

	bw.stream = w
	bw.state = stateOpen
	bw.err = nil
	bw.acc = 0
	bw.n = 0
	return nil
}

func (bw *BitWriter) usable() error {
	switch bw.state {
	case stateOpen:
		return bw.err
	case stateClosed:
		return shared.ErrClosed
	default:
		return shared.ErrNotOpen
	}
}

// WriteBits writes the numBits LS bits of val, LS bit first. numBits must not exceed 32.
func (bw *BitWriter) WriteBits(val uint32, numBits uint) error {
	if err := bw.usable(); err != nil {
		return err
	}
	if numBits > shared.MaxBitWidth {
		return fmt.Errorf("%w: expected: <= %d, given: %d", shared.ErrInvalidWidth, shared.MaxBitWidth, numBits)
	}

	mask := uint64(1)<<numBits - 1
	bw.acc |= (uint64(val) & mask) << bw.n
	bw.n += numBits

	return bw.drain()
}

// drain writes out every completed byte.
func (bw *BitWriter) drain() error {
	for bw.n >= 8 {
		bw.pending[0] = byte(bw.acc)
		if err := bw.stream.Write(bw.pending[:]); err != nil {
			bw.err = fmt.Errorf("bit writer: %w", err)
			return bw.err
		}
		bw.acc >>= 8
		bw.n -= 8
	}
	return nil
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit Bit) error {
	return bw.WriteBits(bit.uint32(), 1)
}

// WriteByte writes a single byte, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(b byte) error {
	return bw.WriteBits(uint32(b), 8)
}

// Write writes the first numBits of data: whole bytes first, then the LS bits of the next byte.
func (bw *BitWriter) Write(data []byte, numBits int) error {
	if numBits < 0 || numBits > len(data)*8 {
		return fmt.Errorf("%w: expected: 0 <= numBits <= %d, given: %d", shared.ErrInvalidWidth, len(data)*8, numBits)
	}

	var idx int
	for numBits >= 8 {
		if err := bw.WriteByte(data[idx]); err != nil {
			return err
		}
		numBits -= 8
		idx++
	}

	if numBits > 0 {
		return bw.WriteBits(uint32(data[idx]), uint(numBits))
	}
	return nil
}

// WriteUint64BE writes the numBits LS bits of val, in Big-Endian byte order, regardless of the alignment.
// Trailing bits that do not form a whole byte are written MS bit first.
func (bw *BitWriter) WriteUint64BE(val uint64, numBits int) error {
	if numBits < 0 || numBits > 64 {
		return fmt.Errorf("%w: expected: 0 <= numBits <= 64, given: %d", shared.ErrInvalidWidth, numBits)
	}

	// Eliminate unnecessary MS bits.
	val <<= 64 - uint(numBits)

	for numBits >= 8 {
		if err := bw.WriteByte(byte(val >> 56)); err != nil {
			return err
		}
		val <<= 8
		numBits -= 8
	}

	for numBits > 0 {
		if err := bw.WriteBit(val>>63 == 1); err != nil {
			return err
		}
		val <<= 1
		numBits--
	}

	return nil
}

// Flush completes the pending partial byte by filling it with bit, and writes it.
// It does nothing when the writer is byte aligned.
func (bw *BitWriter) Flush(bit Bit) error {
	if err := bw.usable(); err != nil {
		return err
	}
	if bw.n == 0 {
		return nil
	}

	fill := 8 - bw.n
	var pad uint32
	if bit {
		pad = 1<<fill - 1
	}
	return bw.WriteBits(pad, fill)
}

// Buffered returns the number of bits waiting for their byte to complete.
func (bw *BitWriter) Buffered() uint {
	return bw.n
}

// Close writes a final zero-padded byte if any bits are pending, and marks the writer closed.
// The underlying sink is left open.
func (bw *BitWriter) Close() error {
	if bw.state != stateOpen {
		return bw.usable()
	}

	err := bw.Flush(Zero)
	bw.state = stateClosed
	bw.stream = nil
	return err
}
