// Package bitstream packs values narrower than a byte into a byte sink,
// following the LSB pattern, where least-significant bits are written first.
package bitstream

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

func (b Bit) uint32() uint32 {
	if b {
		return 1
	}
	return 0
}
