package sink

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/writestream/metrics"
	"github.com/spacemeshos/writestream/shared"
)

func TestDiscard(t *testing.T) {
	req := require.New(t)

	d := NewDiscard()
	req.ErrorIs(d.WriteString("x"), shared.ErrNotOpen)
	req.NoError(d.Open())
	req.ErrorIs(d.Open(), shared.ErrAlreadyOpen)
	req.NoError(d.WriteString("x"))
	req.NoError(d.WriteInt(5))
	req.NoError(d.Close())
	req.ErrorIs(d.Write(nil), shared.ErrClosed)
}

func TestHashSink(t *testing.T) {
	req := require.New(t)

	h := NewHashSink()
	req.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(h.Sum()))

	req.NoError(h.Open())
	req.NoError(h.WriteString("ab"))
	req.NoError(h.WriteString("c"))
	req.NoError(h.Close())

	req.Equal("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(h.Sum()))
	req.EqualValues(3, h.Size())
	req.ErrorIs(h.WriteString("d"), shared.ErrClosed)

	// Reopening starts a new digest.
	req.NoError(h.Open())
	req.Zero(h.Size())
	req.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(h.Sum()))
}

func TestHashSink_AsAggregatorChild(t *testing.T) {
	req := require.New(t)

	h1, h2 := NewHashSink(), NewHashSink()
	req.NoError(h1.Open())
	req.NoError(h2.Open())

	agg, err := NewAggregator()
	req.NoError(err)
	req.NoError(agg.Open(h1, h2))
	req.NoError(agg.WriteString("abc"))

	req.Equal(h1.Sum(), h2.Sum())
	req.Equal("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(h1.Sum()))
}

func TestInstrument(t *testing.T) {
	req := require.New(t)

	r := &recorder{}
	s := Instrument("instrument-test", r)
	req.Same(r, s.Unwrap())

	req.NoError(s.WriteString("abcd"))
	req.NoError(s.WriteInt(-12))

	r.err = errors.New("boom")
	req.Error(s.WriteString("x"))

	req.NoError(s.Close())
	req.Equal(1, r.closed)
	req.Equal("abcd-12", r.String())

	req.Equal(float64(7), testutil.ToFloat64(metrics.BytesWritten.WithLabelValues("instrument-test")))
	req.Equal(float64(3), testutil.ToFloat64(metrics.Writes.WithLabelValues("instrument-test")))
	req.Equal(float64(1), testutil.ToFloat64(metrics.WriteErrors.WithLabelValues("instrument-test")))
}
