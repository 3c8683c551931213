package sink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spacemeshos/writestream/shared"
)

func TestAggregator_FanOut(t *testing.T) {
	req := require.New(t)

	var order []string
	a := &recorder{name: "a", log: &order}
	b := &recorder{name: "b", log: &order}
	c := &recorder{name: "c", log: &order}

	agg, err := NewAggregator()
	req.NoError(err)
	req.NoError(agg.Open(a, b, c, a))
	req.Equal(4, agg.Len())

	req.NoError(agg.WriteString("Hey hop!\n"))
	req.NoError(agg.WriteInt(-3))

	req.Equal([]string{"a", "b", "c", "a", "a", "b", "c", "a"}, order)
	req.Equal("Hey hop!\n-3", b.String())
	req.Equal("Hey hop!\n-3", c.String())
	// a is registered twice and sees every write twice.
	req.Equal("Hey hop!\nHey hop!\n-3-3", a.String())
}

func TestAggregator_Variants(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "abc.txt")
	file, err := NewFileSink()
	req.NoError(err)
	req.NoError(file.Open(path))

	std := &closeRecorder{}
	stream, err := NewStreamSink()
	req.NoError(err)
	req.NoError(stream.Open(std))

	buf := make([]byte, 10000)
	mem := NewMemorySink()
	req.NoError(mem.Open(buf))

	agg, err := NewAggregator()
	req.NoError(err)
	req.NoError(agg.Open(file, stream, mem))

	expected := ""
	for i := 0; i < 10; i++ {
		req.NoError(agg.WriteString("Hey hop!\n"))
		expected += "Hey hop!\n"
	}

	req.NoError(file.Close())
	req.NoError(agg.Close())

	data, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(expected, string(data))
	req.Equal(expected, std.String())
	req.Equal(expected, mem.String())
	req.Equal(shared.Terminator, buf[len(expected)])

	// Closing the aggregator left the remaining children open.
	req.Zero(std.closed)
	req.NoError(mem.WriteString("!"))
	req.NoError(stream.WriteString("!"))
}

func TestAggregator_Reopen(t *testing.T) {
	req := require.New(t)

	core, logs := observer.New(zapcore.DebugLevel)
	agg, err := NewAggregator(WithLogger(zap.New(core)))
	req.NoError(err)

	a, b := &recorder{}, &recorder{}
	req.NoError(agg.Open(a, b))
	req.NoError(agg.WriteString("1"))

	c := &recorder{}
	req.NoError(agg.Open(c))
	req.Equal(1, agg.Len())
	req.NoError(agg.WriteString("2"))

	released := logs.FilterMessage("released aggregator state")
	req.Equal(1, released.Len())
	req.EqualValues(2, released.All()[0].ContextMap()["children"])

	req.Zero(a.closed)
	req.Zero(b.closed)
	req.Equal("1", a.String())
	req.Equal("1", b.String())
	req.Equal("2", c.String())
}

func TestAggregator_ChildFailure(t *testing.T) {
	req := require.New(t)

	errChild := errors.New("disk full")
	a := &recorder{}
	b := &recorder{err: errChild}
	c := &recorder{}

	agg, err := NewAggregator()
	req.NoError(err)
	req.NoError(agg.Open(a, b, c))

	err = agg.WriteString("x")
	req.ErrorIs(err, errChild)

	var childErr shared.ChildWriteError
	req.ErrorAs(err, &childErr)
	req.Equal(1, childErr.Index)

	// Partial effect: children before the failing one were written.
	req.Equal("x", a.String())
	req.Zero(c.Len())
}

func TestAggregator_Lifecycle(t *testing.T) {
	req := require.New(t)

	agg, err := NewAggregator()
	req.NoError(err)
	req.Zero(agg.Len())
	req.ErrorIs(agg.WriteString("x"), shared.ErrNotOpen)
	req.ErrorIs(agg.Close(), shared.ErrNotOpen)

	req.Error(agg.Open(&recorder{}, nil))
	req.ErrorIs(agg.WriteString("x"), shared.ErrNotOpen)

	r := &recorder{}
	req.NoError(agg.Open())
	req.NoError(agg.WriteString("nobody listens"))
	req.NoError(agg.Open(r))
	req.NoError(agg.Close())
	req.Zero(r.closed)
	req.ErrorIs(agg.WriteString("x"), shared.ErrClosed)
	req.ErrorIs(agg.Close(), shared.ErrClosed)

	// A closed aggregator can be opened again.
	req.NoError(agg.Open(r))
	req.NoError(agg.WriteString("y"))
	req.Equal("y", r.String())
}

func TestAggregator_Nested(t *testing.T) {
	req := require.New(t)

	leaf := &recorder{}
	inner, err := NewAggregator()
	req.NoError(err)
	req.NoError(inner.Open(leaf))

	outer, err := NewAggregator()
	req.NoError(err)
	req.NoError(outer.Open(inner, leaf))

	req.NoError(outer.WriteString("ab"))
	req.Equal("abab", leaf.String())
}
