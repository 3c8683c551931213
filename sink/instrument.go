package sink

import (
	"github.com/spacemeshos/writestream/metrics"
)

// InstrumentedSink counts the writes passing through to another sink.
type InstrumentedSink struct {
	inner    ByteSink
	counters metrics.SinkCounters
}

// A compile time check to ensure that InstrumentedSink fully implements the ByteSink interface.
var _ ByteSink = (*InstrumentedSink)(nil)

// Instrument wraps s, reporting its writes under the given sink name.
// Opening stays with the wrapped sink.
func Instrument(name string, s ByteSink) *InstrumentedSink {
	return &InstrumentedSink{
		inner:    s,
		counters: metrics.ForSink(name),
	}
}

func (s *InstrumentedSink) Write(p []byte) error {
	err := s.inner.Write(p)
	s.counters.Observe(len(p), err)
	return err
}

func (s *InstrumentedSink) WriteString(str string) error {
	return WriteString(s, str)
}

func (s *InstrumentedSink) WriteInt(n int) error {
	return WriteInt(s, n)
}

func (s *InstrumentedSink) Close() error {
	return s.inner.Close()
}

// Unwrap returns the wrapped sink.
func (s *InstrumentedSink) Unwrap() ByteSink {
	return s.inner
}
