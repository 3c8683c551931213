// Package metrics exposes prometheus counters for sink activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "writestream"

const sinkLabel = "sink"

var (
	BytesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bytes_written_total",
		Help:      "bytes accepted by a sink",
	}, []string{sinkLabel})

	Writes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "write calls made to a sink",
	}, []string{sinkLabel})

	WriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_errors_total",
		Help:      "write calls that returned an error",
	}, []string{sinkLabel})
)

// SinkCounters is the set of counters bound to one sink name.
type SinkCounters struct {
	Bytes  prometheus.Counter
	Writes prometheus.Counter
	Errors prometheus.Counter
}

func ForSink(name string) SinkCounters {
	return SinkCounters{
		Bytes:  BytesWritten.WithLabelValues(name),
		Writes: Writes.WithLabelValues(name),
		Errors: WriteErrors.WithLabelValues(name),
	}
}

// Observe records the outcome of a single write of n bytes.
func (c SinkCounters) Observe(n int, err error) {
	c.Writes.Inc()
	if err != nil {
		c.Errors.Inc()
		return
	}
	c.Bytes.Add(float64(n))
}
