package observability

import (
	stderrors "errors"

	"devchat/errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "devchat"

// Metrics groups the chat log collectors. Each instance registers on its own
// Registerer so tests and servers never share global state.
type Metrics struct {
	Appends      prometheus.Counter
	Evictions    prometheus.Counter
	Truncations  prometheus.Counter
	Reads        prometheus.Counter
	Clears       prometheus.Counter
	Errors       *prometheus.CounterVec
	Entries      prometheus.Gauge
	StoredBytes  prometheus.Gauge
	OpenSessions prometheus.Gauge
	ProcessCPU   prometheus.Gauge
	ProcessRAM   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Appends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appends_total",
			Help:      "Total number of messages appended to the log",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of oldest messages evicted to respect capacity",
		}),
		Truncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncations_total",
			Help:      "Total number of messages cut down to the maximum length",
		}),
		Reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_total",
			Help:      "Total number of consolidated reads served",
		}),
		Clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clears_total",
			Help:      "Total number of clear requests",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors returned to callers by operation and kind",
		}, []string{"op", "kind"}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Messages currently retained",
		}),
		StoredBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_bytes",
			Help:      "Bytes currently retained across all messages",
		}),
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_sessions",
			Help:      "Channels currently opened on the log",
		}),
		ProcessCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "CPU usage of the daemon process",
		}),
		ProcessRAM: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_memory_percent",
			Help:      "Share of host memory used by the daemon process",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Appends, m.Evictions, m.Truncations, m.Reads, m.Clears,
			m.Errors, m.Entries, m.StoredBytes, m.OpenSessions, m.ProcessCPU, m.ProcessRAM)
	}
	return m
}

// ObserveSize publishes the current shape of the log.
func (m *Metrics) ObserveSize(entries, bytes int) {
	m.Entries.Set(float64(entries))
	m.StoredBytes.Set(float64(bytes))
}

func (m *Metrics) IncrError(op string, err error) {
	m.Errors.WithLabelValues(op, ErrorKind(err)).Inc()
}

// ErrorKind gives a bounded label for an error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, errors.ErrInvalidOffset):
		return "invalid_offset"
	case stderrors.Is(err, errors.ErrNoContent):
		return "no_content"
	case stderrors.Is(err, errors.ErrUnsupportedCommand):
		return "unsupported_command"
	case stderrors.Is(err, errors.ErrTransportFailure):
		return "transport"
	default:
		return "internal"
	}
}
