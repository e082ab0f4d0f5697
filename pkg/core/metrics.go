package core

import (
	"time"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "verstore"
	metricsSubsystem = "core"

	outcomeOK = "ok"
)

// Metrics collected on writes and reads
type Metrics struct {
	Writes        *prometheus.CounterVec
	Reads         *prometheus.CounterVec
	WriteDuration prometheus.Histogram
	BodyBytes     prometheus.Histogram
}

// NewMetrics registers the core metrics. Collectors registered already are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	m.Writes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "writes_total",
		Help:      "Objects written, by outcome",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}
	m.Reads, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "reads_total",
		Help:      "Objects read, by outcome",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}
	m.WriteDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "write_duration_seconds",
		Help:      "Duration of object writes, including the wait for the commit lock",
		Buckets:   prometheus.DefBuckets,
	}))
	if err != nil {
		return nil, err
	}
	m.BodyBytes, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "body_bytes",
		Help:      "Size of the object bodies written",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
	}))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// outcome labels an error by its kind
func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	for _, kind := range []*errors.Error{
		status.ErrNotStorable,
		status.ErrPathConflict,
		status.ErrMissingObject,
		status.ErrCodec,
		status.ErrStoreIO,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "error"
}

func (m *Metrics) observeWrite(start time.Time, bodySize int, err error) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(outcome(err)).Inc()
	m.WriteDuration.Observe(time.Since(start).Seconds())
	if err == nil && bodySize > 0 {
		m.BodyBytes.Observe(float64(bodySize))
	}
}

func (m *Metrics) observeRead(err error) {
	if m == nil {
		return
	}
	m.Reads.WithLabelValues(outcome(err)).Inc()
}
