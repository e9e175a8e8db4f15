package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// CartMetrics records engine operation outcomes per mode.
type CartMetrics struct {
	duration  *prometheus.HistogramVec
	success   *prometheus.CounterVec
	failure   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	transfers *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cart_operation_duration_seconds",
		Help:      "Duration of cart engine operations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "mode"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operation_success_total",
		Help:      "Successful cart engine operations.",
	}, []string{"op", "mode"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operation_failure_total",
		Help:      "Failed cart engine operations by error code.",
	}, []string{"op", "mode", "code"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operation_rejected_total",
		Help:      "Operations rejected because the same line was already in flight.",
	}, []string{"op"})
	transfers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_transfer_lines_total",
		Help:      "Guest cart lines replayed against the remote cart at sign-in.",
	}, []string{"outcome"})
	reg.MustRegister(duration, success, failure, rejected, transfers)
	return &CartMetrics{
		duration:  duration,
		success:   success,
		failure:   failure,
		rejected:  rejected,
		transfers: transfers,
	}
}

// ObserveDuration records how long op took in mode.
func (c *CartMetrics) ObserveDuration(op, mode string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(op), normalizeLabel(mode)).Observe(duration.Seconds())
}

func (c *CartMetrics) IncSuccess(op, mode string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(op), normalizeLabel(mode)).Inc()
}

func (c *CartMetrics) IncFailure(op, mode, code string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(op), normalizeLabel(mode), normalizeLabel(code)).Inc()
}

func (c *CartMetrics) IncRejected(op string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(op)).Inc()
}

// AddTransferLines counts transferred and failed guest lines.
func (c *CartMetrics) AddTransferLines(transferred, failed int) {
	if c == nil || c.transfers == nil {
		return
	}
	if transferred > 0 {
		c.transfers.WithLabelValues("transferred").Add(float64(transferred))
	}
	if failed > 0 {
		c.transfers.WithLabelValues("failed").Add(float64(failed))
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
