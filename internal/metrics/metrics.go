// Package metrics collects flow-level counters and timings. Services consume
// the Collector interface; the Prometheus implementation backs /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records wizard flow outcomes.
type Collector interface {
	RecordAuthAttempt(result string)
	RecordAuthRetry()
	RecordPayment(result string)
	RecordSubmission(result string)
	ObserveConversion(d time.Duration)
}

// Noop is the no-op collector used when metrics are disabled and in tests.
type Noop struct{}

func (Noop) RecordAuthAttempt(string)        {}
func (Noop) RecordAuthRetry()                {}
func (Noop) RecordPayment(string)            {}
func (Noop) RecordSubmission(string)         {}
func (Noop) ObserveConversion(time.Duration) {}

// Prometheus is the Collector backed by promauto-registered metrics.
type Prometheus struct {
	authAttempts       *prometheus.CounterVec
	authRetries        prometheus.Counter
	payments           *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	conversionDuration prometheus.Histogram
}

// NewPrometheus registers the wizard metrics on the default registry.
func NewPrometheus() *Prometheus {
	return &Prometheus{
		authAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remesa_auth_attempts_total",
			Help: "Wallet auth attempts by result",
		}, []string{"result"}),
		authRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesa_auth_retries_total",
			Help: "Wallet auth verification retries",
		}),
		payments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remesa_payments_total",
			Help: "Payment flow outcomes",
		}, []string{"result"}),
		submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remesa_submissions_total",
			Help: "Transaction submission outcomes",
		}, []string{"result"}),
		conversionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "remesa_conversion_duration_seconds",
			Help:    "Duration of amount-to-local-currency conversions",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (p *Prometheus) RecordAuthAttempt(result string) {
	p.authAttempts.WithLabelValues(result).Inc()
}

func (p *Prometheus) RecordAuthRetry() {
	p.authRetries.Inc()
}

func (p *Prometheus) RecordPayment(result string) {
	p.payments.WithLabelValues(result).Inc()
}

func (p *Prometheus) RecordSubmission(result string) {
	p.submissions.WithLabelValues(result).Inc()
}

func (p *Prometheus) ObserveConversion(d time.Duration) {
	p.conversionDuration.Observe(d.Seconds())
}
