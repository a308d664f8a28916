package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// AI metrics
	AIRequestsTotal   *prometheus.CounterVec
	AIRequestDuration *prometheus.HistogramVec

	// Business metrics
	LeadsScored        *prometheus.CounterVec
	LeadScores         prometheus.Histogram
	SequencesGenerated *prometheus.CounterVec
	MessagesAnalyzed   prometheus.Counter
	StepsDispatched    *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		AIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of text-generation requests by operation and outcome",
			},
			[]string{"operation", "outcome"}, // ok, fallback
		),
		AIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "Text-generation request latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),

		LeadsScored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_scored_total",
				Help: "Total number of leads scored by intent tier",
			},
			[]string{"tier"}, // hot, warm, cold
		),
		LeadScores: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lead_score",
			Help:    "Distribution of overall lead scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		SequencesGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sequences_generated_total",
				Help: "Total number of follow-up sequences generated by content source",
			},
			[]string{"source"}, // ai, template
		),
		MessagesAnalyzed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "messages_analyzed_total",
			Help: "Total number of inbound messages run through sentiment analysis",
		}),
		StepsDispatched: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "steps_dispatched_total",
				Help: "Total number of follow-up steps dispatched by channel",
			},
			[]string{"channel", "status"}, // sent, failed
		),
	}

	return m
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, not actual path

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)

			return err
		}
	}
}

// RecordAIRequest records a text-generation request outcome
func (m *Metrics) RecordAIRequest(operation string, fellBack bool, duration time.Duration) {
	outcome := "ok"
	if fellBack {
		outcome = "fallback"
	}
	m.AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.AIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLeadScored records a scored lead
func (m *Metrics) RecordLeadScored(tier string, overall int) {
	m.LeadsScored.WithLabelValues(tier).Inc()
	m.LeadScores.Observe(float64(overall))
}

// RecordSequenceGenerated records a generated sequence
func (m *Metrics) RecordSequenceGenerated(aiGenerated bool) {
	source := "template"
	if aiGenerated {
		source = "ai"
	}
	m.SequencesGenerated.WithLabelValues(source).Inc()
}

// RecordMessageAnalyzed increments the analyzed messages counter
func (m *Metrics) RecordMessageAnalyzed() {
	m.MessagesAnalyzed.Inc()
}

// RecordStepDispatched records a dispatched follow-up step
func (m *Metrics) RecordStepDispatched(channel string, ok bool) {
	status := "failed"
	if ok {
		status = "sent"
	}
	m.StepsDispatched.WithLabelValues(channel, status).Inc()
}
