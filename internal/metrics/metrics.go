package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	AccrualsGranted     prometheus.Counter
	AccrualsSkipped     prometheus.Counter
	RedemptionsTotal    *prometheus.CounterVec
	AnnouncementsTotal  *prometheus.CounterVec
	CurrentPointBalance *prometheus.GaugeVec

	// Database Metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueriesTotal  *prometheus.CounterVec

	// Validation Metrics
	ValidationErrors   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointsbot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pointsbot_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		AccrualsGranted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pointsbot_accruals_granted_total",
				Help: "Total number of point grants from chat activity",
			},
		),
		AccrualsSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pointsbot_accruals_skipped_total",
				Help: "Total number of chat messages inside the accrual cooldown",
			},
		),
		RedemptionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsbot_redemptions_total",
				Help: "Total number of reward redemption attempts by outcome",
			},
			[]string{"outcome"},
		),
		AnnouncementsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsbot_announcements_total",
				Help: "Total number of redemption announcement publishes by status",
			},
			[]string{"status"},
		),
		CurrentPointBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pointsbot_current_point_balance",
				Help: "Last observed point balance per user",
			},
			[]string{"user_id"},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointsbot_db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsbot_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		ValidationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsbot_validation_errors_total",
				Help: "Total number of request validation errors",
			},
			[]string{"field", "tag"},
		),
		ValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointsbot_validation_duration_seconds",
				Help:    "Request validation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordAccrualGranted() {
	m.AccrualsGranted.Inc()
}

func (m *Metrics) RecordAccrualSkipped() {
	m.AccrualsSkipped.Inc()
}

func (m *Metrics) RecordRedemption(outcome string) {
	m.RedemptionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordAnnouncement(status string) {
	m.AnnouncementsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) UpdatePointBalance(userID string, balance int64) {
	m.CurrentPointBalance.WithLabelValues(userID).Set(float64(balance))
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

func (m *Metrics) RecordValidationDuration(endpoint string, duration time.Duration) {
	m.ValidationDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
