package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CheckoutSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Total number of checkout sessions created",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed checkout initiations",
		},
		[]string{"reason"},
	)

	ReconcileAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_attempts_total",
			Help: "Total number of reconciliation attempts",
		},
	)

	ReconcileSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_success_total",
			Help: "Total number of successful reconciliations",
		},
	)

	ReconcileFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_failure_total",
			Help: "Total number of failed reconciliations",
		},
		[]string{"reason"},
	)

	AttributionFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attribution_failures_total",
			Help: "Completed payment events that could not be attributed to a user and products",
		},
	)

	EventsIgnoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_events_ignored_total",
			Help: "Webhook events acknowledged without reconciliation",
		},
		[]string{"kind"},
	)

	PurchasesGrantedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_granted_total",
			Help: "Total number of purchase records created",
		},
	)

	PurchasesDuplicateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_duplicate_total",
			Help: "Purchase grants skipped because the record already existed",
		},
	)

	PurchaseGrantFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_grant_failure_total",
			Help: "Purchase grants that failed and await redelivery",
		},
		[]string{"reason"},
	)

	DownloadsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "downloads_issued_total",
			Help: "Total number of signed download URLs issued",
		},
	)

	DownloadsDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "downloads_denied_total",
			Help: "Download requests denied for missing entitlement",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func RecordCheckoutSession() {
	CheckoutSessionsTotal.Inc()
}

func RecordCheckoutFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
}

func RecordReconcileAttempt() {
	ReconcileAttemptsTotal.Inc()
}

func RecordReconcileSuccess() {
	ReconcileSuccessTotal.Inc()
}

func RecordReconcileFailure(reason string) {
	ReconcileFailureTotal.WithLabelValues(reason).Inc()
}

func RecordAttributionFailure() {
	AttributionFailuresTotal.Inc()
}

func RecordEventIgnored(kind string) {
	EventsIgnoredTotal.WithLabelValues(kind).Inc()
}

func RecordPurchaseGranted() {
	PurchasesGrantedTotal.Inc()
}

func RecordPurchaseDuplicate() {
	PurchasesDuplicateTotal.Inc()
}

func RecordPurchaseGrantFailure(reason string) {
	PurchaseGrantFailureTotal.WithLabelValues(reason).Inc()
}

func RecordDownloadIssued() {
	DownloadsIssuedTotal.Inc()
}

func RecordDownloadDenied() {
	DownloadsDeniedTotal.Inc()
}
