package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	workflowTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Inspection workflow transitions applied",
		},
		[]string{"stage", "action"},
	)

	inventoryPostingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_postings_total",
			Help: "Inventory ledger postings by outcome",
		},
		[]string{"outcome"}, // created, merged, duplicate, failed
	)

	notificationsDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Notifications written per type",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(workflowTransitionsTotal)
	prometheus.MustRegister(inventoryPostingsTotal)
	prometheus.MustRegister(notificationsDispatchedTotal)
}

// Handler returns the Prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one served request. route is the registered pattern, not the raw path.
func RecordAPIRequest(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordTransition(stage, action string) {
	workflowTransitionsTotal.WithLabelValues(stage, action).Inc()
}

func RecordPosting(outcome string) {
	inventoryPostingsTotal.WithLabelValues(outcome).Inc()
}

func RecordNotifications(notificationType string, n int) {
	notificationsDispatchedTotal.WithLabelValues(notificationType).Add(float64(n))
}
