package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	// OrdersCreated counts committed orders
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_orders_created_total",
		Help: "Orders committed to the ledger",
	})

	// OrderIntakeFailures counts rejected or failed intake attempts by reason
	OrderIntakeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_order_intake_failures_total",
			Help: "Order intake attempts that did not commit",
		},
		[]string{"reason"},
	)

	// OrderStatusChanges counts applied status updates by target status
	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_order_status_changes_total",
			Help: "Applied order status updates",
		},
		[]string{"status"},
	)

	// ReportBuildDuration observes report and dashboard computation time
	ReportBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backoffice_report_build_seconds",
			Help:    "Time spent loading and aggregating a report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	// CategorySalesFallbacks counts dashboard renders that used the fixed distribution
	CategorySalesFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backoffice_category_sales_fallback_total",
		Help: "Dashboard category sales served from the fallback distribution",
	})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTP records one finished request. pattern is the mux route
// pattern so ids in paths do not explode label cardinality.
func ObserveHTTP(method, pattern string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, pattern).Observe(float64(elapsed.Milliseconds()))
}
