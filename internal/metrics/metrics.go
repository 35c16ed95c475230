package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yoyo_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yoyo_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yoyo_orders_created_total",
			Help: "Orders created since start",
		},
	)

	StockDeductions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yoyo_stock_deductions_total",
			Help: "Stock deduction batches applied",
		},
	)

	DashboardRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yoyo_dashboard_refreshes_total",
			Help: "Dashboard snapshot rebuilds",
		},
	)
)
