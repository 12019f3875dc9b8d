package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Persistence core
	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_recorded_total",
		Help: "Successfully committed sale transactions",
	})
	SalesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sales_rejected_total",
			Help: "Sale transactions rolled back, by reason",
		},
		[]string{"reason"},
	)
	MovementsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_stock_movements_total",
			Help: "Committed inventory ledger entries, by type",
		},
		[]string{"type"},
	)
)
