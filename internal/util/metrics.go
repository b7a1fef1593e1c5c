package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_completed_total",
		Help: "Total number of sales committed to the ledger",
	})

	SalesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Total number of refused sale attempts",
	}, []string{"reason"})

	RecognizedSalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recognized_sales_total",
		Help: "Total number of sales recorded via image recognition",
	})

	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revenue_total",
		Help: "Cumulative revenue across committed sales",
	})

	StockAdjustmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Total number of manual stock edits and variant additions",
	})

	RecognitionRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recognition_requests_total",
		Help: "Total recognition gateway calls by outcome",
	}, []string{"outcome"})

	RecognitionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recognition_latency_seconds",
		Help:    "Latency of recognition gateway calls",
		Buckets: prometheus.DefBuckets,
	})

	PrintJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "print_jobs_total",
		Help: "Total receipt print jobs by outcome",
	}, []string{"outcome"})

	PersistenceSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "persistence_saves_total",
		Help: "Total blob saves through the persistence gateway",
	}, []string{"scope", "outcome"})

	SnapshotImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_imports_total",
		Help: "Total snapshot imports by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
