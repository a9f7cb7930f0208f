package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_store_ops_total",
			Help: "Backing store operations",
		},
		[]string{"op", "status"},
	)
	storeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "board_store_op_duration_seconds",
			Help:    "Backing store latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"op"},
	)
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_snapshot_cache_lookups_total",
			Help: "Snapshot cache lookups",
		},
		[]string{"result"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(storeOps, storeDuration, cacheLookups)
}

func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeOps.WithLabelValues(op, status).Inc()
	storeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
