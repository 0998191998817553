package blot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("blotsync")

// Record outcomes.
const (
	outcomeDispatched  = "dispatched"
	outcomeDropped     = "dropped"
	outcomeSelfInduced = "self_induced"
)

var (
	scrollRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blotsync_scroll_records_total",
		Help: "Change records processed by scrolls, by outcome",
	}, []string{"outcome"})

	scrollOptimizeIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blotsync_scroll_optimize_iterations",
		Help:    "Mark-and-sweep passes needed for one normalization to settle",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
	})

	scrollDivergenceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blotsync_scroll_divergence_total",
		Help: "Normalizations that hit the iteration bound",
	})

	scrollSyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blotsync_scroll_sync_duration_seconds",
		Help:    "Duration of scroll synchronization passes",
		Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
)
