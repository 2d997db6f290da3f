package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import/report counters for the presence engine. Registered on the
// default registry and served by promhttp on /metrics.
var (
	RowsRead = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "rows_read_total",
		Help:      "Spreadsheet rows read across all imports.",
	})

	EventsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "events_inserted_total",
		Help:      "Presence events persisted across all imports.",
	})

	RowsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "rows_discarded_total",
		Help:      "Rows dropped because no person name could be resolved.",
	})

	FallbackTimestamps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "fallback_timestamps_total",
		Help:      "Events stored with a wall-clock fallback timestamp.",
	})

	ImportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "failures_total",
		Help:      "Imports aborted by a read or store failure.",
	})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "presenca",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Wall time of whole imports, read to last chunk.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "presenca",
		Subsystem: "report",
		Name:      "generated_total",
		Help:      "Monthly frequency reports computed.",
	})
)
