// Package metrics holds the process-wide Prometheus collectors for the
// replay CLI. Per-book engine metrics live alongside the engine in
// internal/trading/orderbook; these track the replay run itself.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// MessagesRead counts feed messages decoded off the input file.
var MessagesRead = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "lob_replay_messages_read_total",
		Help: "Total number of feed messages decoded from the replay input",
	},
)

// ParseErrors counts malformed input rows skipped by the reader.
var ParseErrors = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "lob_replay_parse_errors_total",
		Help: "Total number of input rows that failed to decode",
	},
)

// RunDuration records how long a full replay run took to process its
// input file end to end.
var RunDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "lob_replay_run_duration_seconds",
		Help:    "Wall-clock duration of a replay run",
		Buckets: prometheus.DefBuckets,
	},
)

func init() {
	prometheus.MustRegister(MessagesRead, ParseErrors, RunDuration)
}
