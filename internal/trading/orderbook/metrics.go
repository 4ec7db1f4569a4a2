package orderbook

import "github.com/prometheus/client_golang/prometheus"

// MessagesProcessed counts processed messages by action code ("A", "C",
// "M", or the raw code of an ignored message).
var MessagesProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lob_messages_processed_total",
		Help: "Total number of feed messages processed by the order book engine",
	},
	[]string{"action"},
)

// ProcessLatency records per-message processing latency.
var ProcessLatency = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "lob_process_latency_seconds",
		Help:    "Latency in seconds to process a single feed message",
		Buckets: prometheus.DefBuckets,
	},
)

// RestingOrders reports the current number of resting orders per book.
var RestingOrders = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "lob_resting_orders",
		Help: "Number of orders currently resting in the book",
	},
	[]string{"symbol"},
)

// HashIndexLoadFactor reports the hash index's current load factor per book.
var HashIndexLoadFactor = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "lob_hash_load_factor",
		Help: "Current load factor of the order id hash index",
	},
	[]string{"symbol"},
)

func init() {
	prometheus.MustRegister(MessagesProcessed, ProcessLatency, RestingOrders, HashIndexLoadFactor)
}
