package mpt

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	//deletesCounter prometheus metric.
	deletesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of performed key deletions",
			Name:      "deletes_total",
			Namespace: "statetrie",
		},
	)
	//collapsesCounter prometheus metric.
	collapsesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of branch nodes collapsed after a deletion",
			Name:      "branch_collapses_total",
			Namespace: "statetrie",
		},
	)
	//arenaSize prometheus metric.
	arenaSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Current number of node records in the arena",
			Name:      "arena_nodes",
			Namespace: "statetrie",
		},
	)
	//flushedNodes prometheus metric.
	flushedNodes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of node records written to the backing store",
			Name:      "flushed_nodes_total",
			Namespace: "statetrie",
		},
	)
)

func init() {
	prometheus.MustRegister(
		deletesCounter,
		collapsesCounter,
		arenaSize,
		flushedNodes,
	)
}

func updateDeletesMetric() {
	deletesCounter.Inc()
}

func updateCollapsesMetric() {
	collapsesCounter.Inc()
}

func updateArenaSizeMetric(sz int) {
	arenaSize.Set(float64(sz))
}

func updateFlushedNodesMetric(n int) {
	flushedNodes.Add(float64(n))
}
