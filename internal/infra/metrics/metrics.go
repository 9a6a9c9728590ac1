// Package metrics provides Prometheus metrics for Gearline: tick timing,
// network stress accounting, and process scheduler lifecycle counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tick Loop ──────────────────────────────────────────────────────────────

// TickDuration tracks how long one full simulation tick takes.
var TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "gearline",
	Name:      "tick_duration_seconds",
	Help:      "Duration of one simulation tick (scan, propagate, settle, schedule).",
	Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// TicksTotal counts completed simulation ticks.
var TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gearline",
	Name:      "ticks_total",
	Help:      "Total completed simulation ticks.",
})

// ─── Kinetic Network ────────────────────────────────────────────────────────

// NetworkStress tracks the network-wide stress after the ledger pass.
var NetworkStress = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gearline",
	Name:      "network_stress",
	Help:      "Current network-wide stress load.",
})

// NetworkCapacity tracks the network-wide stress capacity.
var NetworkCapacity = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gearline",
	Name:      "network_capacity",
	Help:      "Current network-wide stress capacity (nominal plus source bonuses).",
})

// NodesTotal tracks the number of nodes in the current network snapshot.
var NodesTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gearline",
	Name:      "network_nodes",
	Help:      "Nodes in the current network snapshot.",
})

// NodesPowered tracks how many nodes are powered.
var NodesPowered = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gearline",
	Name:      "network_nodes_powered",
	Help:      "Powered nodes in the current network snapshot.",
})

// Overloads counts full-network overload shutdowns.
var Overloads = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gearline",
	Name:      "network_overloads_total",
	Help:      "Total network-wide overload shutdowns.",
})

// ─── Process Scheduler ──────────────────────────────────────────────────────

// ProcessesActive tracks in-flight process instances.
var ProcessesActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gearline",
	Name:      "processes_active",
	Help:      "In-flight recipe process instances.",
})

// ProcessesStarted counts started processes.
var ProcessesStarted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gearline",
	Name:      "processes_started_total",
	Help:      "Process instances started since startup.",
})

// ProcessesCompleted counts completed processes.
var ProcessesCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gearline",
	Name:      "processes_completed_total",
	Help:      "Process instances completed since startup.",
})

// ProcessesCancelled counts processes cancelled by power loss.
var ProcessesCancelled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gearline",
	Name:      "processes_cancelled_total",
	Help:      "Process instances cancelled by power loss since startup.",
})
