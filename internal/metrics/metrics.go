// Package metrics holds the prometheus collectors shared by both transports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "baseline_mcp"

// Tool call outcomes.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

var (
	// ToolCalls counts tool invocations per transport and outcome.
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tool_calls_total",
		Help:      "Total number of tool invocations",
	}, []string{"tool", "transport", "status"}) // status: "success", "invalid", "error"

	// UpstreamLatency observes the duration of webstatus API requests.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_seconds",
		Help:      "Latency of upstream feature API requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)
