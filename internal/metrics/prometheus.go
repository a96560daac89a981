package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Agent metrics
	AgentQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockagent_agent_queries_total",
			Help: "Total number of queries issued to an agent",
		},
		[]string{"agent", "status"}, // status: success|error
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockagent_agent_latency_seconds",
			Help:    "End-to-end agent query latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"agent"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockagent_agent_tokens_total",
			Help: "Total tokens reported by the model per agent",
		},
		[]string{"agent", "type"}, // type: input|output
	)

	// Model provider metrics
	ModelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockagent_model_calls_total",
			Help: "Total number of chat completion calls",
		},
		[]string{"provider", "model", "status"}, // status: success|error|rate_limited
	)

	ModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockagent_model_latency_seconds",
			Help:    "Chat completion latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 60},
		},
		[]string{"provider", "model"},
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockagent_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"},
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockagent_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// External API metrics
	ExternalAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockagent_external_api_calls_total",
			Help: "Total number of calls to search and market data APIs",
		},
		[]string{"api", "endpoint", "status"},
	)
)

var registerOnce sync.Once

// Init registers all metrics with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AgentQueries,
			AgentLatency,
			AgentTokens,
			ModelCalls,
			ModelLatency,
			ToolExecutions,
			ToolLatency,
			ExternalAPICalls,
		)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordAgentQuery records one query against an agent
func RecordAgentQuery(agent string, latency time.Duration, err error) {
	AgentQueries.WithLabelValues(agent, status(err)).Inc()
	AgentLatency.WithLabelValues(agent).Observe(latency.Seconds())
}

// RecordModelCall records a chat completion call
func RecordModelCall(provider, model string, latency time.Duration, err error) {
	ModelCalls.WithLabelValues(provider, model, status(err)).Inc()
	ModelLatency.WithLabelValues(provider, model).Observe(latency.Seconds())
}

// RecordModelRateLimited records a call rejected by the local limiter
func RecordModelRateLimited(provider, model string) {
	ModelCalls.WithLabelValues(provider, model, "rate_limited").Inc()
}

// RecordToolExecution records a tool execution
func RecordToolExecution(tool string, latency time.Duration, err error) {
	ToolExecutions.WithLabelValues(tool, status(err)).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordExternalAPICall records an outbound call to a search or market data API
func RecordExternalAPICall(api, endpoint string, err error) {
	ExternalAPICalls.WithLabelValues(api, endpoint, status(err)).Inc()
}
