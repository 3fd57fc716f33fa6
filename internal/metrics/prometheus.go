package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Chat metrics
	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_chat_requests_total",
			Help: "Total number of chat requests",
		},
		[]string{"mode", "status"}, // status: success|error
	)

	ChatDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundline_chat_duration_seconds",
			Help:    "Chat request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)

	// LLM metrics
	LLMCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_llm_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"provider", "model", "status"}, // status: success|error|rate_limited
	)

	LLMLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundline_llm_latency_seconds",
			Help:    "LLM call latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "model"},
	)

	LLMTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_llm_tokens_total",
			Help: "Total tokens used",
		},
		[]string{"provider", "model", "type"}, // type: input|output
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"},
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundline_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Intake funnel metrics
	StepTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_step_transitions_total",
			Help: "Total dialogue step transitions",
		},
		[]string{"step", "outcome"}, // outcome: advanced|rejected
	)

	ApplicationsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_applications_completed_total",
			Help: "Total completed applications",
		},
		[]string{"loan_type", "probability"},
	)

	LeadsCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundline_leads_captured_total",
			Help: "Total captured leads",
		},
		[]string{"source"},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(ChatRequests)
	prometheus.MustRegister(ChatDuration)
	prometheus.MustRegister(LLMCalls)
	prometheus.MustRegister(LLMLatency)
	prometheus.MustRegister(LLMTokens)
	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)
	prometheus.MustRegister(StepTransitions)
	prometheus.MustRegister(ApplicationsCompleted)
	prometheus.MustRegister(LeadsCaptured)
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordChatRequest records one finished chat request.
func RecordChatRequest(mode string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ChatRequests.WithLabelValues(mode, status).Inc()
	ChatDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordLLMCall records one LLM round-trip.
func RecordLLMCall(provider, model string, latency time.Duration, inputTokens, outputTokens int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	LLMCalls.WithLabelValues(provider, model, status).Inc()
	LLMLatency.WithLabelValues(provider, model).Observe(latency.Seconds())
	if inputTokens > 0 {
		LLMTokens.WithLabelValues(provider, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		LLMTokens.WithLabelValues(provider, model, "output").Add(float64(outputTokens))
	}
}

// RecordToolExecution records one tool run.
func RecordToolExecution(tool string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ToolExecutions.WithLabelValues(tool, status).Inc()
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordStepTransition records one dialogue turn.
func RecordStepTransition(step string, rejected bool) {
	outcome := "advanced"
	if rejected {
		outcome = "rejected"
	}
	StepTransitions.WithLabelValues(step, outcome).Inc()
}
