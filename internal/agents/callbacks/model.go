package callbacks

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"

	"stockagent/internal/metrics"
	"stockagent/pkg/logger"
)

// UsageMetricsCallback records token usage reported by the model for agentName.
// The response is passed through unchanged.
func UsageMetricsCallback(agentName string) llmagent.AfterModelCallback {
	return func(ctx agent.CallbackContext, resp *model.LLMResponse, respErr error) (*model.LLMResponse, error) {
		if respErr != nil || resp == nil || resp.UsageMetadata == nil {
			return resp, respErr
		}

		usage := resp.UsageMetadata
		metrics.AgentTokens.WithLabelValues(agentName, "input").Add(float64(usage.PromptTokenCount))
		metrics.AgentTokens.WithLabelValues(agentName, "output").Add(float64(usage.CandidatesTokenCount))

		logger.Get().Debugf("Tokens used by %s: prompt=%d completion=%d total=%d",
			agentName,
			usage.PromptTokenCount,
			usage.CandidatesTokenCount,
			usage.TotalTokenCount,
		)

		return resp, nil
	}
}
