package callbacks

import (
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/tool"

	"stockagent/pkg/logger"
)

// ShowToolCallsCallback logs every tool call an agent makes with its arguments.
// It never short-circuits the call.
func ShowToolCallsCallback(log *logger.Logger) llmagent.BeforeToolCallback {
	return func(ctx tool.Context, t tool.Tool, args map[string]any) (map[string]any, error) {
		log.Infow("Tool call",
			"agent", ctx.AgentName(),
			"tool", t.Name(),
			"args", args,
		)
		return nil, nil
	}
}
