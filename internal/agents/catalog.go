package agents

const (
	webSearchAgentName = "Web search agent"
	financeAgentName   = "Finance agent"
	teamAgentName      = "Stock analysis team"

	webSearchRole = "A web search agent that can find information about stocks."
)

// ScriptAgentConfigs builds the one-shot agents from the agents file.
// Instructions are taken verbatim from the file, in file order.
func ScriptAgentConfigs(file *FileConfig) map[Role]AgentConfig {
	return map[Role]AgentConfig{
		RoleWebSearch: {
			Role:          RoleWebSearch,
			Name:          webSearchAgentName,
			Description:   webSearchRole,
			Instructions:  file.Instructions(RoleWebSearch),
			Tools:         ToolCapabilitySet{WebSearch: true},
			Markdown:      true,
			ShowToolCalls: true,
		},
		RoleFinance: {
			Role:         RoleFinance,
			Name:         financeAgentName,
			Description:  "A finance agent that can find information about stocks.",
			Instructions: file.Instructions(RoleFinance),
			Tools: ToolCapabilitySet{
				StockPrice:             true,
				AnalystRecommendations: true,
				StockFundamentals:      true,
				TechnicalIndicators:    true,
			},
			Markdown:      true,
			ShowToolCalls: true,
		},
	}
}

// PlaygroundAgentConfigs builds the agents served by the playground.
func PlaygroundAgentConfigs() map[Role]AgentConfig {
	return map[Role]AgentConfig{
		RoleWebSearch: {
			Role:          RoleWebSearch,
			Name:          webSearchAgentName,
			Description:   webSearchRole,
			Instructions:  []string{"Always include sources and verify information accuracy."},
			Tools:         ToolCapabilitySet{WebSearch: true},
			Markdown:      true,
			ShowToolCalls: true,
		},
		RoleFinance: {
			Role:         RoleFinance,
			Name:         financeAgentName,
			Description:  "A finance agent that provides detailed stock analysis.",
			Instructions: []string{"Present data in tables with clear explanations."},
			Tools: ToolCapabilitySet{
				StockPrice:             true,
				AnalystRecommendations: true,
				StockFundamentals:      true,
				CompanyInfo:            true,
				TechnicalIndicators:    true,
			},
			Markdown:      true,
			ShowToolCalls: true,
		},
	}
}
