package tools

import (
	"google.golang.org/adk/tool"

	"stockagent/internal/agents"
	"stockagent/internal/tools/finance"
	"stockagent/internal/tools/search"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

type binding struct {
	capability agents.Capability
	build      func(shared.Deps) (tool.Tool, error)
}

var (
	searchTools = []binding{
		{agents.CapabilityWebSearch, search.NewDuckDuckGoSearchTool},
	}

	financeTools = []binding{
		{agents.CapabilityStockPrice, finance.NewStockPriceTool},
		{agents.CapabilityAnalystRecommendations, finance.NewAnalystRecommendationsTool},
		{agents.CapabilityStockFundamentals, finance.NewStockFundamentalsTool},
		{agents.CapabilityCompanyInfo, finance.NewCompanyInfoTool},
		{agents.CapabilityTechnicalIndicators, finance.NewTechnicalIndicatorsTool},
	}
)

// RegisterAllTools registers every tool whose backend is configured in deps.
func RegisterAllTools(registry *Registry, deps shared.Deps) error {
	log := deps.Logger().With("component", "tool_registration")

	var bindings []binding
	if deps.HasSearch() {
		bindings = append(bindings, searchTools...)
	}
	if deps.HasMarketData() {
		bindings = append(bindings, financeTools...)
	}

	for _, b := range bindings {
		t, err := b.build(deps)
		if err != nil {
			return errors.Wrapf(err, "register %s", b.capability)
		}
		registry.Register(b.capability, t)
	}

	log.Debugw("Registered tools", "capabilities", registry.List())
	return nil
}
