package agents

// Role identifies an agent specialization. Role names double as keys in the agents file.
type Role string

const (
	RoleWebSearch Role = "web_search"
	RoleFinance   Role = "finance"
)

// AgentName returns the framework identifier used for an agent of this role.
func (r Role) AgentName() string {
	return string(r) + "_agent"
}

// Capability is a single tool facet an agent may be granted.
type Capability string

const (
	CapabilityWebSearch              Capability = "web_search"
	CapabilityStockPrice             Capability = "stock_price"
	CapabilityAnalystRecommendations Capability = "analyst_recommendations"
	CapabilityStockFundamentals      Capability = "stock_fundamentals"
	CapabilityCompanyInfo            Capability = "company_info"
	CapabilityTechnicalIndicators    Capability = "technical_indicators"
)

// ToolCapabilitySet lists which tool facets are active for an agent.
// Each flag is independent of the others.
type ToolCapabilitySet struct {
	WebSearch              bool
	StockPrice             bool
	AnalystRecommendations bool
	StockFundamentals      bool
	CompanyInfo            bool
	TechnicalIndicators    bool
}

// Capabilities returns the enabled flags in declaration order.
func (s ToolCapabilitySet) Capabilities() []Capability {
	flags := []struct {
		on  bool
		cap Capability
	}{
		{s.WebSearch, CapabilityWebSearch},
		{s.StockPrice, CapabilityStockPrice},
		{s.AnalystRecommendations, CapabilityAnalystRecommendations},
		{s.StockFundamentals, CapabilityStockFundamentals},
		{s.CompanyInfo, CapabilityCompanyInfo},
		{s.TechnicalIndicators, CapabilityTechnicalIndicators},
	}

	caps := make([]Capability, 0, len(flags))
	for _, f := range flags {
		if f.on {
			caps = append(caps, f.cap)
		}
	}
	return caps
}

// AgentConfig describes one agent. Values are built at startup and never mutated.
type AgentConfig struct {
	Role         Role
	Name         string
	Description  string
	Instructions []string
	Tools        ToolCapabilitySet

	Markdown      bool
	ShowToolCalls bool
}

// TeamConfig describes the combined agent delegating to its members.
// Instructions is a deduplicated set, kept sorted for determinism.
type TeamConfig struct {
	Name         string
	Description  string
	Members      []AgentConfig
	Instructions []string

	Markdown      bool
	ShowToolCalls bool
}
