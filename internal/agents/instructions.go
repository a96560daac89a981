package agents

import (
	"slices"

	"stockagent/pkg/templates"
)

// CombineInstructions returns the union of every instruction across configs with
// duplicates removed. Order carries no meaning, so the result is sorted.
func CombineInstructions(configs map[Role]AgentConfig) []string {
	seen := make(map[string]struct{})
	for _, cfg := range configs {
		for _, instruction := range cfg.Instructions {
			seen[instruction] = struct{}{}
		}
	}

	combined := make([]string, 0, len(seen))
	for instruction := range seen {
		combined = append(combined, instruction)
	}
	slices.Sort(combined)

	return combined
}

// NewTeamConfig derives the team from its members. Members are ordered by role
// so the delegation tools are registered deterministically.
func NewTeamConfig(members map[Role]AgentConfig) TeamConfig {
	roles := make([]Role, 0, len(members))
	for role := range members {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	ordered := make([]AgentConfig, 0, len(roles))
	for _, role := range roles {
		ordered = append(ordered, members[role])
	}

	return TeamConfig{
		Name:          teamAgentName,
		Description:   "Coordinates the web search and finance agents to answer stock questions.",
		Members:       ordered,
		Instructions:  CombineInstructions(members),
		Markdown:      true,
		ShowToolCalls: true,
	}
}

const markdownHint = "Use markdown to format your answers."

type instructionData struct {
	Name         string
	Description  string
	Instructions []string
	Markdown     bool
	MarkdownHint string
}

// renderInstruction builds the system instruction text for an agent.
// Instructions keep their given order.
func renderInstruction(name, description string, instructions []string, markdown bool) (string, error) {
	return templates.Get().Render("agents/instruction", instructionData{
		Name:         name,
		Description:  description,
		Instructions: instructions,
		Markdown:     markdown,
		MarkdownHint: markdownHint,
	})
}
