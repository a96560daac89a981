package agents

import (
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"
	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/agenttool"

	"stockagent/internal/agents/callbacks"
	"stockagent/pkg/logger"
)

// ToolSource resolves capability flags into framework tools.
type ToolSource interface {
	ToolsFor(caps []Capability) ([]adktool.Tool, error)
}

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	Model adkmodel.LLM
	Tools ToolSource
	Log   *logger.Logger
}

// Factory creates configured agents. The model handle is shared by every agent it builds.
type Factory struct {
	model adkmodel.LLM
	tools ToolSource
	log   *logger.Logger
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.Model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if deps.Tools == nil {
		return nil, fmt.Errorf("tool source is required")
	}
	if deps.Log == nil {
		deps.Log = logger.Get()
	}

	return &Factory{
		model: deps.Model,
		tools: deps.Tools,
		log:   deps.Log.With("component", "agent_factory"),
	}, nil
}

// CreateAgent constructs a single agent from its config.
func (f *Factory) CreateAgent(cfg AgentConfig) (agent.Agent, error) {
	agentTools, err := f.tools.ToolsFor(cfg.Tools.Capabilities())
	if err != nil {
		return nil, fmt.Errorf("resolve tools for %s: %w", cfg.Role, err)
	}

	instruction, err := renderInstruction(cfg.Name, cfg.Description, cfg.Instructions, cfg.Markdown)
	if err != nil {
		return nil, fmt.Errorf("render instruction for %s: %w", cfg.Role, err)
	}

	llmCfg := llmagent.Config{
		Name:                cfg.Role.AgentName(),
		Description:         fmt.Sprintf("%s: %s", cfg.Name, cfg.Description),
		Model:               f.model,
		InstructionProvider: staticInstruction(instruction),
		Tools:               agentTools,
		AfterModelCallbacks: []llmagent.AfterModelCallback{callbacks.UsageMetricsCallback(cfg.Role.AgentName())},
	}
	if cfg.ShowToolCalls {
		llmCfg.BeforeToolCallbacks = []llmagent.BeforeToolCallback{callbacks.ShowToolCallsCallback(f.log)}
	}

	ag, err := llmagent.New(llmCfg)
	if err != nil {
		return nil, fmt.Errorf("create agent %s: %w", cfg.Role, err)
	}

	f.log.Debugw("Agent created", "agent", ag.Name(), "tools", len(agentTools), "instructions", len(cfg.Instructions))
	return ag, nil
}

// CreateAgents builds one agent per config and registers it by role.
func (f *Factory) CreateAgents(configs map[Role]AgentConfig) (*Registry, error) {
	reg := NewRegistry()
	for role, cfg := range configs {
		ag, err := f.CreateAgent(cfg)
		if err != nil {
			return nil, err
		}
		reg.Register(role, ag)
	}
	return reg, nil
}

// CreateTeam builds the team agent. Members are exposed to it as delegation tools,
// so their answers come back to the team agent, which writes the final response.
func (f *Factory) CreateTeam(team TeamConfig, members *Registry) (agent.Agent, error) {
	memberTools := make([]adktool.Tool, 0, len(team.Members))
	for _, m := range team.Members {
		ag, ok := members.Get(m.Role)
		if !ok {
			return nil, fmt.Errorf("team member %s not built", m.Role)
		}
		memberTools = append(memberTools, agenttool.New(ag, nil))
	}

	instruction, err := renderInstruction(team.Name, team.Description, team.Instructions, team.Markdown)
	if err != nil {
		return nil, fmt.Errorf("render team instruction: %w", err)
	}

	llmCfg := llmagent.Config{
		Name:                teamAgentID,
		Description:         team.Description,
		Model:               f.model,
		InstructionProvider: staticInstruction(instruction),
		Tools:               memberTools,
		AfterModelCallbacks: []llmagent.AfterModelCallback{callbacks.UsageMetricsCallback(teamAgentID)},
	}
	if team.ShowToolCalls {
		llmCfg.BeforeToolCallbacks = []llmagent.BeforeToolCallback{callbacks.ShowToolCallsCallback(f.log)}
	}

	ag, err := llmagent.New(llmCfg)
	if err != nil {
		return nil, fmt.Errorf("create team agent: %w", err)
	}

	f.log.Debugw("Team agent created", "members", len(memberTools), "instructions", len(team.Instructions))
	return ag, nil
}

const teamAgentID = "stock_analysis_team"

// staticInstruction hands the rendered text to the framework as is. Braces in
// file instructions are prose, not session-state placeholders.
func staticInstruction(text string) llmagent.InstructionProvider {
	return func(agent.ReadonlyContext) (string, error) {
		return text, nil
	}
}
