package bootstrap

import (
	"context"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/model"

	"stockagent/internal/adapters/adk"
	"stockagent/internal/adapters/config"
	"stockagent/internal/adapters/duckduckgo"
	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/agents"
	"stockagent/internal/api"
	"stockagent/internal/tools"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// ModelConstructor builds the shared model handle. Tests swap it for a fake.
type ModelConstructor func(ctx context.Context, cfg config.ModelConfig, rt config.Runtime) (model.LLM, error)

// Options tunes container construction.
type Options struct {
	// AgentsPath overrides cfg.Agents.ConfigPath when set
	AgentsPath string
	// RequiredRoles must be present in an agents file that exists on disk
	RequiredRoles []agents.Role
	// DefaultModel ignores the file's model_id; only MODEL_ID overrides agents.DefaultModelID
	DefaultModel bool
	NewModel     ModelConstructor
}

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Runtime      config.Runtime
	AgentsFile   *agents.FileConfig
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// External adapters
	Model   model.LLM
	Finance *yahoo.Client
	Search  *duckduckgo.Client

	// Agents
	Tools   *tools.Registry
	Factory *agents.Factory

	// Ops server, nil unless METRICS_ADDR is set
	OpsServer *api.Server
	Lifecycle *Lifecycle
}

// Team is the one-shot team agent together with the configs it was built from.
type Team struct {
	Agent   agent.Agent
	Config  agents.TeamConfig
	Members *agents.Registry
}

// New wires every dependency. The secret is checked before anything else is built,
// so a missing PHI_API_KEY never reaches the model constructor.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.NewModel == nil {
		opts.NewModel = adk.NewModel
	}

	c := &Container{
		Config:    cfg,
		Lifecycle: NewLifecycle(),
	}

	c.initLogging()

	if err := c.initAgentsFile(opts); err != nil {
		return nil, err
	}
	if err := c.initModel(ctx, opts.NewModel); err != nil {
		return nil, err
	}
	if err := c.initAdapters(); err != nil {
		return nil, err
	}
	if err := c.initAgents(); err != nil {
		return nil, err
	}

	return c, nil
}

// ScriptTeam builds the web search and finance agents from the agents file and
// joins them under a team agent carrying the union of their instructions.
func (c *Container) ScriptTeam() (*Team, error) {
	configs := agents.ScriptAgentConfigs(c.AgentsFile)

	members, err := c.Factory.CreateAgents(configs)
	if err != nil {
		c.Log.Errorw("Failed to create agents", "error", err)
		return nil, err
	}

	teamCfg := agents.NewTeamConfig(configs)
	team, err := c.Factory.CreateTeam(teamCfg, members)
	if err != nil {
		c.Log.Errorw("Failed to create team agent", "error", err)
		return nil, err
	}

	return &Team{Agent: team, Config: teamCfg, Members: members}, nil
}

// PlaygroundAgents builds the agents served by the playground, ordered by role.
func (c *Container) PlaygroundAgents() ([]agent.Agent, error) {
	members, err := c.Factory.CreateAgents(agents.PlaygroundAgentConfigs())
	if err != nil {
		c.Log.Errorw("Failed to create playground agents", "error", err)
		return nil, err
	}
	return members.Agents(), nil
}

// Shutdown releases what the container started.
func (c *Container) Shutdown(ctx context.Context) {
	c.Lifecycle.Shutdown(ctx, c.OpsServer, c.ErrorTracker, c.Log)
}
