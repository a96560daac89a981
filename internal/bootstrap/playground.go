package bootstrap

import (
	"context"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	"stockagent/internal/api"
	"stockagent/internal/api/health"
	"stockagent/pkg/errors"
)

// DefaultPlaygroundArgs serves the REST API and the web UI.
var DefaultPlaygroundArgs = []string{"web", "api", "webui"}

// ServePlayground builds the playground agents and hands them to the framework
// launcher, which owns routing and streaming. It blocks until the launcher returns.
func (c *Container) ServePlayground(ctx context.Context, args []string) error {
	members, err := c.PlaygroundAgents()
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "no playground agents configured")
	}
	if len(args) == 0 {
		args = DefaultPlaygroundArgs
	}

	loader, err := agent.NewMultiLoader(members[0], members[1:]...)
	if err != nil {
		c.Log.Errorw("Failed to create agent loader", "error", err)
		return errors.Wrap(err, "create agent loader")
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name())
	}
	c.startOpsServer(names)

	c.Log.Infow("Starting playground", "agents", names, "args", args)

	l := full.NewLauncher()
	if err := l.Execute(ctx, &launcher.Config{AgentLoader: loader}, args); err != nil {
		c.Log.Errorw("Playground failed", "error", err, "usage", l.CommandLineSyntax())
		return errors.Wrap(err, "run playground")
	}
	return nil
}

func (c *Container) startOpsServer(agentNames []string) {
	addr := c.Config.Metrics.Addr
	if addr == "" {
		return
	}

	c.OpsServer = api.NewServer(
		api.ServerConfig{Addr: addr},
		health.New(c.Config.App.Name, c.Config.App.Version, c.Runtime.ModelID, agentNames),
		c.Log,
	)

	go func() {
		if err := c.OpsServer.Start(); err != nil {
			c.Log.Errorw("Ops server stopped", "error", err)
		}
	}()
}
