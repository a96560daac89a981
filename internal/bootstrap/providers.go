package bootstrap

import (
	"context"

	"stockagent/internal/adapters/config"
	"stockagent/internal/adapters/duckduckgo"
	errnoop "stockagent/internal/adapters/errors/noop"
	"stockagent/internal/adapters/errors/sentry"
	"stockagent/internal/adapters/yahoo"
	"stockagent/internal/agents"
	"stockagent/internal/metrics"
	"stockagent/internal/tools"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// ========================================
// Phase 1: Logging & error tracking
// ========================================

func (c *Container) initLogging() {
	cfg := c.Config

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		// Keep the default development logger
		logger.Get().Warnf("Failed to init logger: %v", err)
	}

	c.Log = logger.Get()
	c.Log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	c.ErrorTracker = provideErrorTracker(cfg, c.Log)
	logger.SetErrorTracker(c.ErrorTracker)

	metrics.Init()
}

func provideErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return errnoop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment, cfg.App.Version)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return errnoop.New()
	}

	log.Info("✓ Error tracking initialized (Sentry)")
	return tracker
}

// ========================================
// Phase 2: Agents file & model
// ========================================

func (c *Container) initAgentsFile(opts Options) error {
	path := c.Config.Agents.ConfigPath
	if opts.AgentsPath != "" {
		path = opts.AgentsPath
	}

	file, err := agents.LoadFile(path, opts.RequiredRoles...)
	if err != nil {
		c.Log.Errorw("Failed to load agents file", "path", path, "error", err)
		return err
	}

	c.AgentsFile = file
	modelID := file.ModelID
	if opts.DefaultModel {
		modelID = agents.DefaultModelID
	}
	c.Runtime = c.Config.Runtime(modelID)
	c.Log.Infow("✓ Agents file loaded", "path", path, "model", c.Runtime.ModelID)
	return nil
}

func (c *Container) initModel(ctx context.Context, newModel ModelConstructor) error {
	llm, err := newModel(ctx, c.Config.Model, c.Runtime)
	if err != nil {
		c.Log.Errorw("Failed to create model", "provider", c.Config.Model.Provider, "error", err)
		return errors.Wrap(err, "create model")
	}

	c.Model = llm
	return nil
}

// ========================================
// Phase 3: External adapters
// ========================================

func (c *Container) initAdapters() error {
	tc := c.Config.Tools

	finance, err := yahoo.New(yahoo.Options{
		BaseURL:           tc.FinanceBaseURL,
		CookieURL:         tc.FinanceCookieURL,
		UserAgent:         tc.UserAgent,
		Timeout:           tc.Timeout,
		RequestsPerMinute: tc.RequestsPerMinute,
	})
	if err != nil {
		return errors.Wrap(err, "create finance client")
	}
	c.Finance = finance

	c.Search = duckduckgo.New(duckduckgo.Options{
		BaseURL:           tc.SearchBaseURL,
		UserAgent:         tc.UserAgent,
		Timeout:           tc.Timeout,
		RequestsPerMinute: tc.RequestsPerMinute,
	})

	c.Log.Info("✓ Tool backends initialized")
	return nil
}

// ========================================
// Phase 4: Tools & agent factory
// ========================================

func (c *Container) initAgents() error {
	c.Tools = tools.NewRegistry()
	if err := tools.RegisterAllTools(c.Tools, shared.Deps{
		Search:           c.Search,
		MarketData:       c.Finance,
		Log:              c.Log,
		Timeout:          c.Config.Tools.Timeout,
		MaxSearchResults: c.Config.Tools.SearchMaxResults,
	}); err != nil {
		return errors.Wrap(err, "register tools")
	}

	factory, err := agents.NewFactory(agents.FactoryDeps{
		Model: c.Model,
		Tools: c.Tools,
		Log:   c.Log,
	})
	if err != nil {
		return errors.Wrap(err, "create agent factory")
	}
	c.Factory = factory

	c.Log.Infow("✓ Agent factory ready", "tools", len(c.Tools.List()))
	return nil
}
