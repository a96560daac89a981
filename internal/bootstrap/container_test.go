package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"

	"stockagent/internal/adapters/config"
	"stockagent/internal/agents"
	"stockagent/internal/services/analysis"
	"stockagent/internal/testsupport"
	"stockagent/pkg/errors"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "stockagent", Env: "test", LogLevel: "error", Version: "test"},
		Secrets: config.SecretsConfig{APIKey: secret},
		Model:   config.ModelConfig{Provider: config.ProviderGroq},
		Tools: config.ToolsConfig{
			SearchBaseURL:    "http://127.0.0.1:0",
			FinanceBaseURL:   "http://127.0.0.1:0",
			FinanceCookieURL: "http://127.0.0.1:0",
			SearchMaxResults: 5,
		},
	}
}

type modelSpy struct {
	calls int
	rt    config.Runtime
	llm   model.LLM
}

func (s *modelSpy) build(_ context.Context, _ config.ModelConfig, rt config.Runtime) (model.LLM, error) {
	s.calls++
	s.rt = rt
	return s.llm, nil
}

func TestNew_MissingSecretBuildsNothing(t *testing.T) {
	spy := &modelSpy{llm: testsupport.NewFakeLLM("m1")}

	c, err := New(context.Background(), testConfig(""), Options{NewModel: spy.build})

	require.Error(t, err)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, errors.ErrMissingAPIKey))
	assert.Zero(t, spy.calls)
}

func TestNew_InvalidAgentsFile(t *testing.T) {
	spy := &modelSpy{llm: testsupport.NewFakeLLM("m1")}
	path := testsupport.WriteAgentsFile(t, map[string]any{"agents": map[string]any{}})

	_, err := New(context.Background(), testConfig("phi"), Options{
		AgentsPath:    path,
		RequiredRoles: []agents.Role{agents.RoleWebSearch, agents.RoleFinance},
		NewModel:      spy.build,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.Zero(t, spy.calls)
}

func TestScriptTeam_EndToEnd(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1", testsupport.TextStep("Adobe summary"))
	spy := &modelSpy{llm: llm}
	path := testsupport.WriteAgentsFile(t, testsupport.AgentsFile("m1", map[string][]string{
		"web_search": {"x"},
		"finance":    {"y"},
	}))

	c, err := New(context.Background(), testConfig("phi"), Options{
		AgentsPath:    path,
		RequiredRoles: []agents.Role{agents.RoleWebSearch, agents.RoleFinance},
		NewModel:      spy.build,
	})
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, "m1", spy.rt.ModelID)
	assert.Equal(t, "phi", spy.rt.APIKey)

	team, err := c.ScriptTeam()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, team.Config.Instructions)
	assert.Equal(t, []agents.Role{agents.RoleFinance, agents.RoleWebSearch}, team.Members.List())

	svc, err := analysis.NewService(team.Agent, analysis.Options{Tracker: c.ErrorTracker})
	require.NoError(t, err)

	res := svc.Analyze(context.Background(), analysis.DefaultQuery)
	require.NoError(t, res.Err)
	assert.Equal(t, "Adobe summary", res.Text())

	instruction := llm.SystemInstruction(0)
	assert.Contains(t, instruction, "- x\n")
	assert.Contains(t, instruction, "- y\n")
}

func TestScriptTeam_InstructionWithBraces(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1", testsupport.TextStep("Adobe summary"))
	spy := &modelSpy{llm: llm}
	path := testsupport.WriteAgentsFile(t, testsupport.AgentsFile("m1", map[string][]string{
		"web_search": {"Quote prices in {currency}."},
		"finance":    {"y"},
	}))

	c, err := New(context.Background(), testConfig("phi"), Options{
		AgentsPath:    path,
		RequiredRoles: []agents.Role{agents.RoleWebSearch, agents.RoleFinance},
		NewModel:      spy.build,
	})
	require.NoError(t, err)
	defer c.Shutdown(context.Background())

	team, err := c.ScriptTeam()
	require.NoError(t, err)

	svc, err := analysis.NewService(team.Agent, analysis.Options{Tracker: c.ErrorTracker})
	require.NoError(t, err)

	res := svc.Analyze(context.Background(), analysis.DefaultQuery)
	require.NoError(t, res.Err)
	assert.Equal(t, "Adobe summary", res.Text())
	assert.Contains(t, llm.SystemInstruction(0), "- Quote prices in {currency}.\n")
}

func TestPlaygroundAgents(t *testing.T) {
	spy := &modelSpy{llm: testsupport.NewFakeLLM("m1")}

	c, err := New(context.Background(), testConfig("phi"), Options{
		AgentsPath: t.TempDir() + "/missing.json",
		NewModel:   spy.build,
	})
	require.NoError(t, err)
	assert.Equal(t, agents.DefaultModelID, c.Runtime.ModelID)

	members, err := c.PlaygroundAgents()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "finance_agent", members[0].Name())
	assert.Equal(t, "web_search_agent", members[1].Name())
}

func TestNew_DefaultModelIgnoresFileModel(t *testing.T) {
	path := testsupport.WriteAgentsFile(t, testsupport.AgentsFile("m1", map[string][]string{
		"web_search": {"x"},
		"finance":    {"y"},
	}))

	spy := &modelSpy{llm: testsupport.NewFakeLLM("m1")}
	c, err := New(context.Background(), testConfig("phi"), Options{AgentsPath: path, DefaultModel: true, NewModel: spy.build})
	require.NoError(t, err)
	assert.Equal(t, agents.DefaultModelID, spy.rt.ModelID)
	assert.Equal(t, agents.DefaultModelID, c.Runtime.ModelID)

	cfg := testConfig("phi")
	cfg.Model.ID = "override"
	spy = &modelSpy{llm: testsupport.NewFakeLLM("m1")}
	_, err = New(context.Background(), cfg, Options{AgentsPath: path, DefaultModel: true, NewModel: spy.build})
	require.NoError(t, err)
	assert.Equal(t, "override", spy.rt.ModelID)
}
