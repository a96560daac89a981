package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"stockagent/internal/testsupport"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

type echoArgs struct {
	Symbol string `json:"symbol"`
}

type echoResult struct {
	Symbol string `json:"symbol"`
}

type fakeTools struct {
	requested [][]Capability
	err       error
}

func (f *fakeTools) ToolsFor(caps []Capability) ([]adktool.Tool, error) {
	f.requested = append(f.requested, caps)
	if f.err != nil {
		return nil, f.err
	}

	out := make([]adktool.Tool, 0, len(caps))
	for _, c := range caps {
		t, err := functiontool.New(functiontool.Config{Name: string(c), Description: "test tool"},
			func(_ adktool.Context, args echoArgs) (echoResult, error) {
				return echoResult{Symbol: args.Symbol}, nil
			})
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func newTestFactory(t *testing.T, tools ToolSource) *Factory {
	t.Helper()
	f, err := NewFactory(FactoryDeps{
		Model: testsupport.NewFakeLLM("m1", testsupport.TextStep("ok")),
		Tools: tools,
		Log:   logger.Nop(),
	})
	require.NoError(t, err)
	return f
}

func TestNewFactory_RequiresDeps(t *testing.T) {
	_, err := NewFactory(FactoryDeps{Tools: &fakeTools{}})
	assert.Error(t, err)

	_, err = NewFactory(FactoryDeps{Model: testsupport.NewFakeLLM("m1")})
	assert.Error(t, err)
}

func TestFactory_CreateAgent(t *testing.T) {
	tools := &fakeTools{}
	f := newTestFactory(t, tools)

	cfg := PlaygroundAgentConfigs()[RoleFinance]
	ag, err := f.CreateAgent(cfg)
	require.NoError(t, err)

	assert.Equal(t, "finance_agent", ag.Name())
	assert.Equal(t, "Finance agent: A finance agent that provides detailed stock analysis.", ag.Description())
	require.Len(t, tools.requested, 1)
	assert.Equal(t, cfg.Tools.Capabilities(), tools.requested[0])
}

func TestFactory_CreateAgent_ToolError(t *testing.T) {
	f := newTestFactory(t, &fakeTools{err: errors.ErrNotFound})

	_, err := f.CreateAgent(PlaygroundAgentConfigs()[RoleWebSearch])
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFactory_CreateTeam(t *testing.T) {
	f := newTestFactory(t, &fakeTools{})

	configs := ScriptAgentConfigs(DefaultFileConfig())
	members, err := f.CreateAgents(configs)
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleFinance, RoleWebSearch}, members.List())

	team, err := f.CreateTeam(NewTeamConfig(configs), members)
	require.NoError(t, err)
	assert.Equal(t, teamAgentID, team.Name())
}

func TestFactory_CreateTeam_MissingMember(t *testing.T) {
	f := newTestFactory(t, &fakeTools{})

	_, err := f.CreateTeam(NewTeamConfig(ScriptAgentConfigs(DefaultFileConfig())), NewRegistry())
	assert.Error(t, err)
}
