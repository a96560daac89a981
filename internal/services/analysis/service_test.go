package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"stockagent/internal/adapters/errors/noop"
	"stockagent/internal/testsupport"
	"stockagent/pkg/errors"
)

type priceArgs struct {
	Symbol string `json:"symbol"`
}

type priceResult struct {
	Price float64 `json:"price"`
}

func newAgent(t *testing.T, llm *testsupport.FakeLLM) agent.Agent {
	t.Helper()

	price, err := functiontool.New(functiontool.Config{Name: "get_current_stock_price", Description: "price"},
		func(_ tool.Context, args priceArgs) (priceResult, error) {
			return priceResult{Price: 512.3}, nil
		})
	require.NoError(t, err)

	ag, err := llmagent.New(llmagent.Config{
		Name:        "stock_analysis_team",
		Description: "test team",
		Model:       llm,
		Instruction: "Answer stock questions.",
		Tools:       []tool.Tool{price},
	})
	require.NoError(t, err)
	return ag
}

type breadcrumbTracker struct {
	noop.Tracker
	crumbs []string
}

func (b *breadcrumbTracker) AddBreadcrumb(_ context.Context, message, _ string, _ map[string]interface{}) {
	b.crumbs = append(b.crumbs, message)
}

func TestAnalyze_ToolCallThenAnswer(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1",
		testsupport.CallStep("get_current_stock_price", map[string]any{"symbol": "ADBE"}),
		testsupport.TextStep("ADBE is at 512.30."),
	)
	tracker := &breadcrumbTracker{}
	svc, err := NewService(newAgent(t, llm), Options{Tracker: tracker})
	require.NoError(t, err)

	res := svc.Analyze(context.Background(), "What is Adobe trading at?")
	require.NoError(t, res.Err)
	assert.Equal(t, "ADBE is at 512.30.", res.Response)
	assert.Equal(t, 2, llm.Calls())
	assert.Equal(t, []string{"get_current_stock_price"}, tracker.crumbs)
}

func TestAnalyze_ReturnsFinalResponse(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1", testsupport.TextStep("Adobe closed at 512.30."))
	svc, err := NewService(newAgent(t, llm), Options{Tracker: noop.New()})
	require.NoError(t, err)

	res := svc.Analyze(context.Background(), DefaultQuery)
	require.True(t, res.OK(), "unexpected error: %v", res.Err)
	assert.Equal(t, "Adobe closed at 512.30.", res.Response)
	assert.Equal(t, res.Response, res.Text())
	assert.Equal(t, 1, llm.Calls())
}

func TestAnalyze_ModelFailureIsCaptured(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1", testsupport.ErrStep(errors.Wrap(errors.ErrExternal, "upstream 503")))
	svc, err := NewService(newAgent(t, llm), Options{Tracker: noop.New()})
	require.NoError(t, err)

	var res Result
	assert.NotPanics(t, func() {
		res = svc.Analyze(context.Background(), DefaultQuery)
	})

	require.False(t, res.OK())
	assert.Empty(t, res.Response)
	assert.True(t, errors.Is(res.Err, errors.ErrExternal))
	assert.Contains(t, res.Text(), "Error analyzing stock:")
}

func TestAnalyze_EmptyQuery(t *testing.T) {
	llm := testsupport.NewFakeLLM("m1", testsupport.TextStep("unused"))
	svc, err := NewService(newAgent(t, llm), Options{})
	require.NoError(t, err)

	res := svc.Analyze(context.Background(), "   ")
	assert.True(t, errors.Is(res.Err, errors.ErrInvalidInput))
	assert.Zero(t, llm.Calls())
}

func TestNewService_RequiresAgent(t *testing.T) {
	_, err := NewService(nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "ok", Result{Response: "ok"}.Text())
	assert.Equal(t, "Error analyzing stock: boom", Result{Err: errors.New("boom")}.Text())
}
