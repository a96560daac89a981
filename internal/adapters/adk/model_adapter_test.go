package adk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"stockagent/internal/adapters/ai"
	"stockagent/internal/adapters/config"
	"stockagent/pkg/errors"
)

type fakeChat struct {
	got  ai.ChatRequest
	resp *ai.ChatResponse
	err  error
}

func (f *fakeChat) Name() string { return "fake" }
func (f *fakeChat) GetModel(context.Context, string) (ai.ModelInfo, error) {
	return ai.ModelInfo{}, nil
}
func (f *fakeChat) ListModels(context.Context) ([]ai.ModelInfo, error) { return nil, nil }
func (f *fakeChat) SupportsTools() bool                                { return true }
func (f *fakeChat) Chat(_ context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	f.got = req
	return f.resp, f.err
}

func collect(t *testing.T, m *ModelAdapter, req *model.LLMRequest, stream bool) ([]*model.LLMResponse, error) {
	t.Helper()
	var (
		out  []*model.LLMResponse
		last error
	)
	for resp, err := range m.GenerateContent(context.Background(), req, stream) {
		if err != nil {
			last = err
			continue
		}
		out = append(out, resp)
	}
	return out, last
}

func TestModelAdapter_ConvertsRequest(t *testing.T) {
	chat := &fakeChat{resp: &ai.ChatResponse{Choices: []ai.Choice{{
		Message:      ai.Message{Role: ai.RoleAssistant, Content: "ADBE trades at 500."},
		FinishReason: ai.FinishReasonStop,
	}}, Usage: ai.Usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14}}}

	adapter := NewModelAdapter(chat, "m1", AdapterOptions{MaxTokens: 1024, Temperature: 0.2})

	req := &model.LLMRequest{
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText("You are Finance agent.", genai.RoleUser),
			Tools: []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        "get_current_stock_price",
				Description: "Current price",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"symbol": {Type: genai.TypeString}},
					Required:   []string{"symbol"},
				},
			}}}},
		},
		Contents: []*genai.Content{
			genai.NewContentFromText("Price of ADBE?", genai.RoleUser),
			{Role: "model", Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{
				ID: "call_1", Name: "get_current_stock_price", Args: map[string]any{"symbol": "ADBE"},
			}}}},
			{Role: "user", Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
				ID: "call_1", Name: "get_current_stock_price", Response: map[string]any{"price": 500},
			}}}},
		},
	}

	responses, err := collect(t, adapter, req, false)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	got := chat.got
	assert.Equal(t, "m1", got.Model)
	assert.Equal(t, 1024, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, ai.RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "You are Finance agent.", got.Messages[0].Content)
	assert.Equal(t, ai.RoleUser, got.Messages[1].Role)
	assert.Equal(t, ai.RoleAssistant, got.Messages[2].Role)
	require.Len(t, got.Messages[2].ToolCalls, 1)
	assert.Equal(t, "call_1", got.Messages[2].ToolCalls[0].ID)
	assert.JSONEq(t, `{"symbol":"ADBE"}`, got.Messages[2].ToolCalls[0].Function.Arguments)
	assert.Equal(t, ai.RoleTool, got.Messages[3].Role)
	assert.Equal(t, "call_1", got.Messages[3].ToolCallID)
	assert.JSONEq(t, `{"price":500}`, got.Messages[3].Content)

	require.Len(t, got.Tools, 1)
	params := got.Tools[0].Parameters
	assert.Equal(t, "object", params["type"])
	assert.Equal(t, []string{"symbol"}, params["required"])
	props := params["properties"].(map[string]interface{})
	assert.Equal(t, "string", props["symbol"].(map[string]interface{})["type"])

	resp := responses[0]
	require.NotNil(t, resp.Content)
	assert.Equal(t, "ADBE trades at 500.", resp.Content.Parts[0].Text)
	assert.Equal(t, genai.FinishReasonStop, resp.FinishReason)
	assert.Equal(t, int32(14), resp.UsageMetadata.TotalTokenCount)
}

func TestModelAdapter_ToolCallResponse(t *testing.T) {
	chat := &fakeChat{resp: &ai.ChatResponse{Choices: []ai.Choice{{
		Message: ai.Message{ToolCalls: []ai.ToolCall{
			{ID: "c1", Function: ai.FunctionCall{Name: "duckduckgo_search", Arguments: `{"query":"Adobe"}`}},
			{ID: "c2", Function: ai.FunctionCall{Name: "broken", Arguments: `{not json`}},
		}},
		FinishReason: ai.FinishReasonToolCalls,
	}}}}

	responses, err := collect(t, NewModelAdapter(chat, "m1", AdapterOptions{}), &model.LLMRequest{}, false)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	parts := responses[0].Content.Parts
	require.Len(t, parts, 1)
	assert.Equal(t, "c1", parts[0].FunctionCall.ID)
	assert.Equal(t, "Adobe", parts[0].FunctionCall.Args["query"])
}

func TestModelAdapter_Errors(t *testing.T) {
	chat := &fakeChat{err: errors.ErrExternal}
	adapter := NewModelAdapter(chat, "m1", AdapterOptions{})

	_, err := collect(t, adapter, &model.LLMRequest{}, false)
	assert.True(t, errors.Is(err, errors.ErrExternal))

	_, err = collect(t, adapter, &model.LLMRequest{}, true)
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))

	chat.err = nil
	chat.resp = &ai.ChatResponse{}
	responses, err := collect(t, adapter, &model.LLMRequest{}, false)
	require.NoError(t, err)
	assert.Equal(t, genai.FinishReasonOther, responses[0].FinishReason)
	assert.NotEmpty(t, responses[0].ErrorMessage)
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(context.Background(), config.ModelConfig{Provider: config.ProviderGroq}, config.Runtime{ModelID: "m1"})
	assert.True(t, errors.Is(err, errors.ErrMissingAPIKey))

	llm, err := NewModel(context.Background(), config.ModelConfig{Provider: config.ProviderGroq}, config.Runtime{APIKey: "k", ModelID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, "m1", llm.Name())
}
