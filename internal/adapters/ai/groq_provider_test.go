package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/pkg/errors"
)

const completionWithToolCall = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama-3.3-70b-versatile",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": "",
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "get_current_stock_price", "arguments": "{\"symbol\":\"ADBE\"}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
}`

func newTestGroq(t *testing.T, handler http.HandlerFunc) *GroqProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewGroqProvider(GroqOptions{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return provider
}

func TestGroqProvider_Chat(t *testing.T) {
	var body map[string]interface{}

	provider := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionWithToolCall)
	})

	resp, err := provider.Chat(context.Background(), ChatRequest{
		Model: ModelLlama33Versatile,
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a finance agent."},
			{Role: RoleUser, Content: "Price of ADBE?"},
		},
		Tools: []ToolDefinition{{
			Name:        "get_current_stock_price",
			Description: "Current price",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"symbol": map[string]interface{}{"type": "string"}},
			},
		}},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.Equal(t, ModelLlama33Versatile, body["model"])
	assert.Len(t, body["messages"], 2)
	assert.Len(t, body["tools"], 1)

	require.Len(t, resp.Choices, 1)
	choice := resp.Choices[0]
	assert.Equal(t, FinishReasonToolCalls, choice.FinishReason)
	require.Len(t, choice.Message.ToolCalls, 1)
	assert.Equal(t, "call_1", choice.Message.ToolCalls[0].ID)
	assert.Equal(t, "get_current_stock_price", choice.Message.ToolCalls[0].Function.Name)

	args, err := DecodeArguments(choice.Message.ToolCalls[0].Function.Arguments)
	require.NoError(t, err)
	assert.Equal(t, "ADBE", args["symbol"])

	assert.Equal(t, 12, resp.Usage.PromptTokens)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
}

func TestGroqProvider_ChatSendsToolHistory(t *testing.T) {
	var body struct {
		Messages []map[string]interface{} `json:"messages"`
	}

	provider := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"done"}}]}`)
	})

	resp, err := provider.Chat(context.Background(), ChatRequest{
		Model: ModelLlama33Versatile,
		Messages: []Message{
			{Role: RoleUser, Content: "Price of ADBE?"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_1", Function: FunctionCall{Name: "get_current_stock_price"}}}},
			{Role: RoleTool, ToolCallID: "call_1", Content: `{"price":500}`},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Choices[0].Message.Content)

	require.Len(t, body.Messages, 3)
	assert.Equal(t, "assistant", body.Messages[1]["role"])
	assert.Len(t, body.Messages[1]["tool_calls"], 1)
	assert.Equal(t, "tool", body.Messages[2]["role"])
	assert.Equal(t, "call_1", body.Messages[2]["tool_call_id"])
}

func TestGroqProvider_ChatUpstreamErrorIsNotRetried(t *testing.T) {
	calls := 0
	provider := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
	})

	_, err := provider.Chat(context.Background(), ChatRequest{
		Model:    ModelLlama33Versatile,
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExternal))
	assert.Equal(t, 1, calls)
}

func TestGroqProvider_Validation(t *testing.T) {
	_, err := NewGroqProvider(GroqOptions{})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	provider, err := NewGroqProvider(GroqOptions{APIKey: "k"})
	require.NoError(t, err)

	_, err = provider.Chat(context.Background(), ChatRequest{})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = provider.Chat(context.Background(), ChatRequest{
		Model:    "m",
		Messages: []Message{{Role: "narrator", Content: "x"}},
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	info, err := provider.GetModel(context.Background(), ModelLlama31Instant)
	require.NoError(t, err)
	assert.Equal(t, "llama-3.1", info.Family)
}
