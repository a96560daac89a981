package adk

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"stockagent/internal/adapters/ai"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// AdapterOptions holds sampling defaults applied when the request config leaves them unset.
type AdapterOptions struct {
	MaxTokens   int
	Temperature float64
}

// ModelAdapter adapts an ai.ChatProvider to ADK's model.LLM interface.
type ModelAdapter struct {
	provider  ai.ChatProvider
	modelName string
	opts      AdapterOptions
	log       *logger.Logger
}

// NewModelAdapter creates a new ADK model adapter.
func NewModelAdapter(provider ai.ChatProvider, modelName string, opts AdapterOptions) *ModelAdapter {
	return &ModelAdapter{
		provider:  provider,
		modelName: modelName,
		opts:      opts,
		log:       logger.Get().With("component", "model_adapter", "model", modelName),
	}
}

// Name returns the model name.
func (m *ModelAdapter) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface. Streaming is not supported.
func (m *ModelAdapter) GenerateContent(
	ctx context.Context,
	req *model.LLMRequest,
	stream bool,
) iter.Seq2[*model.LLMResponse, error] {
	if stream {
		return func(yield func(*model.LLMResponse, error) bool) {
			yield(nil, errors.Wrap(errors.ErrNotImplemented, "streaming"))
		}
	}

	return func(yield func(*model.LLMResponse, error) bool) {
		chatReq, err := m.convertToChatRequest(req)
		if err != nil {
			yield(nil, err)
			return
		}

		m.log.Debugw("Calling LLM", "messages", len(chatReq.Messages), "tools", len(chatReq.Tools))

		resp, err := m.provider.Chat(ctx, chatReq)
		if err != nil {
			m.log.Errorw("LLM call failed", "error", err)
			yield(nil, errors.Wrap(err, "chat provider failed"))
			return
		}

		yield(m.convertToADKResponse(resp), nil)
	}
}

func (m *ModelAdapter) convertToChatRequest(req *model.LLMRequest) (ai.ChatRequest, error) {
	chatReq := ai.ChatRequest{
		Model:       m.modelName,
		MaxTokens:   m.opts.MaxTokens,
		Temperature: m.opts.Temperature,
	}

	if cfg := req.Config; cfg != nil {
		if cfg.MaxOutputTokens > 0 {
			chatReq.MaxTokens = int(cfg.MaxOutputTokens)
		}
		if cfg.Temperature != nil {
			chatReq.Temperature = float64(*cfg.Temperature)
		}
		if cfg.TopP != nil {
			chatReq.TopP = float64(*cfg.TopP)
		}
		if text := contentText(cfg.SystemInstruction); text != "" {
			chatReq.Messages = append(chatReq.Messages, ai.Message{Role: ai.RoleSystem, Content: text})
		}

		for _, t := range cfg.Tools {
			if t == nil {
				continue
			}
			for _, decl := range t.FunctionDeclarations {
				params, err := declarationParameters(decl)
				if err != nil {
					return ai.ChatRequest{}, err
				}
				chatReq.Tools = append(chatReq.Tools, ai.ToolDefinition{
					Name:        decl.Name,
					Description: decl.Description,
					Parameters:  params,
				})
			}
		}
	}

	for _, content := range req.Contents {
		msgs, err := convertContent(content)
		if err != nil {
			return ai.ChatRequest{}, err
		}
		chatReq.Messages = append(chatReq.Messages, msgs...)
	}

	return chatReq, nil
}

// convertContent maps one genai content to chat messages. Function responses
// become one tool message each; function calls attach to an assistant message.
func convertContent(content *genai.Content) ([]ai.Message, error) {
	if content == nil {
		return nil, nil
	}

	role := ai.RoleUser
	switch content.Role {
	case roleModel:
		role = ai.RoleAssistant
	case "system":
		role = ai.RoleSystem
	}

	var (
		msgs  []ai.Message
		text  []string
		calls []ai.ToolCall
	)

	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		switch {
		case part.FunctionCall != nil:
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "encode arguments of %s: %v", part.FunctionCall.Name, err)
			}
			calls = append(calls, ai.ToolCall{
				ID:       callID(part.FunctionCall.ID, part.FunctionCall.Name),
				Function: ai.FunctionCall{Name: part.FunctionCall.Name, Arguments: string(args)},
			})
		case part.FunctionResponse != nil:
			payload, err := json.Marshal(part.FunctionResponse.Response)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "encode response of %s: %v", part.FunctionResponse.Name, err)
			}
			msgs = append(msgs, ai.Message{
				Role:       ai.RoleTool,
				ToolCallID: callID(part.FunctionResponse.ID, part.FunctionResponse.Name),
				Content:    string(payload),
			})
		case part.Text != "" && !part.Thought:
			text = append(text, part.Text)
		}
	}

	if len(text) > 0 || len(calls) > 0 {
		if len(calls) > 0 {
			role = ai.RoleAssistant
		}
		msgs = append([]ai.Message{{
			Role:      role,
			Content:   strings.Join(text, "\n"),
			ToolCalls: calls,
		}}, msgs...)
	}

	return msgs, nil
}

const roleModel = "model"

// callID keeps the call/response pairing stable when the framework left the id empty.
func callID(id, name string) string {
	if id != "" {
		return id
	}
	return "call_" + name
}

func contentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var parts []string
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// declarationParameters returns the JSON schema of a function declaration,
// preferring ParametersJsonSchema over the genai Schema form.
func declarationParameters(decl *genai.FunctionDeclaration) (map[string]interface{}, error) {
	if decl.ParametersJsonSchema != nil {
		raw, err := json.Marshal(decl.ParametersJsonSchema)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "encode schema of %s: %v", decl.Name, err)
		}
		var params map[string]interface{}
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "decode schema of %s: %v", decl.Name, err)
		}
		return params, nil
	}
	if decl.Parameters != nil {
		return schemaToJSON(decl.Parameters), nil
	}
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}, nil
}

// schemaToJSON converts a genai schema (upper-case type names) into JSON schema.
func schemaToJSON(s *genai.Schema) map[string]interface{} {
	out := map[string]interface{}{}
	if s.Type != "" {
		out["type"] = strings.ToLower(string(s.Type))
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Items != nil {
		out["items"] = schemaToJSON(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = schemaToJSON(prop)
		}
		out["properties"] = props
	}
	return out
}

func (m *ModelAdapter) convertToADKResponse(resp *ai.ChatResponse) *model.LLMResponse {
	adkResp := &model.LLMResponse{TurnComplete: true}

	if len(resp.Choices) == 0 {
		adkResp.FinishReason = genai.FinishReasonOther
		adkResp.ErrorMessage = "no choices in response"
		return adkResp
	}

	choice := resp.Choices[0]
	content := &genai.Content{Role: roleModel}

	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, genai.NewPartFromText(choice.Message.Content))
	}

	for _, tc := range choice.Message.ToolCalls {
		args, err := ai.DecodeArguments(tc.Function.Arguments)
		if err != nil {
			m.log.Warnw("Dropping tool call with malformed arguments", "tool", tc.Function.Name, "error", err)
			continue
		}
		content.Parts = append(content.Parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Function.Name, Args: args},
		})
	}

	adkResp.Content = content

	switch choice.FinishReason {
	case ai.FinishReasonLength:
		adkResp.FinishReason = genai.FinishReasonMaxTokens
	case ai.FinishReasonFiltered:
		adkResp.FinishReason = genai.FinishReasonSafety
	default:
		adkResp.FinishReason = genai.FinishReasonStop
	}

	adkResp.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     int32(resp.Usage.PromptTokens),
		CandidatesTokenCount: int32(resp.Usage.CompletionTokens),
		TotalTokenCount:      int32(resp.Usage.TotalTokens),
	}

	return adkResp
}

func (m *ModelAdapter) String() string {
	return fmt.Sprintf("%s/%s", m.provider.Name(), m.modelName)
}

var _ model.LLM = (*ModelAdapter)(nil)
