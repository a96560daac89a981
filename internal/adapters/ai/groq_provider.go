package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared/constant"

	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

// DefaultGroqBaseURL is the OpenAI-compatible Groq endpoint.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1/"

// GroqProvider implements ChatProvider over Groq's OpenAI-compatible API.
type GroqProvider struct {
	client  openai.Client
	timeout time.Duration
	limiter RateLimiter
	models  []ModelInfo
	log     *logger.Logger
}

// GroqOptions configures a GroqProvider.
type GroqOptions struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Limiter RateLimiter
}

// NewGroqProvider creates a Groq provider. Failed calls are not retried.
func NewGroqProvider(opts GroqOptions) (*GroqProvider, error) {
	if opts.APIKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "groq API key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultGroqBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Limiter == nil {
		opts.Limiter = unlimited{}
	}

	client := openai.NewClient(
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(opts.BaseURL),
		option.WithMaxRetries(0),
	)

	return &GroqProvider{
		client:  client,
		timeout: opts.Timeout,
		limiter: opts.Limiter,
		models:  groqModels(),
		log:     logger.Get().With("component", "groq_provider"),
	}, nil
}

func (p *GroqProvider) Name() string { return ProviderNameGroq.String() }

// GetModel returns model info by name.
func (p *GroqProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "groq model %s not found", model)
}

func (p *GroqProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

func (p *GroqProvider) SupportsTools() bool { return true }

// Chat sends one chat completion request.
func (p *GroqProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "model is required")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		metrics.RecordModelRateLimited(p.Name(), req.Model)
		return nil, &RateLimitError{Provider: ProviderNameGroq, Limit: p.limiter.Limit(), Err: err}
	}

	params, err := toOpenAIParams(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, params)
	metrics.RecordModelCall(p.Name(), req.Model, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExternal, "groq chat completion: %v", err)
	}

	resp := fromOpenAICompletion(completion)

	p.log.Debugw("Chat completion",
		"model", req.Model,
		"messages", len(req.Messages),
		"tools", len(req.Tools),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"latency", time.Since(start),
	)

	return resp, nil
}

func toOpenAIParams(req ChatRequest) (openai.ChatCompletionNewParams, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case RoleTool:
			messages = append(messages, openai.ToolMessage(msg.Content, msg.ToolCallID))
		case RoleAssistant:
			messages = append(messages, assistantMessage(msg))
		default:
			return openai.ChatCompletionNewParams{}, errors.Wrapf(errors.ErrInvalidInput, "unknown message role %q", msg.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}

	for _, def := range req.Tools {
		var description param.Opt[string]
		if def.Description != "" {
			description = param.NewOpt(def.Description)
		}
		parameters := def.Parameters
		if parameters == nil {
			parameters = map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
		}
		params.Tools = append(params.Tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        def.Name,
			Description: description,
			Parameters:  openai.FunctionParameters(parameters),
		}))
	}

	return params, nil
}

func assistantMessage(msg Message) openai.ChatCompletionMessageParamUnion {
	asst := &openai.ChatCompletionAssistantMessageParam{
		Role: constant.ValueOf[constant.Assistant](),
	}
	if msg.Content != "" {
		asst.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: param.NewOpt(msg.Content),
		}
	}
	for _, call := range msg.ToolCalls {
		arguments := call.Function.Arguments
		if arguments == "" {
			arguments = "{}"
		}
		asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: call.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      call.Function.Name,
					Arguments: arguments,
				},
				Type: constant.ValueOf[constant.Function](),
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: asst}
}

func fromOpenAICompletion(completion *openai.ChatCompletion) *ChatResponse {
	resp := &ChatResponse{
		ID:    completion.ID,
		Model: completion.Model,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}

	for _, choice := range completion.Choices {
		msg := Message{
			Role:    RoleAssistant,
			Content: choice.Message.Content,
		}
		for _, call := range choice.Message.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, ToolCall{
				ID: call.ID,
				Function: FunctionCall{
					Name:      call.Function.Name,
					Arguments: call.Function.Arguments,
				},
			})
		}
		resp.Choices = append(resp.Choices, Choice{
			Index:        int(choice.Index),
			Message:      msg,
			FinishReason: FinishReason(choice.FinishReason),
		})
	}

	return resp
}

// DecodeArguments parses JSON tool call arguments. Empty input yields an empty map.
func DecodeArguments(raw string) (map[string]interface{}, error) {
	args := map[string]interface{}{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "decode tool arguments: %v", err)
	}
	return args, nil
}

func groqModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:      ProviderNameGroq,
			Name:          ModelLlama33Versatile,
			Family:        "llama-3.3",
			MaxTokens:     131072,
			SupportsTools: true,
		},
		{
			Provider:      ProviderNameGroq,
			Name:          ModelLlama31Instant,
			Family:        "llama-3.1",
			MaxTokens:     131072,
			SupportsTools: true,
		},
	}
}
