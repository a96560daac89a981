package ai

// MessageRole is the sender of a chat message in OpenAI-compatible terms.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// ChatRequest is a provider-neutral completion request. Zero Temperature, MaxTokens
// and TopP leave the provider default in place.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Message is one turn of the conversation. Assistant turns may carry ToolCalls;
// tool turns answer exactly one call, named by ToolCallID.
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolDefinition advertises a callable function; Parameters is a JSON schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string
	Function FunctionCall
}

// FunctionCall holds the target name and its raw JSON arguments.
type FunctionCall struct {
	Name      string
	Arguments string
}

type ChatResponse struct {
	ID      string
	Model   string
	Choices []Choice
	Usage   Usage
}

type Choice struct {
	Index        int
	Message      Message
	FinishReason FinishReason
}

// FinishReason mirrors the OpenAI finish_reason values.
type FinishReason string

const (
	FinishReasonStop      FinishReason = "stop"
	FinishReasonLength    FinishReason = "length"
	FinishReasonToolCalls FinishReason = "tool_calls"
	FinishReasonFiltered  FinishReason = "content_filter"
)

// Usage counts tokens for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
