package testsupport

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// FakeLLM is a scripted model.LLM. Each GenerateContent call consumes the next
// step; once the script runs out the last step repeats.
type FakeLLM struct {
	name  string
	steps []Step

	mu       sync.Mutex
	calls    int
	requests []*model.LLMRequest
}

// Step is one scripted model turn.
type Step struct {
	Response *model.LLMResponse
	Err      error
}

// NewFakeLLM returns a fake model replaying steps in order.
func NewFakeLLM(name string, steps ...Step) *FakeLLM {
	return &FakeLLM{name: name, steps: steps}
}

// TextStep answers with a final text turn.
func TextStep(text string) Step {
	return Step{Response: &model.LLMResponse{
		Content:      genai.NewContentFromText(text, "model"),
		TurnComplete: true,
		FinishReason: genai.FinishReasonStop,
	}}
}

// CallStep answers with a single function call.
func CallStep(name string, args map[string]any) Step {
	return Step{Response: &model.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{ID: "call_" + name, Name: name, Args: args}}},
		},
		TurnComplete: true,
	}}
}

// ErrStep fails the model call with err.
func ErrStep(err error) Step {
	return Step{Err: err}
}

func (f *FakeLLM) Name() string { return f.name }

func (f *FakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	step := Step{Err: context.Canceled}
	if len(f.steps) > 0 {
		idx := min(f.calls, len(f.steps)-1)
		step = f.steps[idx]
	}
	f.calls++
	f.mu.Unlock()

	return func(yield func(*model.LLMResponse, error) bool) {
		if step.Err != nil {
			yield(nil, step.Err)
			return
		}
		yield(step.Response, nil)
	}
}

// Calls returns how many times the model was invoked.
func (f *FakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Requests returns the requests seen so far.
func (f *FakeLLM) Requests() []*model.LLMRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.LLMRequest(nil), f.requests...)
}

// SystemInstruction returns the text of the system instruction of request i.
func (f *FakeLLM) SystemInstruction(i int) string {
	reqs := f.Requests()
	if i >= len(reqs) || reqs[i].Config == nil || reqs[i].Config.SystemInstruction == nil {
		return ""
	}
	var text string
	for _, p := range reqs[i].Config.SystemInstruction.Parts {
		if p != nil {
			text += p.Text
		}
	}
	return text
}
