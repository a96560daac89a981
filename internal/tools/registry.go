package tools

import (
	"slices"
	"sync"

	"google.golang.org/adk/tool"

	"stockagent/internal/agents"
	"stockagent/pkg/errors"
)

// Registry maps each capability flag to the tool that implements it.
type Registry struct {
	tools map[agents.Capability]tool.Tool
	mu    sync.RWMutex
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[agents.Capability]tool.Tool),
	}
}

// Register adds or replaces the tool for a capability.
func (r *Registry) Register(capability agents.Capability, t tool.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[capability] = t
}

// Get retrieves the tool for a capability if registered.
func (r *Registry) Get(capability agents.Capability) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[capability]
	return t, ok
}

// List returns the registered capabilities in sorted order.
func (r *Registry) List() []agents.Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := make([]agents.Capability, 0, len(r.tools))
	for c := range r.tools {
		caps = append(caps, c)
	}
	slices.Sort(caps)

	return caps
}

// ToolsFor resolves capabilities to tools, preserving the requested order.
// Asking for a capability with no registered tool is an error.
func (r *Registry) ToolsFor(caps []agents.Capability) ([]tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]tool.Tool, 0, len(caps))
	for _, c := range caps {
		t, ok := r.tools[c]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "no tool registered for capability %s", c)
		}
		res = append(res, t)
	}
	return res, nil
}

var _ agents.ToolSource = (*Registry)(nil)
