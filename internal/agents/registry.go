package agents

import (
	"slices"
	"sync"

	"google.golang.org/adk/agent"
)

// Registry stores built agents by role for quick lookup.
type Registry struct {
	agents map[Role]agent.Agent
	mu     sync.RWMutex
}

// NewRegistry constructs an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[Role]agent.Agent)}
}

// Register adds or replaces an agent entry.
func (r *Registry) Register(role Role, ag agent.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[role] = ag
}

// Get retrieves an agent by role.
func (r *Registry) Get(role Role) (agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ag, ok := r.agents[role]
	return ag, ok
}

// List returns registered roles in sorted order.
func (r *Registry) List() []Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Role, 0, len(r.agents))
	for role := range r.agents {
		res = append(res, role)
	}
	slices.Sort(res)

	return res
}

// Agents returns the registered agents ordered by role.
func (r *Registry) Agents() []agent.Agent {
	roles := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]agent.Agent, 0, len(roles))
	for _, role := range roles {
		res = append(res, r.agents[role])
	}
	return res
}
