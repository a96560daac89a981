package ai

import (
	"context"
	"slices"

	"stockagent/pkg/errors"
)

// Registry maps provider names to providers. It is filled once at startup by
// BuildRegistry and only read afterwards.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register rejects nil and duplicate providers.
func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return errors.Wrapf(errors.ErrInvalidInput, "provider is nil")
	}

	name := NormalizeProviderName(provider.Name())
	if _, dup := r.providers[name]; dup {
		return errors.Wrapf(errors.ErrInvalidInput, "provider %s already registered", name)
	}
	r.providers[name] = provider
	return nil
}

func (r *Registry) Get(name string) (Provider, error) {
	provider, ok := r.providers[NormalizeProviderName(name)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "provider %s", name)
	}
	return provider, nil
}

// Chat narrows the named provider to a ChatProvider.
func (r *Registry) Chat(name string) (ChatProvider, error) {
	provider, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if chat, ok := provider.(ChatProvider); ok {
		return chat, nil
	}
	return nil, errors.Wrapf(errors.ErrNotImplemented, "provider %s has no chat endpoint", name)
}

// List returns provider names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolveModel looks the model up in the provider's catalog.
func (r *Registry) ResolveModel(ctx context.Context, providerName, model string) (ModelInfo, error) {
	provider, err := r.Get(providerName)
	if err != nil {
		return ModelInfo{}, err
	}
	return provider.GetModel(ctx, model)
}
