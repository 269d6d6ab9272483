package ingest

import (
	"fmt"
	"sort"

	"hookgate/internal/model"
)

type Registry struct {
	providers map[model.Provider]ProviderAdapter
}

func NewRegistry() *Registry {
	return &Registry{providers: map[model.Provider]ProviderAdapter{}}
}

func (r *Registry) Register(adapter ProviderAdapter) {
	if r == nil || adapter == nil {
		return
	}
	if r.providers == nil {
		r.providers = map[model.Provider]ProviderAdapter{}
	}
	r.providers[adapter.Provider()] = adapter
}

func (r *Registry) Adapter(provider model.Provider) (ProviderAdapter, error) {
	if r == nil {
		return nil, fmt.Errorf("nil registry")
	}
	p, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	return p, nil
}

// Providers returns the registered provider slots in stable order.
func (r *Registry) Providers() []model.Provider {
	if r == nil {
		return nil
	}
	out := make([]model.Provider, 0, len(r.providers))
	for p := range r.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) MustHaveProviders() error {
	if r == nil {
		return fmt.Errorf("nil registry")
	}
	if len(r.providers) == 0 {
		return fmt.Errorf("empty provider registry")
	}
	return nil
}
