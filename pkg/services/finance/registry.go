package finance

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ProviderFactory creates a Provider for the given profile name
type ProviderFactory func(ctx context.Context, profile string) (Provider, error)

// Registry manages finance provider factories
type Registry interface {
	// Register adds a new provider factory
	Register(name string, factory ProviderFactory) error
	// Create instantiates the named provider using the profile
	Create(ctx context.Context, name, profile string) (Provider, error)
	// ListProviders returns registered provider names in lexical order
	ListProviders() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ProviderFactory),
	}
}

func (r *registry) Register(name string, factory ProviderFactory) error {
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, name, profile string) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %q is not registered", name)
	}

	return factory(ctx, profile)
}

func (r *registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
