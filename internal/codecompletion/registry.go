package codecompletion

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/inoxlang/ctxcompletion/internal/syntaxtree"
)

var (
	ErrDuplicateProvider = errors.New("a provider is already registered for this node kind")
	ErrNilProvider       = errors.New("nil provider")
)

// A Provider produces the completion items for a single kind of node. A provider only reads the tree
// and the model, it is given the node it has been dispatched on.
type Provider interface {
	Kind() syntaxtree.NodeKind
	Complete(ctx context.Context, req *Request, node syntaxtree.NodeID) ([]Item, error)
}

// A Registry maps node kinds to providers, it holds at most one provider per kind.
// A Registry is immutable and can be shared between goroutines.
type Registry struct {
	providers map[syntaxtree.NodeKind]Provider
}

// NewRegistry creates a registry from a static list of providers, registering two providers for the
// same kind is an error (ErrDuplicateProvider).
func NewRegistry(providers ...Provider) (*Registry, error) {
	registry := &Registry{
		providers: make(map[syntaxtree.NodeKind]Provider, len(providers)),
	}

	for _, provider := range providers {
		if provider == nil {
			return nil, ErrNilProvider
		}

		kind := provider.Kind()
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: %d", syntaxtree.ErrInvalidNodeKind, kind)
		}

		if _, ok := registry.providers[kind]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, kind)
		}
		registry.providers[kind] = provider
	}

	return registry, nil
}

// NewDefaultRegistry creates a registry with the default providers followed by additional ones.
func NewDefaultRegistry(additional ...Provider) (*Registry, error) {
	return NewRegistry(append(DefaultProviders(), additional...)...)
}

// Dispatch returns the provider registered for kind, if any.
func (r *Registry) Dispatch(kind syntaxtree.NodeKind) (Provider, bool) {
	provider, ok := r.providers[kind]
	return provider, ok
}

// Kinds returns the node kinds having a provider, in ascending order.
func (r *Registry) Kinds() []syntaxtree.NodeKind {
	kinds := maps.Keys(r.providers)
	slices.Sort(kinds)
	return kinds
}

func (r *Registry) Len() int {
	return len(r.providers)
}
