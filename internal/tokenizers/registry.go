// Package tokenizers resolves tokenizer implementations by name.
package tokenizers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.TokenizerRegistry = (*Registry)(nil)

// BuilderFunc creates a Tokenizer from its argument list.
type BuilderFunc = driven.TokenizerFactory

// Registry maps tokenizer names to their builders.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty tokenizer registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a tokenizer builder to the registry.
// Registering an existing name replaces its builder.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Find returns the builder registered under name.
func (r *Registry) Find(name string) (driven.TokenizerFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrLookupFailure)
	}
	return builder, nil
}

// Build creates a tokenizer by name with the given arguments.
func (r *Registry) Build(name string, args []string) (driven.Tokenizer, error) {
	builder, err := r.Find(name)
	if err != nil {
		return nil, err
	}
	return builder(args)
}

// Create builds a tokenizer from a full argument list whose first element
// names the tokenizer, e.g. ["html", "unicode61", "remove_diacritics", "0"].
func (r *Registry) Create(args []string) (driven.Tokenizer, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no tokenizer named: %w", domain.ErrInvalidArgument)
	}
	return r.Build(args[0], args[1:])
}

// Has returns true if a tokenizer with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered tokenizer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
