package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/helixir/citation-service/internal/domain"
)

// Registry maps identifier kinds to the source that serves them.
// Registration and lookup are thread-safe.
type Registry struct {
	mu      sync.RWMutex
	sources map[domain.IdentifierKind]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[domain.IdentifierKind]Source),
	}
}

// Register adds source for every kind it reports.
// A kind that already has a source is reassigned to the new one.
func (r *Registry) Register(source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range source.Kinds() {
		r.sources[kind] = source
	}
}

// Get returns the source registered for kind, or nil.
func (r *Registry) Get(kind domain.IdentifierKind) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[kind]
}

// Lookup returns the enabled source for kind. It fails with
// domain.ErrSourceUnavailable when nothing is registered or the source is
// disabled.
func (r *Registry) Lookup(kind domain.IdentifierKind) (Source, error) {
	source := r.Get(kind)
	if source == nil {
		return nil, fmt.Errorf("no source registered for %s: %w", kind, domain.ErrSourceUnavailable)
	}
	if !source.IsEnabled() {
		return nil, fmt.Errorf("%s source is disabled: %w", source.Name(), domain.ErrSourceUnavailable)
	}
	return source, nil
}

// AllSources returns each registered source once, sorted by name.
func (r *Registry) AllSources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Source]struct{}, len(r.sources))
	sources := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name() < sources[j].Name() })
	return sources
}

// EnabledSources returns AllSources filtered to enabled ones.
func (r *Registry) EnabledSources() []Source {
	all := r.AllSources()
	enabled := make([]Source, 0, len(all))
	for _, s := range all {
		if s.IsEnabled() {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// Kinds returns the identifier kinds that currently resolve to an enabled source.
func (r *Registry) Kinds() []domain.IdentifierKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.IdentifierKind, 0, len(r.sources))
	for _, k := range domain.SupportedKinds {
		if s, ok := r.sources[k]; ok && s.IsEnabled() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
