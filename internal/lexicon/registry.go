package lexicon

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves lexicon names for a run. Built-in lexicons are always
// available; registered ones shadow them.
type Registry struct {
	mu       sync.RWMutex
	lexicons map[string]*Lexicon
}

func NewRegistry() *Registry {
	return &Registry{lexicons: make(map[string]*Lexicon)}
}

// Register stores lex under name, replacing any earlier registration.
func (r *Registry) Register(name string, lex *Lexicon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lexicons[name] = lex.Named(name)
}

// LoadFile reads a lexicon file and registers it under name.
func (r *Registry) LoadFile(name, path, format string) error {
	lex, err := Load(path, format)
	if err != nil {
		return err
	}
	r.Register(name, lex)
	return nil
}

func (r *Registry) Get(name string) (*Lexicon, error) {
	r.mu.RLock()
	lex, ok := r.lexicons[name]
	r.mu.RUnlock()
	if ok {
		return lex, nil
	}
	return Builtin(name)
}

// Resolve returns the named lexicons in order.
func (r *Registry) Resolve(names []string) ([]*Lexicon, error) {
	out := make([]*Lexicon, 0, len(names))
	for _, n := range names {
		lex, err := r.Get(n)
		if err != nil {
			return nil, fmt.Errorf("resolve lexicons: %w", err)
		}
		out = append(out, lex)
	}
	return out, nil
}

// Names lists built-in and registered lexicon names, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	for _, n := range BuiltinNames() {
		seen[n] = true
	}
	r.mu.RLock()
	for n := range r.lexicons {
		seen[n] = true
	}
	r.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
