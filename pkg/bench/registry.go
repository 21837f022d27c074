package bench

import (
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// Registry holds benchmark definitions in registration order for the process
// lifetime.
type Registry struct {
	mu     sync.Mutex
	order  []*Definition
	byName map[string]*Definition
}

// NewRegistry creates a new empty benchmark registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Definition),
	}
}

// Register adds a benchmark definition. Registering the same name twice is
// an error.
func (r *Registry) Register(name string, body Body, opts ...Option) (*Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateName, "%q", name)
	}

	def := newDefinition(name, body, opts...)
	r.order = append(r.order, def)
	r.byName[name] = def

	return def, nil
}

// Definitions returns all registered definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	r.mu.Lock()
	defer r.mu.Unlock()

	defs := make([]*Definition, len(r.order))
	copy(defs, r.order)

	return defs
}

// Match returns the definitions whose names match the glob pattern, in
// registration order. An empty pattern matches everything.
func (r *Registry) Match(pattern string) ([]*Definition, error) {
	if pattern == "" {
		return r.Definitions(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*Definition, 0, len(r.order))

	for _, def := range r.order {
		ok, err := doublestar.Match(pattern, def.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter pattern %q", pattern)
		}

		if ok {
			matched = append(matched, def)
		}
	}

	return matched, nil
}

// Count returns the number of registered definitions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// defaultRegistry backs the package-level Register used by benchmark
// definition files.
var defaultRegistry = NewRegistry()

// Register adds a benchmark to the process-wide registry. It panics on a
// duplicate name, which surfaces definition-file mistakes at startup.
func Register(name string, body Body, opts ...Option) *Definition {
	def, err := defaultRegistry.Register(name, body, opts...)
	if err != nil {
		panic(err)
	}

	return def
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
