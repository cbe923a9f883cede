package sources

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownType is returned for a source type nobody registered.
var ErrUnknownType = errors.New("unknown source type")

// MissingFieldError reports a required config field left empty.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s source: missing %q", e.Type, e.Field)
}

// GlobalRegistry is populated by source packages in init().
var GlobalRegistry = NewRegistry()

// Registry maps source type names to their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds factory under factory.Name(). It panics on an empty or
// already registered name, since both are programming errors in init().
func (r *Registry) Register(factory Factory) {
	name := factory.Name()
	if name == "" {
		panic("sources: Register with empty type name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[name]; dup {
		panic("sources: Register called twice for type " + name)
	}
	r.factories[name] = factory
}

func (r *Registry) lookup(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return f, nil
}

// Open validates cfg against the type's fields and builds the source.
func (r *Registry) Open(spec SourceSpec) (SaveSource, error) {
	f, err := r.lookup(spec.Type)
	if err != nil {
		return nil, err
	}
	if err := checkFields(spec.Type, f.ConfigSpec(), spec.Config); err != nil {
		return nil, err
	}
	return f.Create(spec.Config)
}

func checkFields(typ string, info SourceTypeInfo, cfg Config) error {
	for _, field := range info.Fields {
		if field.Required && cfg.String(field.Name) == "" {
			return &MissingFieldError{Type: typ, Field: field.Name}
		}
	}
	return nil
}

// Types returns the registered type names in order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// TypeInfo describes one registered type.
func (r *Registry) TypeInfo(name string) (SourceTypeInfo, error) {
	f, err := r.lookup(name)
	if err != nil {
		return SourceTypeInfo{}, err
	}
	return f.ConfigSpec(), nil
}

// TypesInfo describes every registered type, ordered by name.
func (r *Registry) TypesInfo() []SourceTypeInfo {
	names := r.Types()
	out := make([]SourceTypeInfo, 0, len(names))
	for _, name := range names {
		if info, err := r.TypeInfo(name); err == nil {
			out = append(out, info)
		}
	}
	return out
}
