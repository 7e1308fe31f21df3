package gorecord

import (
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Registry is the arena owning declared record types. Each type gets a unique
// id used for strict equality and hashing.
type Registry struct {
	mu     sync.RWMutex
	types  []*Type
	byName map[string]*Type
	nextID uint64
	log    *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger routes declaration events to l at debug level.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{byName: map[string]*Type{}, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Declare.
func DefaultRegistry() *Registry { return defaultRegistry }

// Declare creates a root record type with an empty schema in the default
// registry.
func Declare(name string) *Type { return defaultRegistry.Declare(name) }

// Declare creates a root record type with an empty schema. An empty name
// yields an anonymous type. Redeclaring a name shadows the previous type for
// Lookup; existing records keep their own type.
func (r *Registry) Declare(name string) *Type {
	t := r.newType(name, nil, NewSchema())
	r.log.Debug("type declared", zap.String("type", t.name), zap.Uint64("id", t.id))
	return t
}

// Lookup finds a type by its full name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Types returns every declared type in declaration order.
func (r *Registry) Types() []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Type(nil), r.types...)
}

// Logger returns the registry logger.
func (r *Registry) Logger() *zap.Logger { return r.log }

func (r *Registry) newType(name string, base *Type, s *Schema) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if name == "" {
		name = "#<anonymous:" + strconv.FormatUint(r.nextID, 10) + ">"
	}
	t := &Type{
		reg:        r,
		id:         r.nextID,
		name:       name,
		base:       base,
		schema:     s,
		readers:    map[string]ReaderFunc{},
		methods:    map[string]MethodFunc{},
		visibility: map[string]Visibility{},
		nested:     map[string]*Type{},
	}
	if prev, ok := r.byName[name]; ok {
		r.log.Warn("type name shadowed", zap.String("type", name), zap.Uint64("previous_id", prev.id))
	}
	r.byName[name] = t
	r.types = append(r.types, t)
	return t
}
