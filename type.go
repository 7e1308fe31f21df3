package gorecord

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoMethod is returned by View.Call for undeclared methods.
var ErrNoMethod = errors.New("gorecord: no such method")

// ReaderFunc overrides the reader of a keyword. raw is the stored value.
type ReaderFunc func(self View, raw any) any

// MethodFunc is instance-level behavior callable from computed defaults,
// readers and other methods.
type MethodFunc func(self View, args ...any) (any, error)

// Type is a declared record type. It owns its Schema; derived types own a
// copy. Types are mutated only while being declared and are read-only (and
// safe for concurrent use) afterwards.
type Type struct {
	reg        *Registry
	id         uint64
	name       string
	base       *Type
	owner      *Type
	schema     *Schema
	readers    map[string]ReaderFunc
	methods    map[string]MethodFunc
	visibility map[string]Visibility
	nested     map[string]*Type
	unknown    UnknownPolicy
}

// Name returns the full type name. Nested types are qualified by their
// owner, e.g. "Order.Address".
func (t *Type) Name() string { return t.name }

// ID returns the registry-unique id.
func (t *Type) ID() uint64 { return t.id }

// Base returns the type t was derived from, or nil for root types.
func (t *Type) Base() *Type { return t.base }

// Owner returns the type a nested type was declared in, or nil.
func (t *Type) Owner() *Type { return t.owner }

// Registry returns the registry that owns t.
func (t *Type) Registry() *Registry { return t.reg }

// Schema returns the keyword schema. Callers must not register keywords on
// it directly; use Keyword.
func (t *Type) Schema() *Schema { return t.schema }

// Fields is shorthand for Schema().Fields().
func (t *Type) Fields() []string { return t.schema.Fields() }

// UnknownPolicy returns the policy applied by New.
func (t *Type) UnknownPolicy() UnknownPolicy { return t.unknown }

// SetUnknownPolicy changes how New treats undeclared names.
func (t *Type) SetUnknownPolicy(p UnknownPolicy) *Type {
	t.unknown = p
	return t
}

// Keyword registers a keyword and returns its name. Registering an existing
// keyword replaces its default and moves it to the end of the order.
func (t *Type) Keyword(name string, d Default) string {
	redeclared := t.schema.Has(name)
	t.schema.Register(name, d)
	t.reg.log.Debug("keyword registered",
		zap.String("type", t.name),
		zap.String("keyword", name),
		zap.Stringer("default", d.Kind()),
		zap.Bool("redeclared", redeclared),
	)
	return name
}

// Derive creates a subtype. The subtype starts with a duplicate of t's
// schema, readers, methods and visibility table; later changes on either side
// stay on that side.
func (t *Type) Derive(name string) *Type {
	c := t.reg.newType(name, t, t.schema.Duplicate())
	for k, v := range t.readers {
		c.readers[k] = v
	}
	for k, v := range t.methods {
		c.methods[k] = v
	}
	for k, v := range t.visibility {
		c.visibility[k] = v
	}
	c.unknown = t.unknown
	t.reg.log.Debug("type derived", zap.String("type", c.name), zap.String("base", t.name))
	return c
}

// IsA reports whether t is other or derives from it.
func (t *Type) IsA(other *Type) bool {
	for cur := t; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

// SetVisibility sets the reader visibility of a keyword. Non-public keywords
// are skipped by decomposition.
func (t *Type) SetVisibility(name string, v Visibility) *Type {
	t.visibility[name] = v
	return t
}

// Visibility returns the reader visibility of name (Public when unset).
func (t *Type) Visibility(name string) Visibility { return t.visibility[name] }

// Reader overrides how the keyword name is read. The override applies to
// Record.Get, equality, hashing and decomposition.
func (t *Type) Reader(name string, fn ReaderFunc) *Type {
	if fn == nil {
		delete(t.readers, name)
		return t
	}
	t.readers[name] = fn
	return t
}

// Method defines instance-level behavior reachable through View.Call.
func (t *Type) Method(name string, fn MethodFunc) *Type {
	if fn == nil {
		delete(t.methods, name)
		return t
	}
	t.methods[name] = fn
	return t
}

// HasMethod reports whether name is a declared method.
func (t *Type) HasMethod(name string) bool {
	_, ok := t.methods[name]
	return ok
}

// Nest declares a nested record type for keyword field and registers field on
// t with d. The nested type derives from t's base (it is a sibling of t, not
// a subtype) and is named Camelize(field) unless name is non-empty. The
// caller populates the returned type like any other.
//
// An existing nested type with the same name is replaced; detecting that
// ambiguity is left to the declaring layer (see dsl).
func (t *Type) Nest(field, name string, d Default) *Type {
	t.Keyword(field, d)
	if name == "" {
		name = Camelize(field)
	}
	full := t.name + "." + name
	var child *Type
	if t.base != nil {
		child = t.base.Derive(full)
	} else {
		child = t.reg.Declare(full)
	}
	child.owner = t
	t.nested[name] = child
	return child
}

// Nested returns the nested type declared under name on t or, failing that,
// on the nearest base declaring it.
func (t *Type) Nested(name string) (*Type, bool) {
	for cur := t; cur != nil; cur = cur.base {
		if c, ok := cur.nested[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// DeclaresNested reports whether name was nested on t itself. Nested types
// inherited from a base do not count, so a subtype may redeclare them.
func (t *Type) DeclaresNested(name string) bool {
	_, ok := t.nested[name]
	return ok
}

// String returns the type name.
func (t *Type) String() string { return t.name }

// GoString renders the type with its keyword order, for %#v.
func (t *Type) GoString() string {
	return fmt.Sprintf("gorecord.Type{%s %v}", t.name, t.schema.names)
}
