package gorecord

import (
	"context"
	"fmt"
	"strings"
)

// Record is an instance of a declared Type: one resolved value per keyword
// of the type's schema.
type Record struct {
	typ      *Type
	values   map[string]any
	presence PresenceMap
	frozen   bool
}

var _ View = (*Record)(nil)

// Type returns the record type.
func (r *Record) Type() *Type { return r.typ }

// Context returns context.Background; finished records carry no context.
func (r *Record) Context() context.Context { return context.Background() }

// Resolving always returns "" for finished records.
func (r *Record) Resolving() string { return "" }

// Get reads name through its reader. Undeclared names read as nil.
func (r *Record) Get(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Lookup reads name through its reader and reports whether name is declared.
func (r *Record) Lookup(name string) (any, bool) {
	v, ok := r.values[name]
	if !ok {
		return nil, false
	}
	if rd, has := r.typ.readers[name]; has {
		return rd(r, v), true
	}
	return v, true
}

// Raw returns the stored value of name, bypassing any reader override.
func (r *Record) Raw(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Call invokes a method declared on the record type.
func (r *Record) Call(method string, args ...any) (any, error) {
	return callMethod(r, method, args)
}

// Presence returns how each keyword obtained its value at construction.
func (r *Record) Presence() PresenceMap { return r.presence.clone() }

// Frozen reports whether Freeze has been called (or the record was cloned
// from a frozen one).
func (r *Record) Frozen() bool { return r.frozen }

// Assign is the protected writer: r may set keyword name on target only when
// r's type is target's type or derives from it. Frozen targets reject the
// write.
func (r *Record) Assign(target *Record, name string, v any) error {
	if target == nil || !r.typ.IsA(target.typ) {
		it := IssueAt(name, CodeForbiddenWrite, nil)
		if target != nil {
			it.Params = map[string]any{"type": target.typ.name}
		}
		return Issues{it}
	}
	if !target.typ.schema.Has(name) {
		return Issues{IssueAt(name, CodeUnknownField, map[string]any{"type": target.typ.name})}
	}
	if target.frozen {
		return Issues{IssueAt(name, CodeFrozen, map[string]any{"type": target.typ.name})}
	}
	target.values[name] = v
	return nil
}

// String renders the record as #<Type a=1 b="x">, public keywords only.
func (r *Record) String() string {
	b := &strings.Builder{}
	b.WriteString("#<")
	b.WriteString(r.typ.name)
	for _, n := range r.typ.schema.names {
		if r.typ.Visibility(n) != Public {
			continue
		}
		fmt.Fprintf(b, " %s=%#v", n, r.Get(n))
	}
	b.WriteString(">")
	return b.String()
}
