package gorecord

import (
	"github.com/cespare/xxhash/v2"
)

// Equal is lenient structural equality: other must be a *Record declaring the
// same keyword names with equal values, regardless of its type. Anything that
// is not a record compares by identity.
//
// Values are compared with EqualValues; nested records inside values are
// compared strictly so that Hash stays consistent with StrictEqual.
func (r *Record) Equal(other any) bool {
	o, ok := other.(*Record)
	if !ok || r == nil || o == nil {
		return any(r) == other
	}
	if r == o {
		return true
	}
	if r.typ.schema.Len() != o.typ.schema.Len() {
		return false
	}
	for _, n := range r.typ.schema.names {
		ov, ok := o.Lookup(n)
		if !ok {
			return false
		}
		if !EqualValues(r.Get(n), ov) {
			return false
		}
	}
	return true
}

// StrictEqual additionally requires both records to have the identical type.
func (r *Record) StrictEqual(other any) bool {
	o, ok := other.(*Record)
	if !ok || r == nil || o == nil {
		return any(r) == other
	}
	return r.typ == o.typ && r.Equal(o)
}

// Hash combines the type identity with the ordered keyword values. Records
// that are StrictEqual hash identically.
func (r *Record) Hash() uint64 {
	d := xxhash.New()
	writeUint(d, r.typ.id)
	for _, n := range r.typ.schema.names {
		_, _ = d.WriteString(n)
		writeUint(d, HashValue(r.Get(n)))
	}
	return d.Sum64()
}

// Freeze marks r immutable and freezes each keyword value implementing
// Freezer. Values are frozen one level deep only.
func (r *Record) Freeze() {
	r.frozen = true
	for _, n := range r.typ.schema.names {
		FreezeValue(r.values[n])
	}
}

// Dup returns an unfrozen copy whose keyword values are one-level copies of
// r's (see DupValue). Nested records are duplicated one level.
func (r *Record) Dup() *Record {
	out := &Record{typ: r.typ, values: make(map[string]any, len(r.values)), presence: r.presence.clone()}
	for k, v := range r.values {
		out.values[k] = DupValue(v)
	}
	return out
}

// Clone returns a copy that keeps r's frozen state and copies keyword values
// as deeply as possible (see CloneValue).
func (r *Record) Clone() *Record {
	out := &Record{typ: r.typ, values: make(map[string]any, len(r.values)), presence: r.presence.clone(), frozen: r.frozen}
	for k, v := range r.values {
		out.values[k] = CloneValue(v)
	}
	return out
}

// DupValue implements Duplicator.
func (r *Record) DupValue() any { return r.Dup() }

// CloneValue implements Cloner.
func (r *Record) CloneValue() any { return r.Clone() }

// EqualValue implements Equaler with strict equality.
func (r *Record) EqualValue(other any) bool { return r.StrictEqual(other) }

// HashValue implements Hasher.
func (r *Record) HashValue() uint64 { return r.Hash() }
