package gorecord

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Dict is a freezable string-keyed map for keyword values.
type Dict struct {
	m      map[string]any
	frozen bool
}

// NewDict returns an unfrozen dict holding a copy of m.
func NewDict(m map[string]any) *Dict {
	d := &Dict{m: make(map[string]any, len(m))}
	for k, v := range m {
		d.m[k] = v
	}
	return d
}

// Put sets key to v.
func (d *Dict) Put(key string, v any) error {
	if d.frozen {
		return Issues{IssueAt(key, CodeFrozen, nil)}
	}
	d.m[key] = v
	return nil
}

// Delete removes key.
func (d *Dict) Delete(key string) error {
	if d.frozen {
		return Issues{IssueAt(key, CodeFrozen, nil)}
	}
	delete(d.m, key)
	return nil
}

// Get returns the value of key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Keys returns the keys in ascending order.
func (d *Dict) Keys() []string {
	out := make([]string, 0, len(d.m))
	for k := range d.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.m) }

// Map returns a copy of the entries.
func (d *Dict) Map() map[string]any {
	out := make(map[string]any, len(d.m))
	for k, v := range d.m {
		out[k] = v
	}
	return out
}

func (d *Dict) Freeze()      { d.frozen = true }
func (d *Dict) Frozen() bool { return d.frozen }

// Dup returns an unfrozen dict with its own storage.
func (d *Dict) Dup() *Dict { return NewDict(d.m) }

// Clone returns a dict with the same frozen state and cloned values.
func (d *Dict) Clone() *Dict {
	out := &Dict{m: make(map[string]any, len(d.m)), frozen: d.frozen}
	for k, v := range d.m {
		out.m[k] = CloneValue(v)
	}
	return out
}

// Equal compares entries with EqualValues.
func (d *Dict) Equal(other *Dict) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.m) != len(other.m) {
		return false
	}
	for k, v := range d.m {
		ov, ok := other.m[k]
		if !ok || !EqualValues(v, ov) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (d *Dict) Hash() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString("dict")
	for _, k := range d.Keys() {
		_, _ = h.WriteString(k)
		writeUint(h, HashValue(d.m[k]))
	}
	return h.Sum64()
}

func (d *Dict) DupValue() any     { return d.Dup() }
func (d *Dict) CloneValue() any   { return d.Clone() }
func (d *Dict) HashValue() uint64 { return d.Hash() }

func (d *Dict) EqualValue(other any) bool {
	o, ok := other.(*Dict)
	return ok && d.Equal(o)
}
