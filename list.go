package gorecord

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// List is an ordered, freezable collection for keyword values. Go slices
// have no frozen state; use List when a record's collection must reject
// changes after Record.Freeze.
type List struct {
	items  []any
	frozen bool
}

// NewList returns an unfrozen list holding items.
func NewList(items ...any) *List {
	return &List{items: append([]any(nil), items...)}
}

// Append adds values at the end.
func (l *List) Append(v ...any) error {
	if l.frozen {
		return Issues{IssueAt("", CodeFrozen, nil)}
	}
	l.items = append(l.items, v...)
	return nil
}

// Set replaces the element at i.
func (l *List) Set(i int, v any) error {
	if l.frozen {
		return Issues{IssueAt(strconv.Itoa(i), CodeFrozen, nil)}
	}
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("gorecord: list index %d out of range [0,%d)", i, len(l.items))
	}
	l.items[i] = v
	return nil
}

// At returns the element at i.
func (l *List) At(i int) any { return l.items[i] }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Values returns a copy of the elements.
func (l *List) Values() []any { return append([]any(nil), l.items...) }

// Freeze implements Freezer. Elements are not frozen.
func (l *List) Freeze() { l.frozen = true }

// Frozen implements Freezer.
func (l *List) Frozen() bool { return l.frozen }

// Dup returns an unfrozen list with its own storage and the same elements.
func (l *List) Dup() *List { return NewList(l.items...) }

// Clone returns a list with the same frozen state whose elements are cloned.
func (l *List) Clone() *List {
	out := &List{items: make([]any, len(l.items)), frozen: l.frozen}
	for i, v := range l.items {
		out.items[i] = CloneValue(v)
	}
	return out
}

// Equal compares element-wise with EqualValues.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.items) != len(other.items) {
		return false
	}
	for i := range l.items {
		if !EqualValues(l.items[i], other.items[i]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (l *List) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString("list")
	writeUint(d, uint64(len(l.items)))
	for _, v := range l.items {
		writeUint(d, HashValue(v))
	}
	return d.Sum64()
}

func (l *List) DupValue() any     { return l.Dup() }
func (l *List) CloneValue() any   { return l.Clone() }
func (l *List) HashValue() uint64 { return l.Hash() }

func (l *List) EqualValue(other any) bool {
	o, ok := other.(*List)
	return ok && l.Equal(o)
}

// String renders the elements like a slice.
func (l *List) String() string { return fmt.Sprint(l.items) }
