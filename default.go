package gorecord

import "fmt"

// Kind distinguishes the variants of a Default.
type Kind uint8

const (
	KindRequired Kind = iota // No default: the value must be supplied.
	KindEager                // A fixed value, duplicated into every record.
	KindLazy                 // A computation invoked for every record that needs it.
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindEager:
		return "eager"
	case KindLazy:
		return "lazy"
	default:
		return "required"
	}
}

// Computation computes a keyword value for a record under construction. self
// exposes the keywords resolved so far, every explicitly supplied value and the
// methods declared on the record type.
type Computation func(self View) (any, error)

// Default describes how a keyword obtains its value when the caller does not
// supply one. The zero value is Required. Defaults are immutable.
//
// A func passed to Value is an ordinary eager value: it is stored and handed
// out as is, never invoked. Use Computed for per-record computation.
type Default struct {
	kind    Kind
	value   any
	compute Computation
}

// Required marks a keyword that must be supplied at construction.
func Required() Default { return Default{kind: KindRequired} }

// Value returns an eager default. Each record receives a one-level copy of v
// (see DupValue), so mutable defaults are never shared between records.
func Value(v any) Default { return Default{kind: KindEager, value: v} }

// Computed returns a lazy default evaluated once per record that does not
// supply the keyword. A nil fn is treated as a computation returning nil.
func Computed(fn Computation) Default {
	if fn == nil {
		fn = func(View) (any, error) { return nil, nil }
	}
	return Default{kind: KindLazy, compute: fn}
}

// Kind reports the variant.
func (d Default) Kind() Kind { return d.kind }

// Optional reports whether the keyword may be omitted at construction.
func (d Default) Optional() bool { return d.kind != KindRequired }

// Eager returns the stored eager value. The second result is false for other
// variants.
func (d Default) Eager() (any, bool) {
	if d.kind != KindEager {
		return nil, false
	}
	return d.value, true
}

// Resolve produces the value for one record.
func (d Default) Resolve(self View) (any, error) {
	switch d.kind {
	case KindEager:
		return DupValue(d.value), nil
	case KindLazy:
		return d.compute(self)
	default:
		name := ""
		if self != nil {
			name = self.Resolving()
		}
		return nil, Issues{IssueAt(name, CodeMissingField, nil)}
	}
}

// dup copies the descriptor for a derived schema. Eager values get their own
// storage so in-place changes to the parent's default never reach the child.
func (d Default) dup() Default {
	if d.kind == KindEager {
		return Default{kind: KindEager, value: DupValue(d.value)}
	}
	return d
}

// String renders the descriptor for diagnostics.
func (d Default) String() string {
	switch d.kind {
	case KindEager:
		return fmt.Sprintf("eager(%v)", d.value)
	case KindLazy:
		return "lazy"
	default:
		return "required"
	}
}
