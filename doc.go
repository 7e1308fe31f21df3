// Package gorecord provides declarative value records:
//
// - An ordered keyword Schema per record Type, with required, eager and computed defaults
// - Construction that reports every missing keyword at once (Issues: path, code, message)
// - Structural equality (lenient Equal, StrictEqual), Hash, Freeze, Dup and Clone
// - Positional and keyed decomposition honoring reader overrides and visibility
// - Nested record types declared on a keyword, derived from the owner's base
//
// Design policy:
// - Keep only public APIs in the root package; the fluent declaration DSL and
//   declaration-file loaders live under dsl/, messages under i18n/, the CLI under cmd/gorecord.
// - Types are declared once, sequentially, at initialization; afterwards they are read-only and
//   safe to share between goroutines constructing and comparing records.
// - Prefer black-box testing against public APIs.
//
// Eager versus computed defaults are two explicit entry points (Value and Computed). A func
// handed to Value is a plain value: it is stored and returned, never called.
//
// Typical usage:
//
//	point := gorecord.Declare("Point")
//	point.Keyword("x", gorecord.Required())
//	point.Keyword("y", gorecord.Value(0))
//	point.Keyword("label", gorecord.Computed(func(self gorecord.View) (any, error) {
//	    return fmt.Sprintf("(%v,%v)", self.Get("x"), self.Get("y")), nil
//	}))
//
//	p, err := point.New(gorecord.Values{"x": 1})
//	_ = p.Deconstruct()              // []any{1, 0, "(1,0)"}
//	_ = p.DeconstructKeys([]string{"x"}) // map[string]any{"x": 1}
//	_ = gorecord.MissingFields(err)
package gorecord
