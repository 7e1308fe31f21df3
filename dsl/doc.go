// Package dsl provides the declaration layer for gorecord types.
//
// Overview
//   - Builder API: declare keywords with Define()/Keyword()/Nest()/Reader()/Method() and finish with Build()/MustBuild().
//   - Keyword(t, name, opts...): the single registration entry point; returns the canonical keyword name.
//   - Options: Default(v) for eager defaults, Computed(fn) for per-record defaults, Construct(values) for
//     nested keywords defaulting to a new nested record, As(name) to rename a nested type, Private()/Protected().
//   - Loaders: LoadYAML/LoadJSON/LoadFile declare types from declaration documents.
//
// Entry points
//   - Define(name)/DefineIn(reg, name): start a root type.
//   - Extend(base, name): start a subtype that copies base's keywords.
//   - Reopen(t): continue declaring an existing type.
//
// Errors
//   - Declaration issues are collected and returned together by Build as gorecord.Issues.
//   - invalid_declaration: more than one kind of default on a keyword, malformed documents.
//   - ambiguous_nesting: a nested type name reused on the same owner.
//
// Example (quickstart)
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/reoring/gorecord"
//	    "github.com/reoring/gorecord/dsl"
//	)
//
//	func main() {
//	    order := dsl.Define("Order").
//	        Keyword("id").
//	        Keyword("tags", dsl.Default([]string{})).
//	        Keyword("label", dsl.Computed(func(self gorecord.View) (any, error) {
//	            return fmt.Sprintf("order-%v", self.Get("id")), nil
//	        })).
//	        Nest("address", func(b *dsl.Builder) {
//	            b.Keyword("city", dsl.Default("Tokyo"))
//	        }, dsl.Construct(nil)).
//	        MustBuild()
//
//	    o := order.MustNew(gorecord.Values{"id": 7})
//	    fmt.Println(o.Get("label")) // order-7
//	}
//
// Example (redeclaration moves a keyword last)
//
//	t := dsl.Define("T").
//	    Keyword("foo").
//	    Keyword("bar").
//	    Keyword("foo", dsl.Computed(func(self gorecord.View) (any, error) { return self.Get("bar"), nil })).
//	    MustBuild()
//	_ = t.Fields() // [bar foo]
package dsl
