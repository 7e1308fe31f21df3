package dsl

import (
	gorecord "github.com/reoring/gorecord"
)

// KeywordOpt configures a single keyword declaration.
type KeywordOpt func(*keywordConfig)

type keywordConfig struct {
	eager     any
	hasEager  bool
	lazy      gorecord.Computation
	construct gorecord.Values
	hasNew    bool
	vis       gorecord.Visibility
	hasVis    bool
	define    string
}

// Default gives the keyword an eager default. v is copied one level into
// every record that omits the keyword; a func v is stored, never called.
func Default(v any) KeywordOpt {
	return func(c *keywordConfig) {
		c.eager = v
		c.hasEager = true
	}
}

// Computed gives the keyword a default computed per record.
func Computed(fn gorecord.Computation) KeywordOpt {
	return func(c *keywordConfig) {
		c.lazy = fn
	}
}

// Construct is only meaningful on Nest: the keyword defaults to a new record
// of the nested type built from values.
func Construct(values gorecord.Values) KeywordOpt {
	return func(c *keywordConfig) {
		c.construct = values
		c.hasNew = true
	}
}

// As overrides the generated name of a nested type.
func As(name string) KeywordOpt {
	return func(c *keywordConfig) { c.define = name }
}

// Visibility sets the reader visibility.
func Visibility(v gorecord.Visibility) KeywordOpt {
	return func(c *keywordConfig) {
		c.vis = v
		c.hasVis = true
	}
}

// Private hides the keyword from decomposition.
func Private() KeywordOpt { return Visibility(gorecord.Private) }

// Protected hides the keyword from decomposition.
func Protected() KeywordOpt { return Visibility(gorecord.Protected) }

func collect(opts []KeywordOpt) keywordConfig {
	var c keywordConfig
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// defaultOf turns the collected options into a descriptor. Giving more than
// one kind of default is a declaration error.
func (c keywordConfig) defaultOf(name string) (gorecord.Default, *gorecord.Issue) {
	n := 0
	if c.hasEager {
		n++
	}
	if c.lazy != nil {
		n++
	}
	if c.hasNew {
		n++
	}
	if n > 1 {
		it := gorecord.IssueAt(name, gorecord.CodeInvalidDeclaration, nil)
		it.Hint = "give at most one of Default, Computed or Construct"
		return gorecord.Default{}, &it
	}
	switch {
	case c.hasEager:
		return gorecord.Value(c.eager), nil
	case c.lazy != nil:
		return gorecord.Computed(c.lazy), nil
	}
	return gorecord.Required(), nil
}
