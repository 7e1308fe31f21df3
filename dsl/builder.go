package dsl

import (
	"strings"

	gorecord "github.com/reoring/gorecord"
	"go.uber.org/zap"
)

// Builder declares one record type. Declaration errors are collected and
// returned by Build.
type Builder struct {
	t   *gorecord.Type
	iss gorecord.Issues
}

// Define starts a new root record type in the default registry.
func Define(name string) *Builder { return DefineIn(gorecord.DefaultRegistry(), name) }

// DefineIn starts a new root record type in reg.
func DefineIn(reg *gorecord.Registry, name string) *Builder {
	return &Builder{t: reg.Declare(name)}
}

// Extend starts a subtype of base. The subtype begins with a copy of base's
// keywords, readers and methods.
func Extend(base *gorecord.Type, name string) *Builder {
	return &Builder{t: base.Derive(name)}
}

// Reopen continues declaring an existing type.
func Reopen(t *gorecord.Type) *Builder { return &Builder{t: t} }

// Keyword registers a field on t and returns its canonical name. At most one
// of Default or Computed may be given; none makes the keyword required.
func Keyword(t *gorecord.Type, name string, opts ...KeywordOpt) (string, error) {
	c := collect(opts)
	if c.hasNew {
		it := gorecord.IssueAt(name, gorecord.CodeInvalidDeclaration, nil)
		it.Hint = "Construct is only valid on Nest"
		return "", gorecord.Issues{it}
	}
	d, bad := c.defaultOf(name)
	if bad != nil {
		return "", gorecord.Issues{*bad}
	}
	t.Keyword(name, d)
	if c.hasVis {
		t.SetVisibility(name, c.vis)
	}
	return name, nil
}

// Keyword registers a keyword (see the package-level Keyword).
func (b *Builder) Keyword(name string, opts ...KeywordOpt) *Builder {
	if _, err := Keyword(b.t, name, opts...); err != nil {
		b.fail(err)
	}
	return b
}

// Nest registers keyword name whose value is a record of a new nested type,
// declared by body. The nested type is named after the keyword (see
// gorecord.Camelize) unless As is given, derives from the base of the type
// being declared, and is reachable through Type.Nested.
//
// Reusing a nested type name on the same owner is an ambiguous_nesting error.
func (b *Builder) Nest(name string, body func(*Builder), opts ...KeywordOpt) *Builder {
	c := collect(opts)
	typeName := c.define
	if typeName == "" {
		typeName = gorecord.Camelize(name)
	}
	if b.t.DeclaresNested(typeName) {
		it := gorecord.IssueAt(name, gorecord.CodeAmbiguousNesting, map[string]any{"type": typeName})
		b.iss = gorecord.AppendIssues(b.iss, it)
		return b
	}
	d, bad := c.defaultOf(name)
	if bad != nil {
		b.iss = gorecord.AppendIssues(b.iss, *bad)
		return b
	}
	var child *gorecord.Type
	if c.hasNew {
		values := c.construct
		d = gorecord.Computed(func(self gorecord.View) (any, error) {
			r, err := child.NewContext(self.Context(), gorecord.DupValue(values).(gorecord.Values))
			if err != nil {
				return nil, err
			}
			return r, nil
		})
	}
	child = b.t.Nest(name, typeName, d)
	if c.hasVis {
		b.t.SetVisibility(name, c.vis)
	}
	b.t.Registry().Logger().Debug("nested type declared",
		zap.String("owner", b.t.Name()),
		zap.String("keyword", name),
		zap.String("type", child.Name()),
	)
	if body != nil {
		nb := &Builder{t: child}
		body(nb)
		for _, it := range nb.iss {
			it.Path = "/" + name + ensureSlash(it.Path)
			b.iss = gorecord.AppendIssues(b.iss, it)
		}
	}
	return b
}

func ensureSlash(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

// Reader overrides the reader of a keyword.
func (b *Builder) Reader(name string, fn gorecord.ReaderFunc) *Builder {
	b.t.Reader(name, fn)
	return b
}

// Method defines instance-level behavior callable from computed defaults.
func (b *Builder) Method(name string, fn gorecord.MethodFunc) *Builder {
	b.t.Method(name, fn)
	return b
}

// UnknownStrict makes New reject undeclared names (the default).
func (b *Builder) UnknownStrict() *Builder {
	b.t.SetUnknownPolicy(gorecord.UnknownStrict)
	return b
}

// UnknownStrip makes New drop undeclared names.
func (b *Builder) UnknownStrip() *Builder {
	b.t.SetUnknownPolicy(gorecord.UnknownStrip)
	return b
}

// Type returns the type being declared.
func (b *Builder) Type() *gorecord.Type { return b.t }

// Build returns the declared type, or every declaration issue collected so
// far.
func (b *Builder) Build() (*gorecord.Type, error) {
	if len(b.iss) > 0 {
		return nil, b.iss
	}
	return b.t, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *gorecord.Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *Builder) fail(err error) {
	if iss, ok := gorecord.AsIssues(err); ok {
		b.iss = gorecord.AppendIssues(b.iss, iss...)
		return
	}
	b.iss = gorecord.AppendIssues(b.iss, gorecord.Issue{Path: "/", Code: gorecord.CodeInvalidDeclaration, Message: err.Error(), Cause: err})
}
