package gorecord

import (
	"context"
	"fmt"
	"sort"
)

// View is the read-only face of a record handed to computed defaults,
// readers and methods. During construction it exposes the keywords resolved
// so far plus every explicitly supplied value; defaulted keywords declared
// later are not available until their own turn.
type View interface {
	// Type returns the record type.
	Type() *Type
	// Get reads name through its reader; it returns nil when the value is
	// not available (yet).
	Get(name string) any
	// Lookup reads name through its reader and reports availability.
	Lookup(name string) (any, bool)
	// Call invokes a method declared on the record type.
	Call(method string, args ...any) (any, error)
	// Context returns the construction context (Background for finished
	// records).
	Context() context.Context
	// Resolving names the keyword whose default is being computed; empty
	// outside construction.
	Resolving() string
}

// New constructs a record from explicitly supplied keyword values using the
// type's unknown policy.
func (t *Type) New(values Values) (*Record, error) {
	return t.NewWithOpt(context.Background(), values, NewOpt{Unknown: t.unknown})
}

// NewContext is like New but makes ctx visible to computed defaults through
// View.Context.
func (t *Type) NewContext(ctx context.Context, values Values) (*Record, error) {
	return t.NewWithOpt(ctx, values, NewOpt{Unknown: t.unknown})
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(values Values) *Record {
	r, err := t.New(values)
	if err != nil {
		panic(err)
	}
	return r
}

// NewWithOpt constructs a record. Supplied values are stored as given. Every
// other keyword is resolved through its Default in schema order. All missing
// required keywords (and, under UnknownStrict, all undeclared names) are
// reported together; no default is evaluated in that case.
func (t *Type) NewWithOpt(ctx context.Context, values Values, opt NewOpt) (*Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var iss Issues
	supplied := make(Values, len(values))
	unknown := make([]string, 0)
	for k, v := range values {
		if !t.schema.Has(k) {
			unknown = append(unknown, k)
			continue
		}
		supplied[k] = v
	}
	if opt.Unknown == UnknownStrict && len(unknown) > 0 {
		sort.Strings(unknown)
		for _, k := range unknown {
			iss = AppendIssues(iss, IssueAt(k, CodeUnknownField, map[string]any{"type": t.name}))
		}
	}
	for _, name := range t.schema.names {
		if _, ok := supplied[name]; ok {
			continue
		}
		if !t.schema.defaults[name].Optional() {
			iss = AppendIssues(iss, IssueAt(name, CodeMissingField, map[string]any{"type": t.name}))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	p := &partial{
		typ:      t,
		ctx:      ctx,
		supplied: supplied,
		resolved: make(map[string]any, t.schema.Len()),
	}
	presence := make(PresenceMap, t.schema.Len())
	for _, name := range t.schema.names {
		if v, ok := supplied[name]; ok {
			p.resolved[name] = v
			presence[name] = PresenceSupplied
			continue
		}
		p.resolving = name
		v, err := t.schema.defaults[name].Resolve(p)
		p.resolving = ""
		if err != nil {
			if child, ok := AsIssues(err); ok {
				iss = AppendIssues(iss, rebase(name, child)...)
			} else {
				it := IssueAt(name, CodeDefaultFailed, map[string]any{"type": t.name})
				it.Cause = err
				iss = AppendIssues(iss, it)
			}
			continue
		}
		p.resolved[name] = v
		presence[name] = PresenceDefaultApplied
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &Record{typ: t, values: p.resolved, presence: presence}, nil
}

// partial is the View of a record under construction.
type partial struct {
	typ       *Type
	ctx       context.Context
	supplied  Values
	resolved  map[string]any
	resolving string
}

func (p *partial) Type() *Type              { return p.typ }
func (p *partial) Context() context.Context { return p.ctx }
func (p *partial) Resolving() string        { return p.resolving }

func (p *partial) Get(name string) any {
	v, _ := p.Lookup(name)
	return v
}

func (p *partial) raw(name string) (any, bool) {
	if v, ok := p.resolved[name]; ok {
		return v, true
	}
	v, ok := p.supplied[name]
	return v, ok
}

func (p *partial) Lookup(name string) (any, bool) {
	v, ok := p.raw(name)
	if !ok {
		return nil, false
	}
	if rd, has := p.typ.readers[name]; has && p.typ.schema.Has(name) {
		return rd(p, v), true
	}
	return v, true
}

func (p *partial) Call(method string, args ...any) (any, error) {
	return callMethod(p, method, args)
}

func callMethod(self View, method string, args []any) (any, error) {
	fn, ok := self.Type().methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s#%s", ErrNoMethod, self.Type().Name(), method)
	}
	return fn(self, args...)
}
