package gorecord_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gorecord "github.com/reoring/gorecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fooBar(t *testing.T) *gorecord.Type {
	t.Helper()
	typ := gorecord.NewRegistry().Declare("FooBar")
	typ.Keyword("foo", gorecord.Required())
	typ.Keyword("bar", gorecord.Computed(func(self gorecord.View) (any, error) {
		foo := self.Get("foo").(int)
		return foo + foo, nil
	}))
	return typ
}

func TestNew_ComputedDefaultSeesSuppliedValue(t *testing.T) {
	r, err := fooBar(t).New(gorecord.Values{"foo": 3})
	require.NoError(t, err)
	assert.Equal(t, 6, r.Get("bar"))
	assert.Equal(t, []any{3, 6}, r.Deconstruct())
}

func TestNew_MissingRequired(t *testing.T) {
	_, err := fooBar(t).New(gorecord.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorecord.ErrMissingField)
	assert.Equal(t, []string{"foo"}, gorecord.MissingFields(err))
}

func TestNew_ReportsEveryMissingField(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("a", gorecord.Required())
	typ.Keyword("b", gorecord.Value(1))
	typ.Keyword("c", gorecord.Required())
	calls := 0
	typ.Keyword("d", gorecord.Computed(func(gorecord.View) (any, error) { calls++; return nil, nil }))

	_, err := typ.New(nil)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "c"}, gorecord.MissingFields(err))
	assert.Equal(t, 0, calls, "defaults must not run when construction is rejected")

	iss, ok := gorecord.AsIssues(err)
	require.True(t, ok)
	assert.Len(t, iss, 2)
	assert.Equal(t, "missing required field a", iss[0].Message)
}

func TestNew_UnknownField(t *testing.T) {
	typ := fooBar(t)
	_, err := typ.New(gorecord.Values{"foo": 1, "zzz": 2, "aaa": 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorecord.ErrUnknownField)
	iss, _ := gorecord.AsIssues(err)
	require.Len(t, iss, 2)
	assert.Equal(t, "/aaa", iss[0].Path)
	assert.Equal(t, "/zzz", iss[1].Path)

	typ.SetUnknownPolicy(gorecord.UnknownStrip)
	r, err := typ.New(gorecord.Values{"foo": 1, "zzz": 2})
	require.NoError(t, err)
	_, ok := r.Lookup("zzz")
	assert.False(t, ok)

	_, err = typ.NewWithOpt(context.Background(), gorecord.Values{"foo": 1, "zzz": 2}, gorecord.NewOpt{Unknown: gorecord.UnknownStrict})
	assert.ErrorIs(t, err, gorecord.ErrUnknownField)
}

func TestNew_SuppliedFuncIsStoredVerbatim(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("foo", gorecord.Required())
	called := false
	fn := func() int { called = true; return 4 }

	r, err := typ.New(gorecord.Values{"foo": fn})
	require.NoError(t, err)
	_, ok := r.Get("foo").(func() int)
	assert.True(t, ok)
	assert.False(t, called)
}

func TestNew_EagerFuncDefaultIsNotCalled(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("foo", gorecord.Value(func() int { return 2 + 2 }))

	r := typ.MustNew(nil)
	fn, ok := r.Get("foo").(func() int)
	require.True(t, ok)
	assert.Equal(t, 4, fn())
}

func TestNew_ComputedDefaultInvokedOncePerConstruction(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	calls := 0
	typ.Keyword("n", gorecord.Computed(func(gorecord.View) (any, error) {
		calls++
		return calls, nil
	}))

	r1 := typ.MustNew(nil)
	r2 := typ.MustNew(nil)
	_ = typ.MustNew(gorecord.Values{"n": 100})
	assert.Equal(t, 1, r1.Get("n"))
	assert.Equal(t, 2, r2.Get("n"))
	assert.Equal(t, 2, calls)
}

func TestNew_ComputedDefaultSeesEarlierDefaults(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("foo", gorecord.Computed(func(gorecord.View) (any, error) { return 2 + 2, nil }))
	typ.Keyword("bar", gorecord.Computed(func(self gorecord.View) (any, error) {
		return self.Get("foo").(int) * 2, nil
	}))
	assert.Equal(t, 8, typ.MustNew(nil).Get("bar"))
}

func TestNew_LaterDefaultsAreNotVisibleYet(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	var seen bool
	typ.Keyword("first", gorecord.Computed(func(self gorecord.View) (any, error) {
		_, seen = self.Lookup("second")
		return "first", nil
	}))
	typ.Keyword("second", gorecord.Value("second"))

	typ.MustNew(nil)
	assert.False(t, seen)

	typ.MustNew(gorecord.Values{"second": "supplied"})
	assert.True(t, seen, "supplied values are visible regardless of order")
}

func TestNew_RedeclarationPromotesDependency(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("foo", gorecord.Required())
	typ.Keyword("bar", gorecord.Required())
	typ.Keyword("foo", gorecord.Computed(func(self gorecord.View) (any, error) { return self.Get("bar"), nil }))

	assert.Equal(t, []string{"bar", "foo"}, typ.Fields())
	assert.Equal(t, "bar", typ.MustNew(gorecord.Values{"bar": "bar"}).Get("foo"))
}

func TestNew_ComputedDefaultCallsMethod(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Method("hello_world", func(gorecord.View, ...any) (any, error) { return "Hello, World!", nil })
	typ.Keyword("foo", gorecord.Computed(func(self gorecord.View) (any, error) {
		return self.Call("hello_world")
	}))
	assert.Equal(t, "Hello, World!", typ.MustNew(nil).Get("foo"))

	r := typ.MustNew(nil)
	_, err := r.Call("missing")
	assert.ErrorIs(t, err, gorecord.ErrNoMethod)
}

func TestNew_ComputedDefaultError(t *testing.T) {
	boom := errors.New("boom")
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("foo", gorecord.Computed(func(gorecord.View) (any, error) { return nil, boom }))

	_, err := typ.New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	iss, _ := gorecord.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, gorecord.CodeDefaultFailed, iss[0].Code)
	assert.Equal(t, "/foo", iss[0].Path)
}

func TestNew_NestedFailureIsRebased(t *testing.T) {
	reg := gorecord.NewRegistry()
	parent := reg.Declare("Parent")
	var child *gorecord.Type
	child = parent.Nest("child", "", gorecord.Computed(func(self gorecord.View) (any, error) {
		r, err := child.New(nil)
		if err != nil {
			return nil, err
		}
		return r, nil
	}))
	child.Keyword("foo", gorecord.Required())

	_, err := parent.New(nil)
	require.Error(t, err)
	iss, _ := gorecord.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/child/foo", iss[0].Path)
	assert.Equal(t, gorecord.CodeMissingField, iss[0].Code)
}

type clock struct{ now string }

func TestNewContext_ServiceInjection(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("Event")
	typ.Keyword("at", gorecord.Computed(func(self gorecord.View) (any, error) {
		c, err := gorecord.RequireService[*clock](self.Context())
		if err != nil {
			return nil, err
		}
		return c.now, nil
	}))

	ctx := gorecord.WithService(context.Background(), &clock{now: "2026-10-17"})
	r, err := typ.NewContext(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", r.Get("at"))

	_, err = typ.New(nil)
	assert.ErrorIs(t, err, gorecord.ErrServiceMissing)
}

func TestNew_EagerDefaultsAreNotShared(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("items", gorecord.Value([]any{}))
	typ.Keyword("list", gorecord.Value(gorecord.NewList()))

	r1 := typ.MustNew(nil)
	r2 := typ.MustNew(nil)

	l1 := r1.Get("list").(*gorecord.List)
	require.NoError(t, l1.Append(1))
	assert.Equal(t, 0, r2.Get("list").(*gorecord.List).Len())

	s1 := append(r1.Get("items").([]any), 1)
	assert.Len(t, s1, 1)
	assert.Empty(t, r2.Get("items"))
}

func TestNew_Presence(t *testing.T) {
	r, err := fooBar(t).New(gorecord.Values{"foo": 1})
	require.NoError(t, err)
	pm := r.Presence()
	assert.Equal(t, gorecord.PresenceSupplied, pm["foo"])
	assert.Equal(t, gorecord.PresenceDefaultApplied, pm["bar"])
	assert.Equal(t, []string{"bar"}, pm.Defaulted(r.Type().Fields()))
	assert.Equal(t, []string{"foo"}, pm.Supplied(r.Type().Fields()))
}

func TestNew_PositionalMatchesSchemaOrder(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("c", gorecord.Value("C"))
	typ.Keyword("a", gorecord.Required())
	typ.Keyword("b", gorecord.Computed(func(self gorecord.View) (any, error) {
		return fmt.Sprint(self.Get("a"), self.Get("c")), nil
	}))
	r := typ.MustNew(gorecord.Values{"a": "A"})
	assert.Equal(t, []any{"C", "A", "AC"}, r.Deconstruct())
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { fooBar(t).MustNew(nil) })
}

func TestNew_LookupOfPendingKeywordSkipsReader(t *testing.T) {
	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("a", gorecord.Computed(func(self gorecord.View) (any, error) {
		if v, ok := self.Lookup("b"); ok {
			return v, nil
		}
		return "pending", nil
	}))
	typ.Keyword("b", gorecord.Value("x"))
	typ.Reader("b", func(_ gorecord.View, raw any) any { return raw.(string) + "!" })

	var r *gorecord.Record
	require.NotPanics(t, func() { r = typ.MustNew(nil) })
	assert.Equal(t, "pending", r.Get("a"))
	assert.Equal(t, "x!", r.Get("b"))

	r = typ.MustNew(gorecord.Values{"b": "y"})
	assert.Equal(t, "y!", r.Get("a"))
}
