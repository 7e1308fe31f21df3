package gorecord_test

import (
	"errors"
	"math"
	"testing"

	gorecord "github.com/reoring/gorecord"
	"github.com/reoring/gorecord/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDupValue(t *testing.T) {
	s := []int{1, 2}
	ds := gorecord.DupValue(s).([]int)
	ds[0] = 9
	assert.Equal(t, []int{1, 2}, s)

	m := map[string][]int{"k": {1}}
	dm := gorecord.DupValue(m).(map[string][]int)
	dm["new"] = nil
	assert.Len(t, m, 1)
	dm["k"][0] = 7
	assert.Equal(t, 7, m["k"][0], "one level only")

	type pt struct{ X int }
	p := &pt{X: 1}
	dp := gorecord.DupValue(p).(*pt)
	dp.X = 2
	assert.Equal(t, 1, p.X)

	assert.Equal(t, "s", gorecord.DupValue("s"))
	assert.Nil(t, gorecord.DupValue(nil))
}

func TestCloneValue_Cycles(t *testing.T) {
	type node struct {
		Name string
		Next *node
	}
	n := &node{Name: "a"}
	n.Next = n
	c := gorecord.CloneValue(n).(*node)
	assert.NotSame(t, n, c)
	assert.Same(t, c, c.Next)
	assert.Equal(t, "a", c.Name)
}

func TestEqualValues(t *testing.T) {
	assert.True(t, gorecord.EqualValues(nil, nil))
	assert.False(t, gorecord.EqualValues(nil, 0))
	assert.True(t, gorecord.EqualValues([]any{1, "a"}, []any{1, "a"}))
	assert.False(t, gorecord.EqualValues([]any{1}, []int{1}))
	assert.True(t, gorecord.EqualValues(map[string]any{"a": []int{1}}, map[string]any{"a": []int{1}}))
	assert.True(t, gorecord.EqualValues(gorecord.NewList(1, 2), gorecord.NewList(1, 2)))
	assert.False(t, gorecord.EqualValues(gorecord.NewList(1), gorecord.NewDict(nil)))
}

func TestHashValue_ConsistentWithEqual(t *testing.T) {
	a := map[string]any{"x": 1, "y": []any{"a", 2.5}, "z": nil}
	b := map[string]any{"z": nil, "y": []any{"a", 2.5}, "x": 1}
	require.True(t, gorecord.EqualValues(a, b))
	assert.Equal(t, gorecord.HashValue(a), gorecord.HashValue(b))

	assert.Equal(t, gorecord.HashValue(0.0), gorecord.HashValue(math.Copysign(0, -1)))
	assert.NotEqual(t, gorecord.HashValue(1), gorecord.HashValue("1"))

	shared := []int{1}
	type pair struct{ A, B *[]int }
	assert.Equal(t,
		gorecord.HashValue(pair{A: &shared, B: &shared}),
		gorecord.HashValue(pair{A: &[]int{1}, B: &[]int{1}}),
	)
}

func TestList(t *testing.T) {
	l := gorecord.NewList(1, 2)
	require.NoError(t, l.Append(3))
	require.NoError(t, l.Set(0, 0))
	assert.Equal(t, []any{0, 2, 3}, l.Values())
	assert.Error(t, l.Set(5, 1))

	d := l.Dup()
	assert.True(t, l.Equal(d))
	assert.Equal(t, l.Hash(), d.Hash())

	l.Freeze()
	assert.ErrorIs(t, l.Set(0, 1), gorecord.ErrFrozen)
	assert.False(t, l.Dup().Frozen())
	assert.True(t, l.Clone().Frozen())
	assert.Equal(t, "[0 2 3]", l.String())
}

func TestDict(t *testing.T) {
	d := gorecord.NewDict(map[string]any{"b": 2})
	require.NoError(t, d.Put("a", 1))
	assert.Equal(t, []string{"a", "b"}, d.Keys())
	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	other := gorecord.NewDict(map[string]any{"a": 1, "b": 2})
	assert.True(t, d.Equal(other))
	assert.Equal(t, d.Hash(), other.Hash())

	d.Freeze()
	assert.ErrorIs(t, d.Put("c", 3), gorecord.ErrFrozen)
	assert.ErrorIs(t, d.Delete("a"), gorecord.ErrFrozen)
	dup := d.Dup()
	require.NoError(t, dup.Delete("a"))
	assert.Equal(t, 2, d.Len())
}

func TestIssues(t *testing.T) {
	iss := gorecord.Issues{
		gorecord.IssueAt("a", gorecord.CodeMissingField, nil),
		gorecord.IssueAt("b", gorecord.CodeUnknownField, nil),
		gorecord.IssueAt("c", gorecord.CodeMissingField, nil),
		gorecord.IssueAt("d", gorecord.CodeMissingField, nil),
	}
	assert.Equal(t, "missing_field at /a; unknown_field at /b; missing_field at /c; ... (total 4)", iss.Error())
	assert.ErrorIs(t, iss, gorecord.ErrMissingField)
	assert.NotErrorIs(t, iss, gorecord.ErrFrozen)
	assert.Equal(t, []string{"a", "c", "d"}, gorecord.MissingFields(iss))
	assert.Nil(t, gorecord.MissingFields(errors.New("plain")))

	cause := errors.New("cause")
	wrapped := gorecord.Issues{{Path: "/x", Code: gorecord.CodeDefaultFailed, Cause: cause}}
	assert.ErrorIs(t, wrapped, cause)
}

func TestIssueAt_Localized(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })

	assert.Equal(t, "unknown field zzz", gorecord.IssueAt("zzz", gorecord.CodeUnknownField, nil).Message)
	i18n.SetLanguage("ja")
	assert.Equal(t, "未知のフィールド zzz です", gorecord.IssueAt("zzz", gorecord.CodeUnknownField, nil).Message)
}

func TestEqualValues_SlicesSharingBackingArray(t *testing.T) {
	x := []int{1, 2}
	z := []int{1, 99}
	a := [][]int{x[:1], x[:2]}
	b := [][]int{z[:1], z[:2]}
	assert.False(t, gorecord.EqualValues(a, b))

	typ := gorecord.NewRegistry().Declare("T")
	typ.Keyword("xs", gorecord.Required())
	ra := typ.MustNew(gorecord.Values{"xs": a})
	rb := typ.MustNew(gorecord.Values{"xs": b})
	assert.False(t, ra.StrictEqual(rb))
	assert.NotEqual(t, ra.Hash(), rb.Hash())

	same := typ.MustNew(gorecord.Values{"xs": [][]int{{1}, {1, 2}}})
	assert.True(t, ra.StrictEqual(same))
	assert.Equal(t, ra.Hash(), same.Hash())
}
