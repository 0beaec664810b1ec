// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"cmp"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(values []int, opts ...Option) *Set[int] {
	s := New[int](opts...)
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

func checkSet[T any](t *testing.T, s *Set[T]) {
	t.Helper()
	require.NoError(t, s.tree.Check())
}

var modes = []struct {
	name string
	opts []Option
}{
	{"multiset", []Option{WithSeed(1)}},
	{"distinct", []Option{WithSeed(2), Distinct()}},
}

func TestSetAlgebra(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{3, 4, 5, 6}
	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			s := setOf(a, m.opts...)
			s.Unite(setOf(b, m.opts...))
			checkSet(t, s)
			want := []int{1, 2, 3, 4, 5, 6}
			if m.name == "multiset" {
				want = []int{1, 2, 3, 3, 4, 4, 5, 6}
			}
			assert.Equal(t, want, s.Slice())

			s = setOf(a, m.opts...)
			s.Intersect(setOf(b, m.opts...))
			checkSet(t, s)
			assert.Equal(t, []int{3, 4}, s.Slice())

			s = setOf(a, m.opts...)
			s.Difference(setOf(b, m.opts...))
			checkSet(t, s)
			assert.Equal(t, []int{1, 2}, s.Slice())

			s = setOf(a, m.opts...)
			assert.True(t, s.HasSubSet(setOf([]int{3, 4}, m.opts...)))
			assert.True(t, s.HasSubSet(New[int]()))
			assert.True(t, s.HasSubSet(s))
			assert.False(t, s.HasSubSet(setOf(b, m.opts...)))
			assert.False(t, New[int]().HasSubSet(s))

			assert.True(t, s.Equal(setOf([]int{4, 3, 2, 1})))
			assert.False(t, s.Equal(setOf(b)))
			assert.False(t, s.Equal(setOf([]int{1, 2, 3})))
			assert.True(t, New[int]().Equal(New[int]()))
		})
	}
}

func TestSetMultiplicity(t *testing.T) {
	a := setOf([]int{1, 1, 2, 3, 3, 3})
	require.Equal(t, 6, a.Len())

	s := a.Clone()
	s.Intersect(setOf([]int{1, 3, 3, 4}))
	assert.Equal(t, []int{1, 3, 3}, s.Slice())

	s = a.Clone()
	s.Difference(setOf([]int{1, 3, 3, 4}))
	assert.Equal(t, []int{1, 2, 3}, s.Slice())

	assert.True(t, a.HasSubSet(setOf([]int{1, 1, 3})))
	assert.False(t, a.HasSubSet(setOf([]int{1, 1, 1})))
	assert.False(t, a.Equal(setOf([]int{1, 2, 2, 3, 3, 3})))
	assert.False(t, a.Equal(setOf([]int{1, 2, 3}, Distinct())))
	checkSet(t, a)
}

func TestSetSelf(t *testing.T) {
	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			s := setOf([]int{1, 2, 3}, m.opts...)
			s.Unite(s)
			checkSet(t, s)
			want := []int{1, 2, 3}
			if m.name == "multiset" {
				want = []int{1, 1, 2, 2, 3, 3}
			}
			assert.Equal(t, want, s.Slice())

			s.Intersect(s)
			assert.Equal(t, want, s.Slice())
			assert.True(t, s.Equal(s))

			s.Difference(s)
			checkSet(t, s)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestSetInsertErase(t *testing.T) {
	s := New[int](Distinct())
	assert.True(t, s.Insert(5))
	assert.False(t, s.Insert(5))
	assert.Equal(t, 1, s.Len())

	m := New[int]()
	assert.True(t, m.Insert(5))
	assert.True(t, m.Insert(5))
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Erase(5))
	assert.True(t, m.Contains(5))
	require.NoError(t, m.Erase(5))
	assert.False(t, m.Contains(5))

	err := m.Erase(5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, m.Len())

	s = Of(1, 2, 3)
	assert.ErrorIs(t, s.Erase(7), ErrNotFound)
	assert.Equal(t, 3, s.Len())
	checkSet(t, s)
}

func TestSetZeroValue(t *testing.T) {
	var s Set[int]
	assert.Panics(t, func() { s.Insert(1) })
	assert.NotPanics(t, func() { Of[int]().Insert(1) })
}

func TestSetGet(t *testing.T) {
	s := setOf([]int{5, 3, 8, 1, 4, 7, 9, 2, 6}, WithSeed(5))
	pre := slices.Collect(s.All(RootLeftRight))
	for i, want := range pre {
		got, err := s.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for i := range s.Len() {
		got, err := s.At(i)
		require.NoError(t, err)
		assert.Equal(t, i+1, got)
	}
	for _, o := range Orders {
		all := slices.Collect(s.All(o))
		for i, want := range all {
			got, err := s.GetIn(i, o)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
	for _, r := range []int{-1, 9, 100} {
		_, err := s.Get(r)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
	_, err := New[int]().Get(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSetValue(t *testing.T) {
	type person struct {
		name string
		age  int
	}
	s := NewFunc(func(a, b person) int { return strings.Compare(a.name, b.name) }, Distinct())
	s.Insert(person{"ann", 30})
	s.Insert(person{"bob", 40})
	assert.False(t, s.Insert(person{"ann", 99}))

	got, err := s.Value(person{name: "ann"})
	require.NoError(t, err)
	assert.Equal(t, 30, got.age)

	_, err = s.Value(person{name: "cat"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetDerived(t *testing.T) {
	s := setOf([]int{1, 2, 3, 4, 5, 6}, Distinct(), WithSeed(3))

	even := s.Filter(func(v int) bool { return v%2 == 0 })
	checkSet(t, even)
	assert.Equal(t, []int{2, 4, 6}, even.Slice())

	// Map keeps the options of the source, so collisions collapse.
	halves := s.Map(func(v int) int { return v / 2 })
	checkSet(t, halves)
	assert.Equal(t, []int{0, 1, 2, 3}, halves.Slice())

	c := s.Clone()
	c.Insert(7)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 7, c.Len())
	assert.False(t, c.Insert(7))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "{}", c.String())
	assert.Equal(t, "{1 2 3 4 5 6}", s.String())
}

func TestSetThread(t *testing.T) {
	s := setOf([]int{4, 2, 6, 1, 3, 5, 7}, WithSeed(9))
	for _, o := range Orders {
		s.Thread(o)
		checkSet(t, s)
		assert.Equal(t, slices.Collect(s.All(o)), slices.Collect(s.Walk(o)))
	}
	s.Insert(8)
	checkSet(t, s)
	assert.False(t, s.tree.ThreadOrder().Ok)
}

func TestSetFuncOrder(t *testing.T) {
	s := NewFunc(func(a, b int) int { return cmp.Compare(b, a) })
	for _, v := range []int{3, 1, 2} {
		s.Insert(v)
	}
	other := NewFunc(func(a, b int) int { return cmp.Compare(b, a) })
	other.Insert(2)
	assert.Equal(t, []int{3, 2, 1}, s.Slice())
	assert.True(t, s.HasSubSet(other))
	s.Difference(other)
	assert.Equal(t, []int{3, 1}, s.Slice())
	assert.NotNil(t, s.View())
	assert.True(t, s.Height() >= 1)
}
