// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// A Set is an ordered collection of values backed by a [Tree].
// By default a Set is a multiset: inserting a value that is already
// present adds another copy. With the [Distinct] option it holds at most
// one copy of each value.
//
// The set algebra methods count copies: an intersection keeps the
// smaller number of copies of each value, a difference subtracts them.
// For distinct sets these are the ordinary set operations.
//
// A Set must be created with [New], [NewFunc] or [Of].
type Set[T any] struct {
	tree *Tree[T]
	cfg  config
}

// New returns an empty Set ordered by cmp.Compare.
func New[T cmp.Ordered](opts ...Option) *Set[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc returns an empty Set ordered by cmp.
func NewFunc[T any](cmp func(T, T) int, opts ...Option) *Set[T] {
	c := newConfig(opts)
	return &Set[T]{tree: newTree(cmp, c), cfg: c}
}

// Of returns a Set holding values, with default options.
func Of[T cmp.Ordered](values ...T) *Set[T] {
	s := New[T]()
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// empty returns a new empty Set with s's ordering and options.
func (s *Set[T]) empty() *Set[T] {
	return &Set[T]{tree: newTree(s.tree.cmp, s.cfg), cfg: s.cfg}
}

// Insert adds v to s and reports whether it was added.
// Only a distinct Set declines to add a value.
func (s *Set[T]) Insert(v T) bool {
	if s.cfg.distinct && s.tree.Contains(v) {
		return false
	}
	s.tree.Insert(v)
	return true
}

// Erase removes one copy of v from s.
// If v is not present, it returns an error wrapping [ErrNotFound]
// and s is unchanged.
func (s *Set[T]) Erase(v T) error {
	return s.tree.EraseValue(v)
}

// Contains reports whether v is in s.
func (s *Set[T]) Contains(v T) bool {
	return s.tree.Contains(v)
}

// Value returns the copy of v stored in s. This matters only when the
// comparison function ignores part of the value.
func (s *Set[T]) Value(v T) (T, error) {
	h := s.tree.Find(v)
	if !h.Ok {
		var zero T
		return zero, errors.Wrapf(ErrNotFound, "value %v", v)
	}
	return s.tree.Value(h.Value)
}

// Len returns the number of values in s, counting copies.
func (s *Set[T]) Len() int {
	return s.tree.Len()
}

// Height returns the height of the tree behind s.
func (s *Set[T]) Height() int {
	return s.tree.Height()
}

// Get returns the value at position rank of the root-left-right
// traversal of s. The position of a value depends on the tree's shape,
// not only on the values; use [Set.At] for sorted positions.
func (s *Set[T]) Get(rank int) (T, error) {
	return s.tree.At(rank, RootLeftRight)
}

// GetIn returns the value at position rank of the traversal of s in order o.
func (s *Set[T]) GetIn(rank int, o Order) (T, error) {
	return s.tree.At(rank, o)
}

// At returns the value at position rank in ascending order.
func (s *Set[T]) At(rank int) (T, error) {
	return s.tree.At(rank, Ascending)
}

// All returns an iterator over s in order o.
func (s *Set[T]) All(o Order) iter.Seq[T] {
	return s.tree.All(o)
}

// Values returns an iterator over s in ascending order.
func (s *Set[T]) Values() iter.Seq[T] {
	return s.tree.All(Ascending)
}

// Slice returns the values of s in ascending order.
func (s *Set[T]) Slice() []T {
	return slices.Collect(s.Values())
}

// Thread threads the tree behind s for order o; see [Tree.Thread].
func (s *Set[T]) Thread(o Order) {
	s.tree.Thread(o)
}

// Walk is like All, but uses the threads when s is threaded for o.
func (s *Set[T]) Walk(o Order) iter.Seq[T] {
	return s.tree.Walk(o)
}

// View returns a copy of the shape of the tree behind s.
func (s *Set[T]) View() *NodeView[T] {
	return s.tree.View()
}

// Unite inserts every value of other into s, each with a fresh priority.
// other may be s.
func (s *Set[T]) Unite(other *Set[T]) {
	for _, v := range other.Slice() {
		s.Insert(v)
	}
}

// Intersect removes from s the values that are not in other.
func (s *Set[T]) Intersect(other *Set[T]) {
	var drop []T
	mergeWalk(s.Values(), other.Values(), s.tree.cmp,
		func(v T) bool { drop = append(drop, v); return true },
		keep[T], keep[T])
	s.eraseAll(drop)
}

// Difference removes from s the values that are in other.
func (s *Set[T]) Difference(other *Set[T]) {
	var drop []T
	mergeWalk(s.Values(), other.Values(), s.tree.cmp,
		keep[T],
		func(v T) bool { drop = append(drop, v); return true },
		keep[T])
	s.eraseAll(drop)
}

func (s *Set[T]) eraseAll(vs []T) {
	for _, v := range vs {
		if err := s.tree.EraseValue(v); err != nil {
			panic(err)
		}
	}
}

// HasSubSet reports whether every value of other is in s.
func (s *Set[T]) HasSubSet(other *Set[T]) bool {
	if other.Len() > s.Len() {
		return false
	}
	ok := true
	mergeWalk(s.Values(), other.Values(), s.tree.cmp,
		keep[T], keep[T],
		func(T) bool { ok = false; return false })
	return ok
}

// Equal reports whether s and other hold the same values.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	ok := true
	differ := func(T) bool { ok = false; return false }
	mergeWalk(s.Values(), other.Values(), s.tree.cmp, differ, keep[T], differ)
	return ok
}

// Filter returns a new Set with the values of s for which pred returns true.
func (s *Set[T]) Filter(pred func(T) bool) *Set[T] {
	s2 := s.empty()
	for v := range s.Values() {
		if pred(v) {
			s2.Insert(v)
		}
	}
	return s2
}

// Map returns a new Set holding f(v) for each value v of s.
func (s *Set[T]) Map(f func(T) T) *Set[T] {
	s2 := s.empty()
	for v := range s.Values() {
		s2.Insert(f(v))
	}
	return s2
}

// Clone returns a copy of s.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{tree: s.tree.Clone(), cfg: s.cfg}
}

// Clear removes all values from s.
func (s *Set[T]) Clear() {
	s.tree.Clear()
}

func (s *Set[T]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for v := range s.Values() {
		if b.Len() > 1 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte('}')
	return b.String()
}

func keep[T any](T) bool { return true }

// mergeWalk walks a and b, both ascending under cmp, side by side.
// Equal values pair up one to one, so surplus copies on either side
// are reported as present on that side only.
// It stops as soon as a callback returns false.
func mergeWalk[T any](a, b iter.Seq[T], cmp func(T, T) int, onlyA, both, onlyB func(T) bool) {
	nextA, stopA := iter.Pull(a)
	defer stopA()
	nextB, stopB := iter.Pull(b)
	defer stopB()

	va, okA := nextA()
	vb, okB := nextB()
	for okA || okB {
		switch {
		case !okB || okA && cmp(va, vb) < 0:
			if !onlyA(va) {
				return
			}
			va, okA = nextA()
		case !okA || cmp(va, vb) > 0:
			if !onlyB(vb) {
				return
			}
			vb, okB = nextB()
		default:
			if !both(va) {
				return
			}
			va, okA = nextA()
			vb, okB = nextB()
		}
	}
}
