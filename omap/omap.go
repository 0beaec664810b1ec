// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package omap implements in-memory ordered maps.
// [Map][K, V] is suitable for ordered types K,
// while [MapFunc][K, V] supports arbitrary keys and comparison functions.
//
// Entries are stored in a [treap.Tree] ordered by key.
package omap

import (
	"cmp"
	"iter"

	"github.com/jba/treap"
	"github.com/jba/treap/rng"
)

// A Map is a map[K]V ordered according to K's standard Go ordering.
// The zero value of a Map is an empty Map ready to use.
type Map[K cmp.Ordered, V any] struct {
	_tree *treap.Tree[entry[K, V]]
}

// A MapFunc is a map[K]V ordered according to an arbitrary comparison function.
// The zero value of a MapFunc is not meaningful since it has no comparison function.
// Use [NewMapFunc] to create a [MapFunc].
// A nil *MapFunc, like a nil Go map, can be read but not written and contains no entries.
type MapFunc[K, V any] struct {
	_tree *treap.Tree[entry[K, V]]
	cmp   func(K, K) int
	opts  []treap.Option
}

type entry[K, V any] struct {
	key K
	val V
}

// NewMapFunc returns a new MapFunc[K, V] ordered according to cmp.
// The options configure the underlying tree.
func NewMapFunc[K, V any](cmp func(K, K) int, opts ...treap.Option) *MapFunc[K, V] {
	return &MapFunc[K, V]{cmp: cmp, opts: opts}
}

// omap is the interface implemented by both Map[K, V] and MapFunc[K, V]
// that enables a common implementation of the map operations.
type omap[K, V any] interface {
	// tree returns the tree holding the entries.
	// If the map has no tree yet, tree creates one when create is true
	// and returns nil otherwise.
	tree(create bool) *treap.Tree[entry[K, V]]
}

func (m *Map[K, V]) tree(create bool) *treap.Tree[entry[K, V]] {
	if m == nil {
		return nil
	}
	if m._tree == nil && create {
		m._tree = treap.NewTreeFunc(func(a, b entry[K, V]) int {
			return cmp.Compare(a.key, b.key)
		})
	}
	return m._tree
}

func (m *MapFunc[K, V]) tree(create bool) *treap.Tree[entry[K, V]] {
	if m == nil {
		return nil
	}
	if m._tree == nil && create {
		m._tree = treap.NewTreeFunc(func(a, b entry[K, V]) int {
			return m.cmp(a.key, b.key)
		}, m.opts...)
	}
	return m._tree
}

// Get returns the value of m[key] and reports whether it exists.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return get(m, key)
}

// Get returns the value of m[key] and reports whether it exists.
func (m *MapFunc[K, V]) Get(key K) (V, bool) {
	return get(m, key)
}

func get[K, V any](m omap[K, V], key K) (V, bool) {
	var zero V
	t := m.tree(false)
	if t == nil {
		return zero, false
	}
	h := t.Find(entry[K, V]{key: key})
	if !h.Ok {
		return zero, false
	}
	e, err := t.Value(h.Value)
	if err != nil {
		panic(err)
	}
	return e.val, true
}

// Set sets m[key] = val.
// If the entry was present, Set returns the former value and false.
// Otherwise it returns the zero value and true.
func (m *Map[K, V]) Set(key K, val V) (old V, added bool) {
	return set(m, key, val)
}

// Set sets m[key] = val.
// If the entry was present, Set returns the former value and false.
// Otherwise it returns the zero value and true.
func (m *MapFunc[K, V]) Set(key K, val V) (old V, added bool) {
	return set(m, key, val)
}

func set[K, V any](m omap[K, V], key K, val V) (V, bool) {
	t := m.tree(true)
	e := entry[K, V]{key: key, val: val}
	if h := t.Find(e); h.Ok {
		prev, err := t.Value(h.Value)
		if err == nil {
			err = t.Replace(h.Value, e)
		}
		if err != nil {
			panic(err)
		}
		return prev.val, false
	}
	t.Insert(e)
	var z V
	return z, true
}

// Delete deletes m[key] if it exists and reports whether it did.
func (m *Map[K, V]) Delete(key K) bool {
	return _delete(m, key)
}

// Delete deletes m[key] if it exists and reports whether it did.
func (m *MapFunc[K, V]) Delete(key K) bool {
	return _delete(m, key)
}

func _delete[K, V any](m omap[K, V], key K) bool {
	t := m.tree(false)
	if t == nil {
		return false
	}
	h := t.Find(entry[K, V]{key: key})
	if !h.Ok {
		return false
	}
	if err := t.Erase(h.Value); err != nil {
		panic(err)
	}
	return true
}

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int {
	return _len(m)
}

// Len returns the number of entries in m.
func (m *MapFunc[K, V]) Len() int {
	return _len(m)
}

func _len[K, V any](m omap[K, V]) int {
	if t := m.tree(false); t != nil {
		return t.Len()
	}
	return 0
}

// Min returns the minimum key in m and true.
// If m is empty, the second return value is false.
func (m *Map[K, V]) Min() (K, bool) {
	return _min(m)
}

// Min returns the minimum key in m and true.
// If m is empty, the second return value is false.
func (m *MapFunc[K, v]) Min() (K, bool) {
	return _min(m)
}

func _min[K, V any](m omap[K, V]) (K, bool) {
	var e entry[K, V]
	ok := false
	if t := m.tree(false); t != nil {
		e, ok = t.Min()
	}
	return e.key, ok
}

// Max returns the maximum key in m and true.
// If m is empty, the second return value is false.
func (m *Map[K, V]) Max() (K, bool) {
	return _max(m)
}

// Max returns the maximum key in m and true.
// If m is empty, the second return value is false.
func (m *MapFunc[K, v]) Max() (K, bool) {
	return _max(m)
}

func _max[K, V any](m omap[K, V]) (K, bool) {
	var e entry[K, V]
	ok := false
	if t := m.tree(false); t != nil {
		e, ok = t.Max()
	}
	return e.key, ok
}

// At returns the i'th entry of m in key order.
// It panics if i is out of range.
func (m *Map[K, V]) At(i int) (K, V) {
	return at(m, i)
}

// At returns the i'th entry of m in key order.
// It panics if i is out of range.
func (m *MapFunc[K, V]) At(i int) (K, V) {
	return at(m, i)
}

func at[K, V any](m omap[K, V], i int) (K, V) {
	t := m.tree(false)
	if t == nil {
		panic("omap: At on empty map")
	}
	e, err := t.At(i, treap.Ascending)
	if err != nil {
		panic(err)
	}
	return e.key, e.val
}

// All returns an iterator over the map m from smallest to largest key.
// m must not be modified during the iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return all(m, treap.Ascending)
}

// All returns an iterator over the map m from smallest to largest key.
// m must not be modified during the iteration.
func (m *MapFunc[K, V]) All() iter.Seq2[K, V] {
	return all(m, treap.Ascending)
}

// Backward returns an iterator over the map m from largest to smallest key.
// m must not be modified during the iteration.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return all(m, treap.Descending)
}

// Backward returns an iterator over the map m from largest to smallest key.
// m must not be modified during the iteration.
func (m *MapFunc[K, V]) Backward() iter.Seq2[K, V] {
	return all(m, treap.Descending)
}

func all[K, V any](m omap[K, V], o treap.Order) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t := m.tree(false)
		if t == nil {
			return
		}
		for e := range t.All(o) {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Scan returns an iterator over the entries of m whose keys lie in r,
// in increasing key order, or decreasing order if r is backwards.
// m must not be modified during the iteration.
func (m *Map[K, V]) Scan(r rng.Range[K]) iter.Seq2[K, V] {
	return scan(m, r)
}

// Scan returns an iterator over the entries of m whose keys lie in r,
// in increasing key order, or decreasing order if r is backwards.
// m must not be modified during the iteration.
func (m *MapFunc[K, V]) Scan(r rng.Range[K]) iter.Seq2[K, V] {
	return scan(m, r)
}

func scan[K, V any](m omap[K, V], r rng.Range[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t := m.tree(false)
		if t == nil {
			return
		}
		for e := range t.Scan(entryRange[K, V](r)) {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// DeleteRange deletes the entries of m whose keys lie in r
// and returns how many were deleted.
func (m *Map[K, V]) DeleteRange(r rng.Range[K]) int {
	return deleteRange(m, r)
}

// DeleteRange deletes the entries of m whose keys lie in r
// and returns how many were deleted.
func (m *MapFunc[K, V]) DeleteRange(r rng.Range[K]) int {
	return deleteRange(m, r)
}

func deleteRange[K, V any](m omap[K, V], r rng.Range[K]) int {
	t := m.tree(false)
	if t == nil {
		return 0
	}
	return t.DeleteRange(entryRange[K, V](r))
}

// entryRange converts a range of keys to the range of entries with those keys.
func entryRange[K, V any](r rng.Range[K]) rng.Range[entry[K, V]] {
	lo, linf, lincl := r.Low()
	hi, hinf, hincl := r.High()
	var er rng.Range[entry[K, V]]
	switch {
	case linf:
		er = rng.All[entry[K, V]]()
	case lincl:
		er = rng.From(entry[K, V]{key: lo})
	default:
		er = rng.Above(entry[K, V]{key: lo})
	}
	switch {
	case hinf:
	case hincl:
		er = er.To(entry[K, V]{key: hi})
	default:
		er = er.Below(entry[K, V]{key: hi})
	}
	if r.IsBackwards() {
		er = er.Backwards()
	}
	return er
}

// Clear deletes m[k] for all keys in m.
func (m *Map[K, V]) Clear() {
	if m._tree != nil {
		m._tree.Clear()
	}
}

// Clear deletes m[k] for all keys in m.
func (m *MapFunc[K, V]) Clear() {
	if m._tree != nil {
		m._tree.Clear()
	}
}

// Clone returns a copy of m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	m2 := &Map[K, V]{}
	if m._tree != nil {
		m2._tree = m._tree.Clone()
	}
	return m2
}

// Clone returns a copy of m.
func (m *MapFunc[K, V]) Clone() *MapFunc[K, V] {
	m2 := NewMapFunc[K, V](m.cmp, m.opts...)
	if m._tree != nil {
		m2._tree = m._tree.Clone()
	}
	return m2
}
