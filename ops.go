// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"iter"

	g "github.com/anacrolix/generics"
	"github.com/jba/treap/rng"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Split removes the values greater than key from t and returns them
// as a new tree with the same comparison function and options.
// The shapes and priorities of both halves are preserved.
func (t *Tree[T]) Split(key T) *Tree[T] {
	t.mutate()
	l, r := t.split(t.root, key, false)
	t.setRoot(l)
	t2 := &Tree[T]{nodes: make([]node[T], 1), cmp: t.cmp, rand: t.rand, log: t.log}
	t2.setRoot(t.moveTo(t2, r))
	return t2
}

// Join moves every value of other into t, leaving other empty.
// Every value of other must be greater than or equal to every value of t;
// otherwise Join returns an error wrapping [ErrInvalidPrecondition] and
// changes neither tree.
func (t *Tree[T]) Join(other *Tree[T]) error {
	if other == t {
		return errors.Wrap(ErrInvalidPrecondition, "join a tree with itself")
	}
	if hi, ok := t.Max(); ok {
		if lo, ok := other.Min(); ok && t.cmp(hi, lo) > 0 {
			t.log.Debug("join rejected", zap.Any("max", hi), zap.Any("otherMin", lo))
			return errors.Wrapf(ErrInvalidPrecondition, "join: %v > %v", hi, lo)
		}
	}
	t.mutate()
	other.mutate()
	r := other.moveTo(t, other.root)
	other.Clear()
	t.setRoot(t.merge(t.root, r))
	return nil
}

// moveTo moves the subtree rooted at x into dst's arena, keeping its
// shape, sizes and priorities, and returns its root there.
// The nodes are released from t; the caller must unlink x.
func (t *Tree[T]) moveTo(dst *Tree[T], x nodeID) nodeID {
	return t.copyTo(dst, x, true)
}

// copyTo copies the subtree rooted at x into dst's arena and returns
// its root there. Threads are not copied.
// If release is set, each source node is released once copied.
func (t *Tree[T]) copyTo(dst *Tree[T], x nodeID, release bool) nodeID {
	if x == none {
		return none
	}
	type move struct {
		src, parent nodeID
		left        bool
	}
	var root nodeID
	stack := []move{{src: x}}
	for len(stack) > 0 {
		mv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[mv.src]
		id := dst.alloc(n.val, n.pri)
		dn := &dst.nodes[id]
		dn.size = n.size
		dn.parent = mv.parent
		switch {
		case mv.parent == none:
			root = id
		case mv.left:
			dst.nodes[mv.parent].left = childSlot(id)
		default:
			dst.nodes[mv.parent].right = childSlot(id)
		}
		if c := n.left.real(); c != none {
			stack = append(stack, move{src: c, parent: id, left: true})
		}
		if c := n.right.real(); c != none {
			stack = append(stack, move{src: c, parent: id})
		}
		if release {
			t.release(mv.src)
		}
	}
	return root
}

// SubTree returns a new tree holding a copy of the subtree rooted at
// the node h refers to, with the same shape, priorities and options.
// t is not modified.
func (t *Tree[T]) SubTree(h Handle[T]) (*Tree[T], error) {
	if !t.valid(h) {
		return nil, errors.WithStack(ErrInvalidHandle)
	}
	t2 := &Tree[T]{nodes: make([]node[T], 1), cmp: t.cmp, rand: t.rand, log: t.log}
	t2.setRoot(t.copyTo(t2, h.id, false))
	return t2, nil
}

// ShapeEqual reports whether t and other have the same shape with equal
// values, compared by t's comparison function, at each position.
// Priorities and threads are ignored.
func (t *Tree[T]) ShapeEqual(other *Tree[T]) bool {
	return t.sameShape(t.root, other, other.root)
}

// sameShape compares the subtree of t at x with the subtree of o at y.
func (t *Tree[T]) sameShape(x nodeID, o *Tree[T], y nodeID) bool {
	if t.size(x) != o.size(y) {
		return false
	}
	type pair struct{ x, y nodeID }
	stack := []pair{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.x == none || p.y == none {
			if p.x != p.y {
				return false
			}
			continue
		}
		a, b := &t.nodes[p.x], &o.nodes[p.y]
		if t.cmp(a.val, b.val) != 0 {
			return false
		}
		stack = append(stack,
			pair{a.left.real(), b.left.real()},
			pair{a.right.real(), b.right.real()})
	}
	return true
}

// FindSubTree returns a handle to a node of t whose subtree has the
// same shape and values as other, as reported by [Tree.ShapeEqual].
// Among several matches it returns the one nearest the root.
// An empty other matches nothing.
func (t *Tree[T]) FindSubTree(other *Tree[T]) g.Option[Handle[T]] {
	if other.root == none {
		return g.None[Handle[T]]()
	}
	v := other.nodes[other.root].val
	// Values equal to v may sit on both sides of an equal node.
	queue := []nodeID{t.root}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		if x == none {
			continue
		}
		n := &t.nodes[x]
		switch c := t.cmp(v, n.val); {
		case c < 0:
			queue = append(queue, n.left.real())
		case c > 0:
			queue = append(queue, n.right.real())
		default:
			if t.sameShape(x, other, other.root) {
				return g.Some(Handle[T]{t: t, id: x, gen: n.gen})
			}
			queue = append(queue, n.left.real(), n.right.real())
		}
	}
	return g.None[Handle[T]]()
}

// releaseSubtree releases every node under x. The caller must unlink x.
func (t *Tree[T]) releaseSubtree(x nodeID) {
	if x == none {
		return
	}
	stack := []nodeID{x}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[x]
		if c := n.left.real(); c != none {
			stack = append(stack, c)
		}
		if c := n.right.real(); c != none {
			stack = append(stack, c)
		}
		t.release(x)
	}
}

// DeleteRange removes every value of t within r and reports how many
// were removed. The direction of r does not matter.
func (t *Tree[T]) DeleteRange(r rng.Range[T]) int {
	t.mutate()
	var below, above nodeID
	middle := t.root
	if lo, inf, incl := r.Low(); !inf {
		below, middle = t.split(middle, lo, incl)
	}
	if hi, inf, incl := r.High(); !inf {
		middle, above = t.split(middle, hi, !incl)
	}
	n := t.size(middle)
	t.releaseSubtree(middle)
	t.setRoot(t.merge(below, above))
	return n
}

// Scan returns an iterator over the values of t within r, in ascending
// order, or descending order if r is backwards.
// t must not be modified during the iteration.
func (t *Tree[T]) Scan(r rng.Range[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		x, step, in := t.lowest(r), t.successor, r.BelowHigh
		if r.IsBackwards() {
			x, step, in = t.highest(r), t.predecessor, r.AboveLow
		}
		version := t.version
		for ; x != none && in(t.nodes[x].val, t.cmp); x = step(x) {
			if !yield(t.nodes[x].val) {
				return
			}
			if t.version != version {
				panic(errModified)
			}
		}
	}
}

// lowest returns the first node satisfying r's low bound.
func (t *Tree[T]) lowest(r rng.Range[T]) nodeID {
	var best nodeID
	for x := t.root; x != none; {
		n := &t.nodes[x]
		if r.AboveLow(n.val, t.cmp) {
			best = x
			x = n.left.real()
		} else {
			x = n.right.real()
		}
	}
	return best
}

// highest returns the last node satisfying r's high bound.
func (t *Tree[T]) highest(r rng.Range[T]) nodeID {
	var best nodeID
	for x := t.root; x != none; {
		n := &t.nodes[x]
		if r.BelowHigh(n.val, t.cmp) {
			best = x
			x = n.right.real()
		} else {
			x = n.left.real()
		}
	}
	return best
}

// successor returns the node after x in ascending order, or none.
func (t *Tree[T]) successor(x nodeID) nodeID {
	if c := t.nodes[x].right.real(); c != none {
		return t.leftmost(c)
	}
	for p := t.nodes[x].parent; p != none; x, p = p, t.nodes[p].parent {
		if t.nodes[p].left.real() == x {
			return p
		}
	}
	return none
}

// predecessor returns the node before x in ascending order, or none.
func (t *Tree[T]) predecessor(x nodeID) nodeID {
	if c := t.nodes[x].left.real(); c != none {
		return t.rightmost(c)
	}
	for p := t.nodes[x].parent; p != none; x, p = p, t.nodes[p].parent {
		if t.nodes[p].right.real() == x {
			return p
		}
	}
	return none
}

// A NodeView is a copy of one node of a tree and its subtrees,
// for display and debugging.
type NodeView[T any] struct {
	Value       T
	Priority    uint64
	Left, Right *NodeView[T]
}

// View returns a copy of the shape of t, or nil if t is empty.
func (t *Tree[T]) View() *NodeView[T] {
	if t.root == none {
		return nil
	}
	type item struct {
		id nodeID
		v  *NodeView[T]
	}
	root := &NodeView[T]{}
	stack := []item{{t.root, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[it.id]
		it.v.Value, it.v.Priority = n.val, n.pri
		if c := n.left.real(); c != none {
			it.v.Left = &NodeView[T]{}
			stack = append(stack, item{c, it.v.Left})
		}
		if c := n.right.real(); c != none {
			it.v.Right = &NodeView[T]{}
			stack = append(stack, item{c, it.v.Right})
		}
	}
	return root
}
