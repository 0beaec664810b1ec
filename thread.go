// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"iter"

	g "github.com/anacrolix/generics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Threading stores, in each empty child slot, a link to a traversal
// neighbour. For an order that visits the left subtree first, an empty
// left slot links to the predecessor and an empty right slot to the
// successor; mirrored orders swap the two. The threads let a traversal
// step from node to node without a stack.

// sides returns x's slots in the sequence order visits its subtrees:
// a is visited first, b second.
func (t *Tree[T]) sides(x nodeID, mirrored bool) (a, b *slot) {
	n := &t.nodes[x]
	if mirrored {
		return &n.right, &n.left
	}
	return &n.left, &n.right
}

// Thread threads t for order o, replacing any previous threading.
// The threads stay valid until t is next modified.
func (t *Tree[T]) Thread(o Order) {
	o.mustBeValid()
	t.Unthread()
	m := o.mirrored()
	prev := none
	t.walk(o, func(x nodeID) bool {
		if prev != none {
			if a, _ := t.sides(x, m); a.kind == empty {
				*a = threadSlot(prev)
			}
			if _, b := t.sides(prev, m); b.kind == empty {
				*b = threadSlot(x)
			}
		}
		prev = x
		return true
	})
	t.threads = g.Some(o)
	t.log.Debug("threaded", zap.Stringer("order", o), zap.Int("len", t.Len()))
}

// Unthread removes all threads from t.
func (t *Tree[T]) Unthread() {
	t.version++
	t.unthread()
}

func (t *Tree[T]) unthread() {
	for i := 1; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		if n.left.kind == thread {
			n.left = slot{}
		}
		if n.right.kind == thread {
			n.right = slot{}
		}
	}
	t.threads = g.None[Order]()
}

// ThreadOrder reports the order t is currently threaded for.
func (t *Tree[T]) ThreadOrder() g.Option[Order] {
	return t.threads
}

// Threaded returns an iterator over the values of t in the order t is
// threaded for. The iterator keeps no stack; it follows threads,
// child links and, for post-orders, parent links.
// If t has been modified since the iterator was created, the iterator
// falls back to a stack traversal in the same order.
func (t *Tree[T]) Threaded() (iter.Seq[T], error) {
	if !t.threads.Ok {
		return nil, errors.Wrap(ErrInvalidPrecondition, "tree is not threaded")
	}
	o := t.threads.Value
	return func(yield func(T) bool) {
		if th := t.threads; !th.Ok || th.Value != o {
			t.All(o)(yield)
			return
		}
		version := t.version
		for x := t.first(o); x != none; x = t.next(o, x) {
			if !yield(t.nodes[x].val) {
				return
			}
			if t.version != version {
				panic(errModified)
			}
		}
	}, nil
}

// Walk returns an iterator over the values of t in order o.
// If t is threaded for o, Walk follows the threads; otherwise it is All.
func (t *Tree[T]) Walk(o Order) iter.Seq[T] {
	if th := t.threads; th.Ok && th.Value == o {
		seq, _ := t.Threaded()
		return seq
	}
	return t.All(o)
}

// first returns the first node of t in order o.
func (t *Tree[T]) first(o Order) nodeID {
	x := t.root
	if x == none {
		return none
	}
	m := o.mirrored()
	switch o.rootPos() {
	case 0:
		return x
	case 1:
		for {
			a, _ := t.sides(x, m)
			c := a.real()
			if c == none {
				return x
			}
			x = c
		}
	default:
		return t.firstPost(x, m)
	}
}

// firstPost returns the first node of x's subtree in a post-order.
func (t *Tree[T]) firstPost(x nodeID, mirrored bool) nodeID {
	for {
		a, b := t.sides(x, mirrored)
		if c := a.real(); c != none {
			x = c
		} else if c := b.real(); c != none {
			x = c
		} else {
			return x
		}
	}
}

// next returns the node after x in order o, or none.
func (t *Tree[T]) next(o Order, x nodeID) nodeID {
	m := o.mirrored()
	a, b := t.sides(x, m)
	switch o.rootPos() {
	case 0:
		if c := a.real(); c != none {
			return c
		}
		// b is a child, a thread, or empty at the end.
		return b.id
	case 1:
		switch b.kind {
		case thread:
			return b.id
		case child:
			x = b.id
			for {
				a, _ := t.sides(x, m)
				c := a.real()
				if c == none {
					return x
				}
				x = c
			}
		}
		return none
	default:
		if b.kind == thread {
			return b.id
		}
		p := t.nodes[x].parent
		if p == none {
			return none
		}
		pa, pb := t.sides(p, m)
		if pa.real() == x {
			if c := pb.real(); c != none {
				return t.firstPost(c, m)
			}
		}
		return p
	}
}
