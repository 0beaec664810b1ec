// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package treap implements randomized balanced search trees and
// ordered sets built on them.
// [Tree][T] is the engine: a multiset of values kept in order by a
// comparison function, with split/merge mutation, six traversal orders
// and in-place threading.
// [Set][T] is a value-only façade over a Tree that adds set algebra.
package treap

// The implementation is a treap maintained by split and merge
// rather than by rotations. See:
// https://en.wikipedia.org/wiki/Treap
// https://faculty.washington.edu/aragon/pubs/rst89.pdf
//
// Nodes live in an arena and refer to each other by index.
// Index 0 is a sentinel with size 0; it is never linked into the tree.
// Every algorithm is iterative, so tree height does not bound the
// depth of the call stack.

import (
	"cmp"
	"math/rand/v2"

	g "github.com/anacrolix/generics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type nodeID int32

const none nodeID = 0

type slotKind uint8

const (
	empty slotKind = iota
	child
	thread
)

// A slot is a child position of a node. A thread slot does not own
// its target; it points at a traversal neighbour.
type slot struct {
	kind slotKind
	id   nodeID
}

func childSlot(id nodeID) slot {
	if id == none {
		return slot{}
	}
	return slot{kind: child, id: id}
}

func threadSlot(id nodeID) slot {
	if id == none {
		return slot{}
	}
	return slot{kind: thread, id: id}
}

// real returns the child in s, or none if s is empty or a thread.
func (s slot) real() nodeID {
	if s.kind == child {
		return s.id
	}
	return none
}

type node[T any] struct {
	val    T
	pri    uint64
	size   int // nodes in the real subtree, including this one
	parent nodeID
	left   slot
	right  slot
	gen    uint32 // incremented when the node is released
	live   bool
}

// A Tree is a treap holding values of type T ordered by a comparison function.
// Equal values may be present more than once.
// A Tree must be created with [NewTree] or [NewTreeFunc].
//
// A Tree is not safe for concurrent use, including concurrent reads
// interleaved with writes.
type Tree[T any] struct {
	nodes   []node[T]
	free    []nodeID
	root    nodeID
	cmp     func(T, T) int
	rand    *rand.Rand
	log     *zap.Logger
	threads g.Option[Order]
	version uint64
	path    []nodeID
}

// A Handle refers to one node of a Tree.
// It stays valid until that node is erased or the tree is cleared.
type Handle[T any] struct {
	t   *Tree[T]
	id  nodeID
	gen uint32
}

// NewTree returns an empty Tree ordered by cmp.Compare.
func NewTree[T cmp.Ordered](opts ...Option) *Tree[T] {
	return NewTreeFunc(cmp.Compare[T], opts...)
}

// NewTreeFunc returns an empty Tree ordered by cmp.
func NewTreeFunc[T any](cmp func(T, T) int, opts ...Option) *Tree[T] {
	return newTree(cmp, newConfig(opts))
}

func newTree[T any](cmp func(T, T) int, c config) *Tree[T] {
	return &Tree[T]{
		nodes: make([]node[T], 1),
		cmp:   cmp,
		rand:  c.rand,
		log:   c.log,
	}
}

func (t *Tree[T]) priority() uint64 {
	if t.rand != nil {
		return t.rand.Uint64()
	}
	return rand.Uint64()
}

func (t *Tree[T]) alloc(v T, pri uint64) nodeID {
	var id nodeID
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node[T]{})
		id = nodeID(len(t.nodes) - 1)
	}
	x := &t.nodes[id]
	*x = node[T]{val: v, pri: pri, size: 1, gen: x.gen, live: true}
	return id
}

func (t *Tree[T]) release(id nodeID) {
	x := &t.nodes[id]
	*x = node[T]{gen: x.gen + 1}
	t.free = append(t.free, id)
}

func (t *Tree[T]) size(id nodeID) int {
	return t.nodes[id].size
}

// update recomputes x's size from its real children.
func (t *Tree[T]) update(x nodeID) {
	n := &t.nodes[x]
	n.size = 1 + t.size(n.left.real()) + t.size(n.right.real())
}

func (t *Tree[T]) setRoot(x nodeID) {
	t.root = x
	if x != none {
		t.nodes[x].parent = none
	}
}

// mutate must be called before any structural change.
// Threads do not survive mutation.
func (t *Tree[T]) mutate() {
	t.version++
	if o := t.threads; o.Ok {
		t.unthread()
		t.log.Debug("threads cleared by mutation", zap.Stringer("order", o.Value))
	}
}

// split partitions the subtree rooted at x.
// If strict is false, l holds the values ≤ key and r the values > key;
// if strict is true, l holds the values < key and r the values ≥ key.
// Relative order and priorities are preserved on both sides.
func (t *Tree[T]) split(x nodeID, key T, strict bool) (l, r nodeID) {
	// lTail and rTail are the last nodes attached to each side;
	// the next node for a side hangs from the tail's inner slot.
	var lTail, rTail nodeID
	t.path = t.path[:0]
	for x != none {
		n := &t.nodes[x]
		t.path = append(t.path, x)
		c := t.cmp(n.val, key)
		if c < 0 || c == 0 && !strict {
			if lTail == none {
				l = x
			} else {
				t.nodes[lTail].right = childSlot(x)
			}
			n.parent = lTail
			lTail = x
			x = n.right.real()
		} else {
			if rTail == none {
				r = x
			} else {
				t.nodes[rTail].left = childSlot(x)
			}
			n.parent = rTail
			rTail = x
			x = n.left.real()
		}
	}
	if lTail != none {
		t.nodes[lTail].right = slot{}
	}
	if rTail != none {
		t.nodes[rTail].left = slot{}
	}
	for i := len(t.path) - 1; i >= 0; i-- {
		t.update(t.path[i])
	}
	return l, r
}

// merge joins the subtrees l and r and returns the root of the result.
// Every value in l must be ≤ every value in r; this is not checked.
// The root with the higher priority wins; ties go to r.
func (t *Tree[T]) merge(l, r nodeID) nodeID {
	var root, tail nodeID
	tailLeft := false
	attach := func(x nodeID) {
		switch {
		case tail == none:
			root = x
		case tailLeft:
			t.nodes[tail].left = childSlot(x)
		default:
			t.nodes[tail].right = childSlot(x)
		}
		if x != none {
			t.nodes[x].parent = tail
		}
	}
	t.path = t.path[:0]
	for l != none && r != none {
		if t.nodes[l].pri > t.nodes[r].pri {
			attach(l)
			t.path = append(t.path, l)
			tail, tailLeft = l, false
			l = t.nodes[l].right.real()
		} else {
			attach(r)
			t.path = append(t.path, r)
			tail, tailLeft = r, true
			r = t.nodes[r].left.real()
		}
	}
	if l != none {
		attach(l)
	} else {
		attach(r)
	}
	for i := len(t.path) - 1; i >= 0; i-- {
		t.update(t.path[i])
	}
	return root
}

// replaceChild makes x take old's place under parent p.
func (t *Tree[T]) replaceChild(p, old, x nodeID) {
	if p == none {
		t.setRoot(x)
		return
	}
	pn := &t.nodes[p]
	switch {
	case pn.left.real() == old:
		pn.left = childSlot(x)
	case pn.right.real() == old:
		pn.right = childSlot(x)
	default:
		panic("corrupt treap")
	}
	if x != none {
		t.nodes[x].parent = p
	}
}

// Insert adds v to t with a freshly drawn priority and returns its handle.
// If values equal to v are already present, v is placed after all of them.
func (t *Tree[T]) Insert(v T) Handle[T] {
	t.mutate()
	x := t.alloc(v, t.priority())
	l, r := t.split(t.root, v, false)
	t.setRoot(t.merge(l, t.merge(x, r)))
	return Handle[T]{t: t, id: x, gen: t.nodes[x].gen}
}

// Find returns a handle to a node holding a value equal to v.
// If there are several, it is the first one met on the search path
// from the root, which is not necessarily the first in sorted order.
func (t *Tree[T]) Find(v T) g.Option[Handle[T]] {
	for x := t.root; x != none; {
		n := &t.nodes[x]
		c := t.cmp(v, n.val)
		if c == 0 {
			return g.Some(Handle[T]{t: t, id: x, gen: n.gen})
		}
		if c < 0 {
			x = n.left.real()
		} else {
			x = n.right.real()
		}
	}
	return g.None[Handle[T]]()
}

// Contains reports whether a value equal to v is present.
func (t *Tree[T]) Contains(v T) bool {
	return t.Find(v).Ok
}

func (t *Tree[T]) valid(h Handle[T]) bool {
	if h.t != t || h.id <= none || int(h.id) >= len(t.nodes) {
		return false
	}
	n := &t.nodes[h.id]
	return n.live && n.gen == h.gen
}

// Value returns the value of the node h refers to.
func (t *Tree[T]) Value(h Handle[T]) (T, error) {
	if !t.valid(h) {
		var zero T
		return zero, errors.WithStack(ErrInvalidHandle)
	}
	return t.nodes[h.id].val, nil
}

// Replace stores v in the node h refers to.
// v must compare equal to the value it replaces.
func (t *Tree[T]) Replace(h Handle[T], v T) error {
	if !t.valid(h) {
		return errors.WithStack(ErrInvalidHandle)
	}
	n := &t.nodes[h.id]
	if t.cmp(n.val, v) != 0 {
		return errors.Wrapf(ErrInvalidPrecondition, "replace %v with %v", n.val, v)
	}
	n.val = v
	return nil
}

// Erase removes the node h refers to.
// The node's place is taken by the merge of its children, so
// only the links along one path are touched.
func (t *Tree[T]) Erase(h Handle[T]) error {
	if !t.valid(h) {
		return errors.WithStack(ErrInvalidHandle)
	}
	t.mutate()
	x := h.id
	n := &t.nodes[x]
	p := n.parent
	m := t.merge(n.left.real(), n.right.real())
	t.replaceChild(p, x, m)
	for a := p; a != none; a = t.nodes[a].parent {
		t.nodes[a].size--
	}
	t.release(x)
	return nil
}

// EraseValue removes one value equal to v.
func (t *Tree[T]) EraseValue(v T) error {
	h := t.Find(v)
	if !h.Ok {
		return errors.Wrapf(ErrNotFound, "erase %v", v)
	}
	return t.Erase(h.Value)
}

// Len returns the number of values in t.
func (t *Tree[T]) Len() int {
	return t.size(t.root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[T]) Height() int {
	if t.root == none {
		return 0
	}
	type frame struct {
		id    nodeID
		depth int
	}
	h := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		h = max(h, f.depth)
		n := &t.nodes[f.id]
		if c := n.left.real(); c != none {
			stack = append(stack, frame{c, f.depth + 1})
		}
		if c := n.right.real(); c != none {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return h
}

// leftmost returns the node in x's subtree with the smallest value.
// x must not be none.
func (t *Tree[T]) leftmost(x nodeID) nodeID {
	for c := t.nodes[x].left.real(); c != none; c = t.nodes[x].left.real() {
		x = c
	}
	return x
}

// rightmost returns the node in x's subtree with the largest value.
// x must not be none.
func (t *Tree[T]) rightmost(x nodeID) nodeID {
	for c := t.nodes[x].right.real(); c != none; c = t.nodes[x].right.real() {
		x = c
	}
	return x
}

// Min returns the smallest value in t and true.
// If t is empty, the second return value is false.
func (t *Tree[T]) Min() (T, bool) {
	return t.valueAt(t.extreme(t.leftmost))
}

// Max returns the largest value in t and true.
// If t is empty, the second return value is false.
func (t *Tree[T]) Max() (T, bool) {
	return t.valueAt(t.extreme(t.rightmost))
}

func (t *Tree[T]) extreme(f func(nodeID) nodeID) g.Option[nodeID] {
	if t.root == none {
		return g.None[nodeID]()
	}
	return g.Some(f(t.root))
}

func (t *Tree[T]) valueAt(x g.Option[nodeID]) (T, bool) {
	if !x.Ok {
		var zero T
		return zero, false
	}
	return t.nodes[x.Value].val, true
}

// Rank returns the number of values in t that are less than v.
func (t *Tree[T]) Rank(v T) int {
	r := 0
	for x := t.root; x != none; {
		n := &t.nodes[x]
		if t.cmp(v, n.val) <= 0 {
			x = n.left.real()
		} else {
			r += t.size(n.left.real()) + 1
			x = n.right.real()
		}
	}
	return r
}

// Clear removes all values from t.
// Handles obtained before Clear become invalid.
func (t *Tree[T]) Clear() {
	t.version++
	for id := 1; id < len(t.nodes); id++ {
		if t.nodes[id].live {
			t.release(nodeID(id))
		}
	}
	t.root = none
	t.threads = g.None[Order]()
}

// Clone returns a copy of t with the same shape, options and threading.
// Handles into t do not refer to the copy.
func (t *Tree[T]) Clone() *Tree[T] {
	t2 := *t
	t2.nodes = append([]node[T](nil), t.nodes...)
	t2.free = append([]nodeID(nil), t.free...)
	t2.path = nil
	t2.version = 0
	return &t2
}
