// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// An Order is one of the six ways to arrange a node, its left subtree
// and its right subtree in a traversal.
type Order uint8

const (
	RootLeftRight Order = iota // pre-order
	RootRightLeft              // mirrored pre-order
	LeftRightRoot              // post-order
	LeftRootRight              // ascending
	RightLeftRoot              // mirrored post-order
	RightRootLeft              // descending
)

// Conventional names.
const (
	PreOrder   = RootLeftRight
	InOrder    = LeftRootRight
	PostOrder  = LeftRightRoot
	Ascending  = LeftRootRight
	Descending = RightRootLeft
)

// Orders lists every Order.
var Orders = [...]Order{RootLeftRight, RootRightLeft, LeftRightRoot, LeftRootRight, RightLeftRoot, RightRootLeft}

type part uint8

const (
	self part = iota
	leftPart
	rightPart
)

var orderParts = [...][3]part{
	RootLeftRight: {self, leftPart, rightPart},
	RootRightLeft: {self, rightPart, leftPart},
	LeftRightRoot: {leftPart, rightPart, self},
	LeftRootRight: {leftPart, self, rightPart},
	RightLeftRoot: {rightPart, leftPart, self},
	RightRootLeft: {rightPart, self, leftPart},
}

var orderNames = [...]string{
	RootLeftRight: "root-left-right",
	RootRightLeft: "root-right-left",
	LeftRightRoot: "left-right-root",
	LeftRootRight: "left-root-right",
	RightLeftRoot: "right-left-root",
	RightRootLeft: "right-root-left",
}

func (o Order) valid() bool { return int(o) < len(orderParts) }

func (o Order) mustBeValid() {
	if !o.valid() {
		panic(fmt.Sprintf("treap: invalid order %d", o))
	}
}

func (o Order) String() string {
	if !o.valid() {
		return fmt.Sprintf("Order(%d)", o)
	}
	return orderNames[o]
}

// mirrored reports whether o visits the right subtree before the left.
func (o Order) mirrored() bool {
	for _, p := range orderParts[o] {
		switch p {
		case leftPart:
			return false
		case rightPart:
			return true
		}
	}
	panic("unreachable")
}

// rootPos returns where the node itself falls among its three parts.
func (o Order) rootPos() int {
	for i, p := range orderParts[o] {
		if p == self {
			return i
		}
	}
	panic("unreachable")
}

// ParseOrder parses the name of an order, as returned by [Order.String],
// or one of "preorder", "inorder", "postorder", "ascending", "descending".
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, name := range orderNames {
		if s == name {
			return Order(o), nil
		}
	}
	switch s {
	case "pre", "preorder":
		return PreOrder, nil
	case "in", "inorder", "asc", "ascending":
		return Ascending, nil
	case "post", "postorder":
		return PostOrder, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, errors.Errorf("treap: unknown order %q", s)
}

// walk calls visit for each node of t in order o, using an explicit stack.
// It stops early if visit returns false.
// It panics if t is modified while visit runs.
func (t *Tree[T]) walk(o Order, visit func(nodeID) bool) {
	o.mustBeValid()
	if t.root == none {
		return
	}
	parts := orderParts[o]
	type frame struct {
		id    nodeID
		stage uint8
	}
	stack := []frame{{id: t.root}}
	version := t.version
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.stage == 3 {
			stack = stack[:len(stack)-1]
			continue
		}
		p := parts[f.stage]
		f.stage++
		x := f.id
		var c nodeID
		switch p {
		case self:
			if !visit(x) {
				return
			}
			if t.version != version {
				panic(errModified)
			}
			continue
		case leftPart:
			c = t.nodes[x].left.real()
		case rightPart:
			c = t.nodes[x].right.real()
		}
		if c != none {
			stack = append(stack, frame{id: c})
		}
	}
}

// All returns an iterator over the values of t in order o.
// t must not be modified during the iteration.
func (t *Tree[T]) All(o Order) iter.Seq[T] {
	o.mustBeValid()
	return func(yield func(T) bool) {
		t.walk(o, func(x nodeID) bool { return yield(t.nodes[x].val) })
	}
}

// At returns the value at position rank of the traversal of t in order o.
// It takes time proportional to the height of t.
func (t *Tree[T]) At(rank int, o Order) (T, error) {
	x, err := t.nodeAt(rank, o)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.nodes[x].val, nil
}

func (t *Tree[T]) nodeAt(rank int, o Order) (nodeID, error) {
	o.mustBeValid()
	if n := t.Len(); rank < 0 || rank >= n {
		return none, errors.Wrapf(ErrOutOfRange, "rank %d of %d", rank, n)
	}
	parts := orderParts[o]
	x := t.root
descend:
	for {
		n := &t.nodes[x]
		for _, p := range parts {
			var c nodeID
			switch p {
			case self:
				if rank == 0 {
					return x, nil
				}
				rank--
				continue
			case leftPart:
				c = n.left.real()
			case rightPart:
				c = n.right.real()
			}
			s := t.size(c)
			if rank < s {
				x = c
				continue descend
			}
			rank -= s
		}
		panic("corrupt treap: bad subtree size")
	}
}
