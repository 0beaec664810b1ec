// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import "github.com/pkg/errors"

// Check verifies the structural invariants of t: values in order,
// priorities forming a max-heap, subtree sizes, parent links, and,
// if t is threaded, that every thread links to the right neighbour.
// It is meant for tests and debugging.
func (t *Tree[T]) Check() error {
	if t.root != none && t.nodes[t.root].parent != none {
		return errors.New("root has a parent")
	}
	var (
		prev  nodeID
		count int
		err   error
	)
	t.walk(InOrder, func(x nodeID) bool {
		count++
		n := &t.nodes[x]
		if !n.live {
			err = errors.Errorf("node %d is linked but released", x)
			return false
		}
		if prev != none && t.cmp(t.nodes[prev].val, n.val) > 0 {
			err = errors.Errorf("values out of order: %v before %v", t.nodes[prev].val, n.val)
			return false
		}
		prev = x
		if want := 1 + t.size(n.left.real()) + t.size(n.right.real()); n.size != want {
			err = errors.Errorf("node %v has size %d, want %d", n.val, n.size, want)
			return false
		}
		for _, c := range [...]nodeID{n.left.real(), n.right.real()} {
			if c == none {
				continue
			}
			if t.nodes[c].parent != x {
				err = errors.Errorf("child %v of %v has parent %d", t.nodes[c].val, n.val, t.nodes[c].parent)
				return false
			}
			if t.nodes[c].pri > n.pri {
				err = errors.Errorf("child %v outranks parent %v", t.nodes[c].val, n.val)
				return false
			}
		}
		if !t.threads.Ok && (n.left.kind == thread || n.right.kind == thread) {
			err = errors.Errorf("node %v has a thread in an unthreaded tree", n.val)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if live := len(t.nodes) - 1 - len(t.free); count != t.Len() || count != live {
		return errors.Errorf("reachable %d, root size %d, allocated %d", count, t.Len(), live)
	}
	if t.threads.Ok {
		return t.checkThreads(t.threads.Value)
	}
	return nil
}

func (t *Tree[T]) checkThreads(o Order) error {
	m := o.mirrored()
	var (
		prev nodeID
		err  error
	)
	check := func(s *slot, want nodeID, what string, x nodeID) bool {
		switch s.kind {
		case thread:
			if s.id != want {
				err = errors.Errorf("%s thread of %v links to %d, want %d", what, t.nodes[x].val, s.id, want)
				return false
			}
		case empty:
			if want != none {
				err = errors.Errorf("%s slot of %v is empty, want thread to %d", what, t.nodes[x].val, want)
				return false
			}
		}
		return true
	}
	t.walk(o, func(x nodeID) bool {
		a, _ := t.sides(x, m)
		if !check(a, prev, "predecessor", x) {
			return false
		}
		if prev != none {
			_, b := t.sides(prev, m)
			if !check(b, x, "successor", prev) {
				return false
			}
		}
		prev = x
		return true
	})
	if err != nil {
		return err
	}
	if prev != none {
		_, b := t.sides(prev, m)
		if b.kind == thread {
			return errors.Errorf("last node %v has a successor thread", t.nodes[prev].val)
		}
	}
	return nil
}
