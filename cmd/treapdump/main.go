// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Treapdump builds a set from its arguments and prints it.
//
//	treapdump [--order ORDER] [--seed N] [--count N] [--distinct] [--thread] [--tree] [--debug] VALUES...
//
// It prints the values in the chosen order, the size and height of the
// tree and, with --tree, the shape of the tree with each node's priority.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/jba/treap"
	"github.com/pkg/errors"
	"github.com/xlab/treeprint"
	"go.uber.org/zap"
)

type args struct {
	Order    string `arg:"-o,--order" default:"ascending" help:"traversal order, such as preorder, postorder, descending or root-right-left"`
	Seed     uint64 `arg:"--seed" help:"seed for node priorities; 0 draws them at random"`
	Count    int    `arg:"-n,--count" help:"also insert 0, 1, ..., count-1"`
	Distinct bool   `help:"drop duplicate values"`
	Thread   bool   `help:"thread the tree and walk it without a stack"`
	Tree     bool   `help:"print the shape of the tree"`
	Debug    bool   `help:"log at debug level"`
	Values   []int  `arg:"positional"`
}

func (args) Description() string {
	return "treapdump builds an ordered set from VALUES and prints it."
}

func main() {
	if err := mainErr(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func mainErr() error {
	a, p, err := parse(os.Args[1:])
	switch {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(os.Stdout)
		return nil
	case p == nil:
		return errors.Wrap(err, "building parser")
	case err != nil:
		p.Fail(err.Error())
	}

	newLogger := zap.NewProduction
	if a.Debug {
		newLogger = zap.NewDevelopment
	}
	rawlog, err := newLogger()
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer rawlog.Sync()

	return run(a, os.Stdout, rawlog)
}

// parse parses command-line arguments, without the program name.
// The parser is returned whenever it could be built, so the caller can
// print help or usage.
func parse(argv []string) (args, *arg.Parser, error) {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "treapdump"}, &a)
	if err != nil {
		return a, nil, err
	}
	return a, p, p.Parse(argv)
}

func run(a args, w io.Writer, lg *zap.Logger) error {
	o, err := treap.ParseOrder(a.Order)
	if err != nil {
		return errors.Wrap(err, "--order")
	}
	if a.Count < 0 {
		return errors.Errorf("--count must not be negative, got %d", a.Count)
	}
	opts := []treap.Option{treap.WithLogger(lg)}
	if a.Seed != 0 {
		opts = append(opts, treap.WithSeed(a.Seed))
	}
	if a.Distinct {
		opts = append(opts, treap.Distinct())
	}

	s := treap.New[int](opts...)
	dropped := 0
	for _, v := range a.Values {
		if !s.Insert(v) {
			dropped++
		}
	}
	for v := range a.Count {
		if !s.Insert(v) {
			dropped++
		}
	}
	lg.Info("built set",
		zap.Int("size", s.Len()),
		zap.Int("dropped", dropped),
		zap.Bool("distinct", a.Distinct))

	how := "stack"
	if a.Thread {
		s.Thread(o)
		how = "threaded"
	}
	var b strings.Builder
	for v := range s.Walk(o) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	fmt.Fprintf(w, "%s (%s): %s\n", o, how, b.String())
	fmt.Fprintf(w, "size %d, height %d\n", s.Len(), s.Height())
	if a.Tree {
		fmt.Fprint(w, render(s.View()))
	}
	return nil
}

// render draws the tree rooted at v, left child before right.
func render(v *treap.NodeView[int]) string {
	if v == nil {
		return "(empty)\n"
	}
	type item struct {
		v *treap.NodeView[int]
		t treeprint.Tree
	}
	root := treeprint.NewWithRoot(label("", v))
	stack := []item{{v, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if l := it.v.Left; l != nil {
			stack = append(stack, item{l, it.t.AddBranch(label("L ", l))})
		}
		if r := it.v.Right; r != nil {
			stack = append(stack, item{r, it.t.AddBranch(label("R ", r))})
		}
	}
	return root.String()
}

func label(side string, v *treap.NodeView[int]) string {
	return fmt.Sprintf("%s%d [%016x]", side, v.Value, v.Priority)
}
