// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// An Option configures a [Tree] or a [Set].
type Option func(*config)

type config struct {
	rand     *rand.Rand
	log      *zap.Logger
	distinct bool
}

func newConfig(opts []Option) config {
	c := config{log: zap.NewNop()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithSeed draws priorities from a PCG source seeded with seed,
// making tree shapes reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand draws priorities from r.
// Without WithSeed or WithRand, priorities come from the global source in math/rand/v2.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rand = r }
}

// WithLogger sets the logger used for debug events.
// The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// Distinct makes a [Set] hold at most one copy of each value.
// It has no effect on a [Tree], which always keeps duplicates.
func Distinct() Option {
	return func(c *config) { c.distinct = true }
}
