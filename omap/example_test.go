// Copyright 2024 The Go Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap_test

import (
	"fmt"
	"strings"

	"github.com/jba/treap/omap"
	"github.com/jba/treap/rng"
)

func ExampleMap_All() {
	var m omap.Map[int, string]
	m.Set(1, "one")
	m.Set(2, "two")
	m.Set(3, "three")

	for k, v := range m.All() {
		fmt.Println(k, v)
	}

	// Output:
	// 1 one
	// 2 two
	// 3 three
}

func ExampleMap_Scan() {
	var m omap.Map[int, string]
	m.Set(1, "one")
	m.Set(2, "two")
	m.Set(3, "three")

	for k, v := range m.Scan(rng.From(2)) {
		fmt.Println(k, v)
	}
	for k, v := range m.Scan(rng.Above(1).Below(3)) {
		fmt.Println(k, v)
	}

	// Output:
	// 2 two
	// 3 three
	// 2 two
}

func ExampleMapFunc() {
	m := omap.NewMapFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	m.Set("b", 1)
	m.Set("A", 2)
	m.Set("B", 3)

	for k, v := range m.All() {
		fmt.Println(k, v)
	}

	// Output:
	// A 2
	// B 3
}
