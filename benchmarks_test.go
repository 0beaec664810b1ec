// Copyright 2024 The Go Authors. All rights reserved.

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// These benchmarks are based on the ones in github.com/google/btree.

package treap

import (
	"math/rand/v2"
	"sort"
	"testing"
)

const benchmarkTreeSize = 10_000

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		t := NewTree[int]()
		for _, item := range insertP {
			t.Insert(item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func newBenchTree(els []int) *Tree[int] {
	t := NewTree[int]()
	for _, item := range els {
		t.Insert(item)
	}
	return t
}

func BenchmarkEraseInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	t := newBenchTree(insertP)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		t.EraseValue(insertP[i%benchmarkTreeSize])
		t.Insert(insertP[i%benchmarkTreeSize])
	}
}

func BenchmarkErase(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	removeP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		b.StopTimer()
		t := newBenchTree(insertP)
		b.StartTimer()
		for _, item := range removeP {
			t.EraseValue(item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkFind(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	t := newBenchTree(insertP)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		t.Find(i % benchmarkTreeSize)
	}
}

func BenchmarkAt(b *testing.B) {
	t := newBenchTree(rand.Perm(benchmarkTreeSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := t.At(i%benchmarkTreeSize, PreOrder); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAscend(b *testing.B) {
	arr := rand.Perm(benchmarkTreeSize)
	t := newBenchTree(arr)
	sort.Ints(arr)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := 0
		for k := range t.All(Ascending) {
			if k != arr[j] {
				b.Fatalf("mismatch: expected: %v, got %v", arr[j], k)
			}
			j++
		}
	}
}

func BenchmarkThreaded(b *testing.B) {
	for _, o := range []Order{PreOrder, InOrder, PostOrder} {
		b.Run(o.String(), func(b *testing.B) {
			t := newBenchTree(rand.Perm(benchmarkTreeSize))
			t.Thread(o)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				values, _ := t.Threaded()
				for range values {
				}
			}
		})
	}
}

func BenchmarkIntersect(b *testing.B) {
	x := New[int](Distinct())
	y := New[int](Distinct())
	for _, v := range rand.Perm(benchmarkTreeSize) {
		x.Insert(v)
		y.Insert(v * 2)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := x.Clone()
		s.Intersect(y)
	}
}
