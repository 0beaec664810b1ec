package rng

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	min = -1
	max = 11
)

func Test(t *testing.T) {
	for _, test := range []struct {
		r    Range[int]
		want []int
	}{
		{Range[int]{}, nil},
		{From(1).To(3), []int{1, 2, 3}},
		{From(3).Below(4), []int{3}},
		{Above(2).To(5), []int{3, 4, 5}},
		{Above(8).Below(10), []int{9}},
		{From(9).Below(8), nil},
	} {
		assert.Equal(t, test.want, slice(test.r), "%s", test.r)
		rb := test.r.Backwards()
		t.Log(rb)
		want := slices.Clone(test.want)
		slices.Reverse(want)
		assert.Equal(t, want, slice(rb), "%s", rb)
	}
}

func slice(r Range[int]) []int {
	lo, linf, lincl := r.Low()
	hi, hinf, hincl := r.High()
	if linf {
		lo = min
	} else if !lincl {
		lo++
	}
	if hinf {
		hi = max
	} else if !hincl {
		hi--
	}
	var ints []int
	if r.IsBackwards() {
		for i := hi; i >= lo; i-- {
			ints = append(ints, i)
		}

	} else {
		for i := lo; i <= hi; i++ {
			ints = append(ints, i)
		}
	}
	return ints
}

func TestContains(t *testing.T) {
	for _, r := range []Range[int]{
		{},
		All[int](),
		From(1).To(3),
		From(3).Below(4),
		Above(2).To(5),
		Above(8).Below(10),
		From(9).Below(8),
		To(4),
		Below(4),
		Above(6).Backwards(),
	} {
		want := slice(r)
		if r.IsBackwards() {
			slices.Reverse(want)
		}
		var got []int
		for i := min; i <= max; i++ {
			if r.Contains(i, cmp.Compare[int]) {
				got = append(got, i)
			}
		}
		assert.Equal(t, want, got, "%s", r)
	}
}
