package sorting

import (
	"math/rand"
	"sort"
)

const (
	MinValue = 10
	MaxValue = 100
)

// Array is the sequence being sorted. Only procedures write to it, and only
// through Swap and Set.
type Array struct {
	Values []int
}

func NewArray(values []int) *Array {
	v := make([]int, len(values))
	copy(v, values)
	return &Array{Values: v}
}

// Generate fills a new array of the given size with values in [MinValue, MaxValue].
func Generate(rng *rand.Rand, size int) *Array {
	if size < 0 {
		size = 0
	}
	values := make([]int, size)
	for i := range values {
		values[i] = rng.Intn(MaxValue-MinValue+1) + MinValue
	}
	return &Array{Values: values}
}

func (a *Array) Len() int { return len(a.Values) }

func (a *Array) Swap(i, j int) { a.Values[i], a.Values[j] = a.Values[j], a.Values[i] }

func (a *Array) Set(i, v int) { a.Values[i] = v }

func (a *Array) Snapshot() []int {
	c := make([]int, len(a.Values))
	copy(c, a.Values)
	return c
}

func (a *Array) Clone() *Array {
	return &Array{Values: a.Snapshot()}
}

func IsSorted(values []int) bool {
	return sort.IntsAreSorted(values)
}

// IsPermutation reports whether a and b hold the same multiset of values.
func IsPermutation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
