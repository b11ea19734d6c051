// Package lambda exercises function values over slices and maps.
//
// Go infers the type of a function literal from the variable or parameter
// it is assigned to, never from its body, so the literals here state their
// parameter types in full and the typed BiFunc variables pin the signature.
package lambda

import (
	"context"
	"fmt"

	"github.com/destel/rill"
	"github.com/samber/lo"
)

// Demo inputs.
var (
	// Words is the input of the lengths example.
	Words = []string{"a", "bb", "ccc", "dd"}

	// Scores is the input of the map iteration example.
	Scores = map[string]int{"a": 1, "b": 2, "c": 3}
)

// BiFunc is a two-argument function value.
type BiFunc[T, U, R any] func(T, U) R

// Apply calls f with t and u.
func (f BiFunc[T, U, R]) Apply(t T, u U) R {
	return f(t, u)
}

// MultiplyAndAdd returns x*y + 10.
var MultiplyAndAdd BiFunc[int, int, int] = func(x, y int) int {
	product := x * y
	return product + 10
}

// Concat joins s1 and s2. Go strings have no nil state, so there is no
// null check to make.
var Concat BiFunc[string, string, string] = func(s1, s2 string) string {
	return s1 + s2
}

// Lengths maps every word to its length, keeping input order. Up to
// concurrency workers compute lengths in parallel; values below 1 are
// treated as 1. Returns ctx.Err() if ctx is cancelled midway.
func Lengths(ctx context.Context, words []string, concurrency int) ([]int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	in := rill.FromSlice(words, nil)
	lengths := rill.OrderedMap(in, concurrency, func(s string) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return len([]rune(s)), nil
	})

	out, err := rill.ToSlice(lengths)
	if err != nil {
		return nil, fmt.Errorf("failed to compute lengths: %w", err)
	}
	return out, nil
}

// Pair is a single key/value entry of a map.
type Pair = lo.Entry[string, int]

// Pairs returns the entries of m. Order is unspecified, as it is for
// ranging over m directly.
func Pairs(m map[string]int) []Pair {
	return lo.Entries(m)
}

// FormatPair renders p as "key: value".
func FormatPair(p Pair) string {
	return fmt.Sprintf("%s: %d", p.Key, p.Value)
}
