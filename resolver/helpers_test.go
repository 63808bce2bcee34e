package resolver_test

import (
	"math/rand"

	"github.com/katalvlaran/precedence/constraint"
)

// pageRules is the page-ordering rule set without the 47|13 pair, so
// 47 and 13 are related only transitively (47 → 29 → 13).
func pageRules() []constraint.Pair[int] {
	return []constraint.Pair[int]{
		{Before: 47, After: 53}, {Before: 97, After: 13}, {Before: 97, After: 61}, {Before: 97, After: 47}, {Before: 75, After: 29},
		{Before: 61, After: 13}, {Before: 75, After: 53}, {Before: 29, After: 13}, {Before: 97, After: 29}, {Before: 53, After: 29},
		{Before: 61, After: 53}, {Before: 97, After: 53}, {Before: 61, After: 29}, {Before: 75, After: 47}, {Before: 97, After: 75},
		{Before: 47, After: 61}, {Before: 75, After: 61}, {Before: 47, After: 29}, {Before: 75, After: 13}, {Before: 53, After: 13},
	}
}

// totalPageRules adds 47|13, making the seven pages a total order:
// 97 < 75 < 47 < 61 < 53 < 29 < 13.
func totalPageRules() []constraint.Pair[int] {
	return append(pageRules(), constraint.P(47, 13))
}

// randomDAG returns pairs consistent with a hidden random order over
// 0..n-1. Each forward pair is kept with probability density; density 1
// yields a total order.
func randomDAG(r *rand.Rand, n int, density float64) []constraint.Pair[int] {
	order := r.Perm(n)
	var pairs []constraint.Pair[int]
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < density {
				pairs = append(pairs, constraint.P(order[i], order[j]))
			}
		}
	}

	return pairs
}

// randomSequence picks size distinct items from 0..n-1 in random order.
func randomSequence(r *rand.Rand, n, size int) []int {
	return r.Perm(n)[:size]
}
