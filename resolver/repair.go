package resolver

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/precedence/constraint"
)

// Repair returns a reordered copy of seq produced by a stable sort driven
// by the pairwise comparator Compare.
//
// Behavior highlights:
//   - seq is never modified.
//   - A sequence that is already valid comes back unchanged, because the
//     comparator never asks to move a pair that is in order and the sort
//     is stable.
//   - The result satisfies IsValid whenever every pair of items in seq is
//     related by a direct constraint. An unconstrained item, sparse
//     coverage or a cycle leaves it a best-effort permutation; use
//     RepairTopological when that matters.
//
// Complexity: O(n·log n) comparisons, each O(1) average.
func Repair[T comparable](idx *constraint.Index[T], seq []T) []T {
	out := slices.Clone(seq)
	if idx.Len() == 0 || len(out) < 2 {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return Compare(idx, a, b)
	})

	return out
}

// Compare answers "does a precede b" from direct constraints only:
//   - -1 if b must come after a,
//   - +1 if b must come before a,
//   - 0 when a is unconstrained or unrelated to b.
//
// Compare does not follow transitive requirements, so it is only a
// consistent ordering when the relevant constraints are total.
func Compare[T comparable](idx *constraint.Index[T], a, b T) int {
	ord, ok := idx.Lookup(a)
	if !ok {
		return 0
	}
	switch {
	case ord.MustComeAfter(b):
		return -1
	case ord.MustComeBefore(b):
		return 1
	default:
		return 0
	}
}

// RepairWith dispatches to Repair or RepairTopological.
// Options only affect the topological strategy.
func RepairWith[T comparable](idx *constraint.Index[T], seq []T, strategy Strategy, opts ...Option) ([]T, error) {
	switch strategy {
	case StrategyComparator:
		return Repair(idx, seq), nil
	case StrategyTopological:
		return RepairTopological(idx, seq, opts...)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
}

// Agree reports whether Repair and RepairTopological produce the same
// sequence for seq. It is false when the constraints are cyclic.
// Callers use it to surface comparator-vs-topological disagreement on
// sparse rule sets rather than trusting either answer silently.
func Agree[T comparable](idx *constraint.Index[T], seq []T) bool {
	topo, err := RepairTopological(idx, seq)
	if err != nil {
		return false
	}

	return slices.Equal(Repair(idx, seq), topo)
}
