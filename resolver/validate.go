package resolver

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/precedence/constraint"
)

// IsValid reports whether seq satisfies every constraint in idx that
// applies to two of its members.
//
// For each position i holding x:
//   - any y in Before(x) found at a position j > i is a violation;
//   - any y in After(x) found at a position j < i is a violation.
//
// When an item repeats, its position is taken as its last occurrence.
// The first violation ends the scan. A nil index, an empty index, and a
// sequence shorter than two items are always valid.
func IsValid[T comparable](idx *constraint.Index[T], seq []T) bool {
	if idx.Len() == 0 || len(seq) < 2 {
		return true
	}
	pos := lastPositions(seq)

	for i, x := range seq {
		ord, ok := idx.Lookup(x)
		if !ok {
			continue // unconstrained
		}
		valid := true
		ord.EachBefore(func(y T) bool {
			if j, present := pos[y]; present && j > i {
				valid = false
			}
			return valid
		})
		if !valid {
			return false
		}
		ord.EachAfter(func(y T) bool {
			if j, present := pos[y]; present && j < i {
				valid = false
			}
			return valid
		})
		if !valid {
			return false
		}
	}

	return true
}

// Violations lists every pair of positions in seq that breaks a constraint,
// ordered by ItemPos then OtherPos. Every occurrence of a repeated item is
// checked. The result is empty exactly when IsValid returns true.
func Violations[T comparable](idx *constraint.Index[T], seq []T) []Violation[T] {
	if idx.Len() == 0 || len(seq) < 2 {
		return nil
	}
	at := allPositions(seq)

	var out []Violation[T]
	for i, x := range seq {
		ord, ok := idx.Lookup(x)
		if !ok {
			continue
		}
		// Checking predecessor sets alone reports each broken pair once:
		// y ∈ Before(x) iff x ∈ After(y).
		ord.EachBefore(func(y T) bool {
			for _, j := range at[y] {
				if j > i {
					out = append(out, Violation[T]{Item: x, ItemPos: i, Other: y, OtherPos: j})
				}
			}
			return true
		})
	}
	slices.SortFunc(out, func(a, b Violation[T]) int {
		if c := cmp.Compare(a.ItemPos, b.ItemPos); c != 0 {
			return c
		}
		return cmp.Compare(a.OtherPos, b.OtherPos)
	})

	return out
}

// lastPositions maps each item to the index of its last occurrence.
func lastPositions[T comparable](seq []T) map[T]int {
	pos := make(map[T]int, len(seq))
	for i, x := range seq {
		pos[x] = i
	}

	return pos
}

// allPositions maps each item to every index it occupies, ascending.
func allPositions[T comparable](seq []T) map[T][]int {
	at := make(map[T][]int, len(seq))
	for i, x := range seq {
		at[x] = append(at[x], i)
	}

	return at
}
