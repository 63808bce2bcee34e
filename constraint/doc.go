// Package constraint builds an immutable precedence index from a list of
// ordered pairs.
//
// What:
//
//   - Pair: one constraint, "Before must appear earlier than After
//     whenever both are present in the same sequence".
//   - Index: for every item named by at least one pair, the set of items
//     that must come before it and the set that must come after it.
//
// Why:
//
//   - Validating and repairing sequences needs O(1) "is x required to
//     precede y" answers; the index precomputes them once per rule set.
//
// Invariants:
//
//   - For each Pair{a, b} given to Build: b ∈ idx[a].After and
//     a ∈ idx[b].Before.
//   - The index is derived solely from the pair list. There is no way to
//     add or remove entries after Build returns; rebuild instead.
//   - Duplicate pairs are idempotent and the pair order does not matter.
//
// Concurrency:
//
//	An *Index is read-only after construction and may be shared by any
//	number of goroutines without synchronization.
//
// Complexity:
//
//   - Build:   Time O(P), Memory O(P) for P pairs.
//   - Lookup:  O(1) average.
package constraint
