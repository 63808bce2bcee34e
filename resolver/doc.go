// Package resolver validates sequences against a constraint.Index and
// repairs the ones that break it.
//
// What:
//
//   - IsValid: short-circuit check that no pair of items in a sequence
//     violates an applicable constraint.
//   - Violations: the exhaustive variant, one entry per offending pair of
//     positions.
//   - Repair: comparator-driven stable sort. For each pair it answers
//     "must a precede b" from the index, and "no preference" when the
//     index is silent.
//   - RepairTopological: Kahn's algorithm over the sequence positions,
//     emitting the earliest ready position first. Correct for every
//     acyclic constraint subset, whether or not it is a total order.
//   - FindCycle: three-colour DFS that names one cycle among a sequence's
//     items when the applicable constraints contradict each other.
//
// Why two repair paths:
//
//	A comparator sort only has a well-defined result when the comparator
//	induces a consistent preorder. That holds when every pair of items
//	in the sequence is related by a direct constraint, which is the
//	common case for page-ordering rule sets. When coverage is sparse, or
//	an unconstrained item sits between two related ones, the comparator
//	may leave a requirement unsatisfied, and the
//	topological path is the one to use. Agree reports whether both give
//	the same answer for a given sequence.
//
// Items absent from the index impose no constraints and receive none.
//
// Errors:
//
//   - ErrInconsistentConstraints  the applicable constraints form a cycle
//     (wrapped in *CycleError, which names the cycle).
//   - ErrUnknownStrategy          RepairWith or ParseStrategy got a
//     strategy it does not know.
//   - context errors              from WithContext cancellation.
//
// Complexity (n = sequence length, k = average constraint set size):
//
//   - IsValid, Violations: Time O(n·k), Memory O(n)
//   - Repair:              Time O(n·log n) comparisons, Memory O(n)
//   - RepairTopological:   Time O((n + E)·log n), Memory O(n + E),
//     E = applicable constraint instances
//   - FindCycle:           Time O(n + E), Memory O(n + E)
//
// All functions are safe to call concurrently on the same index; none of
// them mutate the input sequence.
package resolver
