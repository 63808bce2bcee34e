package audit

import "github.com/katalvlaran/precedence/resolver"

// Result is the outcome for one update.
type Result struct {
	// Index is the update's position in the batch.
	Index int

	// Original is the update as given.
	Original []int

	// Valid reports whether Original already satisfied the rules.
	Valid bool

	// Violations lists broken pairs; empty when Valid.
	Violations []resolver.Violation[int]

	// Repaired is the corrected order for an invalid update. With best-effort
	// repair it is also set when Err is a cycle error or ErrUnrepaired.
	Repaired []int

	// Disagree is true when the comparator and topological repairs differ
	// for this update. Only computed for invalid updates.
	Disagree bool

	// Err is the repair error: a *resolver.CycleError[int], or
	// ErrUnrepaired when a comparator repair still breaks a rule.
	Err error
}

// Report aggregates a batch check.
type Report struct {
	// Results holds one entry per update, in input order.
	Results []Result

	// Valid, Repaired and Failed count outcomes.
	Valid    int
	Repaired int
	Failed   int

	// Disagreements counts invalid updates where the two repair strategies differ.
	Disagreements int

	// ValidMiddleSum adds the middle item of every valid update.
	ValidMiddleSum int

	// RepairedMiddleSum adds the middle item of every successfully repaired
	// update. Repairs that fail validation count as Failed instead.
	RepairedMiddleSum int
}

// Middle returns seq[len(seq)/2], the upper middle for even lengths.
// ok is false for an empty sequence.
func Middle[T any](seq []T) (v T, ok bool) {
	if len(seq) == 0 {
		return v, false
	}

	return seq[len(seq)/2], true
}

// add folds r into the counters and sums.
func (rep *Report) add(r Result) {
	switch {
	case r.Valid:
		rep.Valid++
		if m, ok := Middle(r.Original); ok {
			rep.ValidMiddleSum += m
		}
	case r.Err != nil:
		rep.Failed++
	default:
		rep.Repaired++
		if m, ok := Middle(r.Repaired); ok {
			rep.RepairedMiddleSum += m
		}
	}
	if r.Disagree {
		rep.Disagreements++
	}
}
