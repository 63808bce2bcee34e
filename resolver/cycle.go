package resolver

import (
	"slices"

	"github.com/katalvlaran/precedence/constraint"
)

// Visitation states for the cycle search.
const (
	white = iota // not visited
	gray         // on the current DFS path
	black        // fully explored
)

// FindCycle looks for one cycle among the constraints that apply to seq.
// It returns the cycle's items in constraint order (the last must precede
// the first) and true, or nil and false when the applicable constraints
// are acyclic.
//
// Complexity: Time O(n + E), Memory O(n + E).
func FindCycle[T comparable](idx *constraint.Index[T], seq []T) ([]T, bool) {
	if idx.Len() == 0 || len(seq) < 2 {
		return nil, false
	}
	g := buildPositionGraph(idx, seq)
	cycle := findCycle(g, make([]bool, len(seq)))
	if cycle == nil {
		return nil, false
	}
	out := make([]T, len(cycle))
	for i, p := range cycle {
		out[i] = seq[p]
	}

	return out, true
}

// cycleFinder carries the state of one DFS sweep.
type cycleFinder struct {
	graph *positionGraph
	skip  []bool // positions excluded from the search
	state []int  // white, gray or black per position
	path  []int  // current DFS path for cycle reconstruction
	found []int
}

// findCycle runs a three-colour DFS from every unskipped position in
// ascending order and returns the positions of the first cycle closed by a
// back edge, or nil.
func findCycle(g *positionGraph, skip []bool) []int {
	f := &cycleFinder{
		graph: g,
		skip:  skip,
		state: make([]int, len(g.succ)),
		path:  make([]int, 0, len(g.succ)),
	}
	for p := range g.succ {
		if skip[p] || f.state[p] != white {
			continue
		}
		if f.visit(p) {
			return f.found
		}
	}

	return nil
}

// visit returns true as soon as a cycle has been recorded in f.found.
func (f *cycleFinder) visit(p int) bool {
	// 1. Mark in progress and push onto the path
	f.state[p] = gray
	f.path = append(f.path, p)

	// 2. Explore successors that are still part of the search
	for _, q := range f.graph.succ[p] {
		if f.skip[q] {
			continue
		}
		switch f.state[q] {
		case white:
			if f.visit(q) {
				return true
			}
		case gray:
			// Back edge p→q closes the loop q … p.
			start := slices.Index(f.path, q)
			f.found = slices.Clone(f.path[start:])
			return true
		}
	}

	// 3. Backtrack
	f.path = f.path[:len(f.path)-1]
	f.state[p] = black

	return false
}
