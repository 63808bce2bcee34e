package resolver

import (
	"container/heap"
	"slices"

	"github.com/katalvlaran/precedence/constraint"
)

// positionGraph is the precedence graph over the positions of one sequence:
// an edge i→j means seq[i] must appear before seq[j].
type positionGraph struct {
	succ  [][]int // ascending successor positions per position
	indeg []int   // number of predecessors per position
}

// buildPositionGraph derives edges from the successor sets of each item.
// Repeated items contribute one node per occurrence; an item is never
// ordered against its own position, so a self constraint only matters when
// the item repeats.
func buildPositionGraph[T comparable](idx *constraint.Index[T], seq []T) *positionGraph {
	n := len(seq)
	g := &positionGraph{
		succ:  make([][]int, n),
		indeg: make([]int, n),
	}
	at := allPositions(seq)

	for i, x := range seq {
		ord, ok := idx.Lookup(x)
		if !ok {
			continue
		}
		ord.EachAfter(func(y T) bool {
			for _, j := range at[y] {
				if j == i {
					continue
				}
				g.succ[i] = append(g.succ[i], j)
				g.indeg[j]++
			}
			return true
		})
		// Set iteration order is random; sort for deterministic traversal.
		slices.Sort(g.succ[i])
	}

	return g
}

// topoSorter holds the mutable state of one Kahn run.
type topoSorter[T comparable] struct {
	seq   []T
	graph *positionGraph
	opts  options
	ready positionPQ // positions with no unplaced predecessor
	order []int      // emitted positions
}

// RepairTopological returns a copy of seq reordered by Kahn's algorithm so
// that every applicable constraint is satisfied.
//
// Implementation:
//   - Stage 1: build the position graph (one node per occurrence).
//   - Stage 2: seed a min-heap with every position of in-degree zero.
//   - Stage 3: repeatedly emit the smallest ready position and release its
//     successors.
//   - Stage 4: if positions remain, the constraints are cyclic; locate one
//     cycle with a DFS and report it.
//
// Behavior highlights:
//   - Among positions free to go next, the one earliest in seq wins, so a
//     valid input comes back unchanged and unconstrained items keep their
//     relative order.
//   - On a cycle it returns (nil, *CycleError); with WithBestEffort it
//     returns the placed positions followed by the unresolved ones in
//     original order, plus the *CycleError.
//   - Honors WithContext cancellation between emissions.
//
// Complexity: Time O((n + E)·log n), Memory O(n + E).
func RepairTopological[T comparable](idx *constraint.Index[T], seq []T, opts ...Option) ([]T, error) {
	o := applyOptions(opts)
	if idx.Len() == 0 || len(seq) < 2 {
		return slices.Clone(seq), nil
	}

	s := &topoSorter[T]{
		seq:   seq,
		graph: buildPositionGraph(idx, seq),
		opts:  o,
		order: make([]int, 0, len(seq)),
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	if len(s.order) == len(seq) {
		return s.emit(), nil
	}

	// Cycle: name it from the positions Kahn could not release.
	placed := make([]bool, len(seq))
	for _, p := range s.order {
		placed[p] = true
	}
	cycle := findCycle(s.graph, placed)
	cerr := &CycleError[T]{
		Cycle:      s.items(cycle),
		Unresolved: len(seq) - len(s.order),
	}
	if !o.bestEffort {
		return nil, cerr
	}
	for p := range seq {
		if !placed[p] {
			s.order = append(s.order, p)
		}
	}

	return s.emit(), cerr
}

// run drains the ready heap, stopping early only on cancellation.
func (s *topoSorter[T]) run() error {
	indeg := slices.Clone(s.graph.indeg)
	for p, d := range indeg {
		if d == 0 {
			s.ready = append(s.ready, p)
		}
	}
	heap.Init(&s.ready)

	for s.ready.Len() > 0 {
		select {
		case <-s.opts.ctx.Done():
			return s.opts.ctx.Err()
		default:
		}

		p := heap.Pop(&s.ready).(int)
		s.order = append(s.order, p)
		for _, q := range s.graph.succ[p] {
			indeg[q]--
			if indeg[q] == 0 {
				heap.Push(&s.ready, q)
			}
		}
	}

	return nil
}

// emit maps the emitted positions back to items.
func (s *topoSorter[T]) emit() []T {
	return s.items(s.order)
}

func (s *topoSorter[T]) items(positions []int) []T {
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = s.seq[p]
	}

	return out
}

// positionPQ is a min-heap of sequence positions.
type positionPQ []int

// Len returns the number of positions in the heap.
func (pq positionPQ) Len() int { return len(pq) }

// Less puts the earlier position first.
func (pq positionPQ) Less(i, j int) bool { return pq[i] < pq[j] }

// Swap exchanges two entries.
func (pq positionPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; used by heap.Push.
func (pq *positionPQ) Push(x any) { *pq = append(*pq, x.(int)) }

// Pop removes the last entry; used by heap.Pop.
func (pq *positionPQ) Pop() any {
	old := *pq
	n := len(old)
	x := old[n-1]
	*pq = old[:n-1]

	return x
}
