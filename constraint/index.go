package constraint

// Index maps each constrained item to its Ordering.
//
// The zero value is not useful; construct with Build. A nil *Index behaves
// like an empty one for every read method, so callers holding "no rules"
// do not need a special case.
type Index[T comparable] struct {
	entries map[T]*Ordering[T]
	items   []T       // first-seen order, for deterministic iteration
	pairs   []Pair[T] // distinct pairs in first-seen order
}

// Build constructs an Index from pairs.
//
// Implementation:
//   - Stage 1: for each pair, ensure both endpoints own an entry.
//   - Stage 2: record After in Before's successor set and Before in
//     After's predecessor set.
//
// Behavior highlights:
//   - Duplicate pairs are idempotent (sets deduplicate).
//   - A self pair {a, a} puts a into both of its own sets; it is accepted
//     as-is.
//   - pairs is not retained.
//
// Complexity: Time O(P), Memory O(P).
func Build[T comparable](pairs []Pair[T]) *Index[T] {
	idx := &Index[T]{
		entries: make(map[T]*Ordering[T], len(pairs)),
		items:   make([]T, 0, len(pairs)),
		pairs:   make([]Pair[T], 0, len(pairs)),
	}
	for _, p := range pairs {
		// 1. Entries for both endpoints, even if one of their sets stays empty
		from := idx.entry(p.Before)
		to := idx.entry(p.After)

		// 2. Skip the bookkeeping for a pair already seen
		if _, dup := from.after[p.After]; dup {
			continue
		}
		from.after[p.After] = struct{}{}
		to.before[p.Before] = struct{}{}
		idx.pairs = append(idx.pairs, p)
	}

	return idx
}

// entry returns the Ordering for x, creating it on first sight.
// Only called from Build.
func (idx *Index[T]) entry(x T) *Ordering[T] {
	if o, ok := idx.entries[x]; ok {
		return o
	}
	o := newOrdering[T]()
	idx.entries[x] = o
	idx.items = append(idx.items, x)

	return o
}

// Len returns the number of items that have an entry.
func (idx *Index[T]) Len() int {
	if idx == nil {
		return 0
	}

	return len(idx.entries)
}

// NumPairs returns the number of distinct constraints.
func (idx *Index[T]) NumPairs() int {
	if idx == nil {
		return 0
	}

	return len(idx.pairs)
}

// Items returns every constrained item in the order it was first named.
func (idx *Index[T]) Items() []T {
	if idx == nil {
		return nil
	}
	out := make([]T, len(idx.items))
	copy(out, idx.items)

	return out
}

// Pairs returns the distinct constraints in the order they were first given.
func (idx *Index[T]) Pairs() []Pair[T] {
	if idx == nil {
		return nil
	}
	out := make([]Pair[T], len(idx.pairs))
	copy(out, idx.pairs)

	return out
}

// Lookup returns the Ordering of x. ok is false when x is unconstrained.
func (idx *Index[T]) Lookup(x T) (*Ordering[T], bool) {
	if idx == nil {
		return nil, false
	}
	o, ok := idx.entries[x]

	return o, ok
}

// Has reports whether x is named by at least one constraint.
func (idx *Index[T]) Has(x T) bool {
	_, ok := idx.Lookup(x)

	return ok
}

// Precedes reports whether a direct constraint requires a before b.
// Transitive requirements are not followed.
func (idx *Index[T]) Precedes(a, b T) bool {
	o, ok := idx.Lookup(a)
	if !ok {
		return false
	}

	return o.MustComeAfter(b)
}

// Equal reports whether idx and other describe the same set-valued mapping,
// ignoring the order in which items and pairs were first seen.
func (idx *Index[T]) Equal(other *Index[T]) bool {
	if idx.Len() != other.Len() || idx.NumPairs() != other.NumPairs() {
		return false
	}
	if idx.Len() == 0 {
		return true
	}
	for x, o := range idx.entries {
		p, ok := other.entries[x]
		if !ok {
			return false
		}
		if !sameSet(o.before, p.before) || !sameSet(o.after, p.after) {
			return false
		}
	}

	return true
}

func sameSet[T comparable](a, b map[T]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}

	return true
}
