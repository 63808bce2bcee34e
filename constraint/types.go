package constraint

// Pair declares that Before must appear earlier than After in any
// sequence containing both.
type Pair[T comparable] struct {
	// Before is the item required to come first.
	Before T

	// After is the item required to come second.
	After T
}

// P is a shorthand constructor for Pair.
func P[T comparable](before, after T) Pair[T] {
	return Pair[T]{Before: before, After: after}
}

// Ordering holds the relative-order requirements of a single item.
//
// before contains items that must appear earlier than the owner,
// after contains items that must appear later. Both sets are owned by the
// Index and never handed out directly.
type Ordering[T comparable] struct {
	before map[T]struct{}
	after  map[T]struct{}
}

// newOrdering returns an Ordering with both sets allocated.
func newOrdering[T comparable]() *Ordering[T] {
	return &Ordering[T]{
		before: make(map[T]struct{}),
		after:  make(map[T]struct{}),
	}
}

// MustComeBefore reports whether y is required to appear earlier than the owner.
func (o *Ordering[T]) MustComeBefore(y T) bool {
	if o == nil {
		return false
	}
	_, ok := o.before[y]

	return ok
}

// MustComeAfter reports whether y is required to appear later than the owner.
func (o *Ordering[T]) MustComeAfter(y T) bool {
	if o == nil {
		return false
	}
	_, ok := o.after[y]

	return ok
}

// Before returns a copy of the items that must precede the owner.
// Order of the returned slice is unspecified.
func (o *Ordering[T]) Before() []T {
	if o == nil {
		return nil
	}

	return keys(o.before)
}

// After returns a copy of the items that must follow the owner.
// Order of the returned slice is unspecified.
func (o *Ordering[T]) After() []T {
	if o == nil {
		return nil
	}

	return keys(o.after)
}

// NumBefore returns the size of the predecessor set.
func (o *Ordering[T]) NumBefore() int {
	if o == nil {
		return 0
	}

	return len(o.before)
}

// NumAfter returns the size of the successor set.
func (o *Ordering[T]) NumAfter() int {
	if o == nil {
		return 0
	}

	return len(o.after)
}

// EachBefore calls fn for every required predecessor until fn returns false.
// It does not allocate.
func (o *Ordering[T]) EachBefore(fn func(y T) bool) {
	if o == nil {
		return
	}
	for y := range o.before {
		if !fn(y) {
			return
		}
	}
}

// EachAfter calls fn for every required successor until fn returns false.
func (o *Ordering[T]) EachAfter(fn func(y T) bool) {
	if o == nil {
		return
	}
	for y := range o.after {
		if !fn(y) {
			return
		}
	}
}

func keys[T comparable](set map[T]struct{}) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}

	return out
}
