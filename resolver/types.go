package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInconsistentConstraints indicates that the constraints applicable
	// to a sequence contain a cycle, so no ordering can satisfy them all.
	ErrInconsistentConstraints = errors.New("resolver: inconsistent constraints")

	// ErrUnknownStrategy indicates an unrecognised repair strategy.
	ErrUnknownStrategy = errors.New("resolver: unknown strategy")
)

// Strategy selects the repair algorithm used by RepairWith.
type Strategy int

const (
	// StrategyTopological repairs with Kahn's algorithm (RepairTopological).
	StrategyTopological Strategy = iota

	// StrategyComparator repairs with a comparator-driven stable sort (Repair).
	StrategyComparator
)

// String returns the lowercase name used in configuration files.
func (s Strategy) String() string {
	switch s {
	case StrategyTopological:
		return "topological"
	case StrategyComparator:
		return "comparator"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy is the inverse of Strategy.String. Matching is case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "topological", "topo", "kahn":
		return StrategyTopological, nil
	case "comparator", "sort":
		return StrategyComparator, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Violation records one pair of positions that breaks a constraint:
// Other is required to precede Item but occurs after it.
type Violation[T comparable] struct {
	// Item is the element whose predecessor requirement is broken.
	Item T

	// ItemPos is the position of Item in the sequence.
	ItemPos int

	// Other is the element that should have come earlier.
	Other T

	// OtherPos is the position of Other; always greater than ItemPos.
	OtherPos int
}

// String renders the violation as "Other@OtherPos must precede Item@ItemPos".
func (v Violation[T]) String() string {
	return fmt.Sprintf("%v@%d must precede %v@%d", v.Other, v.OtherPos, v.Item, v.ItemPos)
}

// CycleError reports the items of one cycle found among a sequence's
// applicable constraints. It unwraps to ErrInconsistentConstraints.
type CycleError[T comparable] struct {
	// Cycle lists the items in constraint order; the last item must
	// precede the first one, closing the loop.
	Cycle []T

	// Unresolved is the number of positions that could not be placed.
	Unresolved int
}

// Error implements error.
func (e *CycleError[T]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, x := range e.Cycle {
		parts[i] = fmt.Sprint(x)
	}

	return fmt.Sprintf("%s: cycle [%s], %d unresolved", ErrInconsistentConstraints, strings.Join(parts, " → "), e.Unresolved)
}

// Unwrap lets errors.Is match ErrInconsistentConstraints.
func (e *CycleError[T]) Unwrap() error {
	return ErrInconsistentConstraints
}

// Option configures RepairTopological and RepairWith.
type Option func(*options)

// options holds settings for the repair operations.
type options struct {
	ctx        context.Context // cancellation; defaults to Background
	bestEffort bool            // return a partial order together with a *CycleError
}

// defaultOptions returns Background context and strict cycle handling.
func defaultOptions() options {
	return options{ctx: context.Background()}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithContext sets a cancellation context. Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithBestEffort makes RepairTopological return a full permutation even when
// the constraints are cyclic: the positions it could not place are appended
// in their original order, and the *CycleError is still returned.
func WithBestEffort() Option {
	return func(o *options) {
		o.bestEffort = true
	}
}
