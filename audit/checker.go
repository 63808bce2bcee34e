// Package audit checks a batch of updates against one rule index,
// repairs the invalid ones and scores both groups by their middle item.
//
// Updates are independent, so Check fans them out over a bounded number of
// goroutines that share the read-only index. Results keep input order.
package audit

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/precedence/constraint"
	"github.com/katalvlaran/precedence/resolver"
)

var (
	// ErrNilIndex is returned by NewChecker when no index is given.
	ErrNilIndex = errors.New("audit: index is nil")

	// ErrUnrepaired marks an update whose comparator repair still breaks
	// a rule.
	ErrUnrepaired = errors.New("audit: repair left violations")
)

// Checker validates and repairs updates against a fixed index.
// It is safe for concurrent use.
type Checker struct {
	idx        *constraint.Index[int]
	workers    int
	strategy   resolver.Strategy
	bestEffort bool
	log        zerolog.Logger
	reg        prometheus.Registerer
	metrics    *metrics
}

// Option configures a Checker.
type Option func(*Checker)

// WithWorkers bounds concurrency. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithStrategy selects the repair algorithm. Default StrategyTopological.
func WithStrategy(s resolver.Strategy) Option {
	return func(c *Checker) { c.strategy = s }
}

// WithBestEffort keeps the partial repair of updates whose rules are cyclic.
// Those updates still count as failed.
func WithBestEffort() Option {
	return func(c *Checker) { c.bestEffort = true }
}

// WithLogger sets the logger. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(c *Checker) { c.log = l }
}

// WithRegisterer registers the checker's metrics on reg.
// Without it the collectors exist but are not exported. Checkers given the
// same registerer share one set of collectors.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Checker) { c.reg = reg }
}

// NewChecker returns a Checker for idx.
func NewChecker(idx *constraint.Index[int], opts ...Option) (*Checker, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}
	c := &Checker{
		idx:      idx,
		workers:  runtime.NumCPU(),
		strategy: resolver.StrategyTopological,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, err := resolver.ParseStrategy(c.strategy.String()); err != nil {
		return nil, err
	}
	m, err := newMetrics(c.reg)
	if err != nil {
		return nil, err
	}
	c.metrics = m

	return c, nil
}

// Check evaluates every update and returns the aggregated report.
//
// A cyclic rule subset only fails its own update (Result.Err); the batch
// goes on. Cancellation of ctx aborts the batch and returns ctx's error.
func (c *Checker) Check(ctx context.Context, updates [][]int) (*Report, error) {
	ctx, span := tracer.Start(ctx, "audit.Check", trace.WithAttributes(
		attribute.Int("updates", len(updates)),
		attribute.Int("rules", c.idx.NumPairs()),
		attribute.String("strategy", c.strategy.String()),
	))
	defer span.End()
	start := time.Now()

	results := make([]Result, len(updates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, u := range updates {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.checkOne(gctx, i, u)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn().Err(err).Int("updates", len(updates)).Msg("check aborted")
		return nil, err
	}

	rep := &Report{Results: results}
	for _, r := range results {
		rep.add(r)
	}
	c.metrics.checkDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("valid", rep.Valid),
		attribute.Int("repaired", rep.Repaired),
		attribute.Int("failed", rep.Failed),
	)
	c.log.Info().
		Int("updates", len(updates)).
		Int("valid", rep.Valid).
		Int("repaired", rep.Repaired).
		Int("failed", rep.Failed).
		Int("disagreements", rep.Disagreements).
		Dur("took", time.Since(start)).
		Msg("check complete")

	return rep, nil
}

// checkOne handles a single update. Only cancellation is returned as an
// error; repair failures are recorded on the Result.
func (c *Checker) checkOne(ctx context.Context, i int, update []int) (Result, error) {
	r := Result{Index: i, Original: update}
	if resolver.IsValid(c.idx, update) {
		r.Valid = true
		c.metrics.updatesTotal.WithLabelValues(resultValid).Inc()
		c.log.Debug().Int("update", i).Ints("items", update).Msg("valid")
		return r, nil
	}

	r.Violations = resolver.Violations(c.idx, update)
	c.metrics.violations.Observe(float64(len(r.Violations)))

	opts := []resolver.Option{resolver.WithContext(ctx)}
	if c.bestEffort {
		opts = append(opts, resolver.WithBestEffort())
	}
	repaired, err := resolver.RepairWith(c.idx, update, c.strategy, opts...)
	if err != nil && !errors.Is(err, resolver.ErrInconsistentConstraints) {
		return r, err
	}
	r.Repaired = repaired
	r.Err = err
	if err != nil {
		c.metrics.updatesTotal.WithLabelValues(resultFailed).Inc()
		c.log.Warn().Err(err).Int("update", i).Ints("items", update).Msg("repair failed")
		return r, nil
	}

	r.Disagree, err = c.disagrees(ctx, update, repaired)
	if err != nil {
		return r, err
	}
	if r.Disagree {
		c.metrics.disagreements.Inc()
		c.log.Warn().
			Int("update", i).
			Ints("items", update).
			Str("strategy", c.strategy.String()).
			Msg("comparator and topological repairs disagree")
	}

	// Comparator output is not guaranteed to be valid.
	if c.strategy == resolver.StrategyComparator && !resolver.IsValid(c.idx, repaired) {
		r.Err = ErrUnrepaired
		if !c.bestEffort {
			r.Repaired = nil
		}
		c.metrics.updatesTotal.WithLabelValues(resultFailed).Inc()
		c.log.Warn().Int("update", i).Ints("items", update).Ints("repaired", repaired).Msg("repair left violations")
		return r, nil
	}

	c.metrics.updatesTotal.WithLabelValues(resultRepaired).Inc()
	c.log.Debug().
		Int("update", i).
		Ints("items", update).
		Ints("repaired", repaired).
		Int("violations", len(r.Violations)).
		Msg("repaired")

	return r, nil
}

// disagrees compares repaired, produced by the configured strategy, with
// the other strategy's output for update. A cyclic rule subset on the
// topological side counts as a disagreement.
func (c *Checker) disagrees(ctx context.Context, update, repaired []int) (bool, error) {
	if c.strategy != resolver.StrategyComparator {
		return !slices.Equal(resolver.Repair(c.idx, update), repaired), nil
	}
	topo, err := resolver.RepairTopological(c.idx, update, resolver.WithContext(ctx))
	switch {
	case errors.Is(err, resolver.ErrInconsistentConstraints):
		return true, nil
	case err != nil:
		return false, err
	}

	return !slices.Equal(topo, repaired), nil
}
