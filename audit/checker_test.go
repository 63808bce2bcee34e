package audit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/precedence/audit"
	"github.com/katalvlaran/precedence/constraint"
	"github.com/katalvlaran/precedence/resolver"
)

// pageRules lacks the direct 47|13 pair.
func pageRules() []constraint.Pair[int] {
	return []constraint.Pair[int]{
		{Before: 47, After: 53}, {Before: 97, After: 13}, {Before: 97, After: 61}, {Before: 97, After: 47}, {Before: 75, After: 29},
		{Before: 61, After: 13}, {Before: 75, After: 53}, {Before: 29, After: 13}, {Before: 97, After: 29}, {Before: 53, After: 29},
		{Before: 61, After: 53}, {Before: 97, After: 53}, {Before: 61, After: 29}, {Before: 75, After: 47}, {Before: 97, After: 75},
		{Before: 47, After: 61}, {Before: 75, After: 61}, {Before: 47, After: 29}, {Before: 75, After: 13}, {Before: 53, After: 13},
	}
}

func pageUpdates() [][]int {
	return [][]int{
		{75, 47, 61, 53, 29},
		{97, 61, 53, 29, 13},
		{75, 29, 13},
		{75, 97, 47, 61, 53},
		{61, 13, 29},
		{97, 13, 75, 29, 47},
	}
}

// TestCheck_PageUpdates reproduces the 143 / 123 middle-page sums.
func TestCheck_PageUpdates(t *testing.T) {
	rules := append(pageRules(), constraint.P(47, 13))
	for _, s := range []resolver.Strategy{resolver.StrategyTopological, resolver.StrategyComparator} {
		t.Run(s.String(), func(t *testing.T) {
			c, err := audit.NewChecker(constraint.Build(rules), audit.WithStrategy(s), audit.WithWorkers(2))
			require.NoError(t, err)

			rep, err := c.Check(context.Background(), pageUpdates())
			require.NoError(t, err)
			assert.Equal(t, 143, rep.ValidMiddleSum)
			assert.Equal(t, 123, rep.RepairedMiddleSum)
			assert.Equal(t, 3, rep.Valid)
			assert.Equal(t, 3, rep.Repaired)
			assert.Equal(t, 0, rep.Failed)
			assert.Equal(t, 0, rep.Disagreements)

			require.Len(t, rep.Results, 6)
			for i, r := range rep.Results {
				assert.Equal(t, i, r.Index)
			}
			assert.Equal(t, []int{97, 75, 47, 61, 53}, rep.Results[3].Repaired)
			assert.NotEmpty(t, rep.Results[3].Violations)
			assert.Nil(t, rep.Results[0].Repaired)
		})
	}
}

// TestCheck_SparseRules shows the comparator under-scoring when 47|13 is missing.
func TestCheck_SparseRules(t *testing.T) {
	idx := constraint.Build(pageRules())

	topo, err := audit.NewChecker(idx)
	require.NoError(t, err)
	rep, err := topo.Check(context.Background(), pageUpdates())
	require.NoError(t, err)
	assert.Equal(t, 123, rep.RepairedMiddleSum)
	assert.Equal(t, 1, rep.Disagreements)
	assert.True(t, rep.Results[5].Disagree)

	cmp, err := audit.NewChecker(idx, audit.WithStrategy(resolver.StrategyComparator))
	require.NoError(t, err)
	rep, err = cmp.Check(context.Background(), pageUpdates())
	require.NoError(t, err)
	// [97 13 75 29 47] sorts to [97 75 29 13 47], which still breaks 47|29
	assert.Equal(t, 76, rep.RepairedMiddleSum)
	assert.Equal(t, 2, rep.Repaired)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 1, rep.Disagreements)
	assert.ErrorIs(t, rep.Results[5].Err, audit.ErrUnrepaired)
	assert.Nil(t, rep.Results[5].Repaired)
	assert.True(t, rep.Results[5].Disagree)
}

// TestCheck_ComparatorBestEffort keeps the comparator output that failed validation.
func TestCheck_ComparatorBestEffort(t *testing.T) {
	c, err := audit.NewChecker(constraint.Build(pageRules()),
		audit.WithStrategy(resolver.StrategyComparator), audit.WithBestEffort())
	require.NoError(t, err)

	rep, err := c.Check(context.Background(), pageUpdates())
	require.NoError(t, err)
	assert.ErrorIs(t, rep.Results[5].Err, audit.ErrUnrepaired)
	assert.Equal(t, []int{97, 75, 29, 13, 47}, rep.Results[5].Repaired)
	assert.Equal(t, 76, rep.RepairedMiddleSum)
}

// TestCheck_ComparatorCycle fails a cyclic update instead of counting it repaired.
func TestCheck_ComparatorCycle(t *testing.T) {
	idx := constraint.Build([]constraint.Pair[int]{{Before: 1, After: 2}, {Before: 2, After: 1}})

	c, err := audit.NewChecker(idx, audit.WithStrategy(resolver.StrategyComparator))
	require.NoError(t, err)
	rep, err := c.Check(context.Background(), [][]int{{2, 1}})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 0, rep.Repaired)
	assert.Equal(t, 1, rep.Disagreements)
	assert.ErrorIs(t, rep.Results[0].Err, audit.ErrUnrepaired)
	assert.Zero(t, rep.RepairedMiddleSum)
}

// TestCheck_Cycle fails only the affected update.
func TestCheck_Cycle(t *testing.T) {
	idx := constraint.Build([]constraint.Pair[int]{{Before: 1, After: 2}, {Before: 2, After: 3}, {Before: 3, After: 1}, {Before: 4, After: 5}})

	c, err := audit.NewChecker(idx)
	require.NoError(t, err)
	rep, err := c.Check(context.Background(), [][]int{{3, 2, 1}, {5, 4, 6}, {4, 6, 5}})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 1, rep.Repaired)
	assert.Equal(t, 1, rep.Valid)
	assert.ErrorIs(t, rep.Results[0].Err, resolver.ErrInconsistentConstraints)
	assert.Nil(t, rep.Results[0].Repaired)
	assert.Equal(t, []int{4, 5, 6}, rep.Results[1].Repaired)
	assert.Equal(t, 5, rep.RepairedMiddleSum)
	assert.Equal(t, 6, rep.ValidMiddleSum)
}

// TestCheck_BestEffortKeepsPartial stores the partial order of a cyclic update.
func TestCheck_BestEffortKeepsPartial(t *testing.T) {
	idx := constraint.Build([]constraint.Pair[int]{{Before: 1, After: 2}, {Before: 2, After: 1}})

	c, err := audit.NewChecker(idx, audit.WithBestEffort())
	require.NoError(t, err)
	rep, err := c.Check(context.Background(), [][]int{{2, 1}})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, []int{2, 1}, rep.Results[0].Repaired)
	assert.Error(t, rep.Results[0].Err)
	assert.Equal(t, 0, rep.RepairedMiddleSum)
}

// TestCheck_Canceled aborts the batch.
func TestCheck_Canceled(t *testing.T) {
	c, err := audit.NewChecker(constraint.Build(pageRules()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := c.Check(ctx, pageUpdates())
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestCheck_Empty returns an empty report.
func TestCheck_Empty(t *testing.T) {
	c, err := audit.NewChecker(constraint.Build[int](nil))
	require.NoError(t, err)
	rep, err := c.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Results)
	assert.Zero(t, rep.ValidMiddleSum)
}

// TestCheck_Metrics counts outcomes on the supplied registry.
func TestCheck_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := audit.NewChecker(constraint.Build(pageRules()), audit.WithRegisterer(reg))
	require.NoError(t, err)

	_, err = c.Check(context.Background(), pageUpdates())
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "precedence_updates_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // valid and repaired series

	n, err = testutil.GatherAndCount(reg, "precedence_strategy_disagreements_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// TestNewChecker_SharedRegistry reuses collectors already on the registry.
func TestNewChecker_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	idx := constraint.Build(pageRules())

	first, err := audit.NewChecker(idx, audit.WithRegisterer(reg))
	require.NoError(t, err)
	second, err := audit.NewChecker(idx, audit.WithRegisterer(reg), audit.WithStrategy(resolver.StrategyComparator))
	require.NoError(t, err)

	_, err = first.Check(context.Background(), pageUpdates())
	require.NoError(t, err)
	_, err = second.Check(context.Background(), pageUpdates())
	require.NoError(t, err)

	// both checkers saw the same disagreement on one counter
	n, err := testutil.GatherAndCount(reg, "precedence_strategy_disagreements_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "precedence_strategy_disagreements_total" {
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

// TestNewChecker_RegistryConflict reports a foreign collector under the same name.
func TestNewChecker_RegistryConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "precedence_updates_total",
		Help: "unrelated",
	}))

	_, err := audit.NewChecker(constraint.Build(pageRules()), audit.WithRegisterer(reg))
	assert.Error(t, err)
}

// TestCheck_Logs writes a structured summary line.
func TestCheck_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	c, err := audit.NewChecker(constraint.Build(pageRules()), audit.WithLogger(log))
	require.NoError(t, err)
	_, err = c.Check(context.Background(), pageUpdates())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"check complete"`)
	assert.Contains(t, out, `"valid":3`)
	assert.Contains(t, out, "disagree")
}

// TestNewChecker_Errors rejects a nil index and unknown strategies.
func TestNewChecker_Errors(t *testing.T) {
	_, err := audit.NewChecker(nil)
	assert.ErrorIs(t, err, audit.ErrNilIndex)

	_, err = audit.NewChecker(constraint.Build[int](nil), audit.WithStrategy(resolver.Strategy(9)))
	assert.ErrorIs(t, err, resolver.ErrUnknownStrategy)
}

// TestMiddle picks the upper middle.
func TestMiddle(t *testing.T) {
	m, ok := audit.Middle([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, 2, m)

	m, ok = audit.Middle([]int{1, 2, 3, 4})
	assert.True(t, ok)
	assert.Equal(t, 3, m)

	_, ok = audit.Middle([]int(nil))
	assert.False(t, ok)
}
