package summary_test

import (
	"math"
	"testing"

	"github.com/mutscore/mutscore/internal/domain"
	"github.com/mutscore/mutscore/internal/domain/summary"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := summary.Summarize("Branch", domain.MutantCounts{Caught: 9, Missed: 1})
	assert.Equal(t, "Branch", s.Label)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 9, s.Caught)
	assert.Equal(t, 1, s.Missed)
	assert.InDelta(t, 90.0, s.PercentageCaught, 1e-9)
	assert.False(t, s.NoMutants)
}

func TestSummarize_PercentageMatchesRatio(t *testing.T) {
	for c := 0; c <= 25; c++ {
		for m := 0; m <= 25; m++ {
			if c+m == 0 {
				continue
			}
			s := summary.Summarize("x", domain.MutantCounts{Caught: c, Missed: m})
			want := 100 * float64(c) / float64(c+m)
			assert.InDelta(t, want, s.PercentageCaught, 0.005, "counts %d/%d", c, m)
			assert.True(t, s.PercentageCaught >= 0 && s.PercentageCaught <= 100)
			assert.True(t, s.Total >= s.Caught && s.Total >= s.Missed)
		}
	}
}

func TestSummarize_NoMutants(t *testing.T) {
	s := summary.Summarize("Master", domain.MutantCounts{})
	assert.Equal(t, 0.0, s.PercentageCaught)
	assert.False(t, math.IsNaN(s.PercentageCaught))
	assert.True(t, s.NoMutants)
}

func TestCompare_Increased(t *testing.T) {
	r := summary.Compare(domain.MutantCounts{Caught: 80, Missed: 20}, domain.MutantCounts{Caught: 90, Missed: 10})
	assert.InDelta(t, 10.0, r.PercentageDiff, 1e-9)
	assert.Equal(t, domain.TrendIncreased, r.Trend())
	assert.Equal(t, "Master", r.Baseline.Label)
	assert.Equal(t, "Branch", r.Candidate.Label)
}

func TestCompare_Decreased(t *testing.T) {
	r := summary.Compare(domain.MutantCounts{Caught: 90, Missed: 10}, domain.MutantCounts{Caught: 80, Missed: 20})
	assert.InDelta(t, -10.0, r.PercentageDiff, 1e-9)
	assert.Equal(t, domain.TrendDecreased, r.Trend())
}

func TestCompare_Unchanged(t *testing.T) {
	r := summary.Compare(domain.MutantCounts{Caught: 80, Missed: 20}, domain.MutantCounts{Caught: 80, Missed: 20})
	assert.Equal(t, 0.0, r.PercentageDiff)
	assert.Equal(t, domain.TrendUnchanged, r.Trend())
}

func TestCompare_Antisymmetric(t *testing.T) {
	pairs := [][2]domain.MutantCounts{
		{{Caught: 80, Missed: 20}, {Caught: 90, Missed: 10}},
		{{Caught: 1, Missed: 2}, {Caught: 2, Missed: 7}},
		{{Caught: 0, Missed: 0}, {Caught: 3, Missed: 1}},
		{{Caught: 13, Missed: 0}, {Caught: 0, Missed: 13}},
	}
	for _, p := range pairs {
		ab := summary.Compare(p[0], p[1]).PercentageDiff
		ba := summary.Compare(p[1], p[0]).PercentageDiff
		assert.Equal(t, ab, -ba, "pair %v", p)
	}
}

func TestCompareLabeled(t *testing.T) {
	r := summary.CompareLabeled("main", domain.MutantCounts{Caught: 1, Missed: 1}, "feature/x", domain.MutantCounts{Caught: 2})
	assert.Equal(t, "main", r.Baseline.Label)
	assert.Equal(t, "feature/x", r.Candidate.Label)
	assert.InDelta(t, 50.0, r.PercentageDiff, 1e-9)
}

func TestCompare_TinyDeltaIsUnchanged(t *testing.T) {
	// 2/3 = 66.6667% vs 6667/10000 = 66.67%: delta 0.0033 rounds to 0.00.
	r := summary.Compare(domain.MutantCounts{Caught: 2, Missed: 1}, domain.MutantCounts{Caught: 6667, Missed: 3333})
	assert.NotEqual(t, 0.0, r.PercentageDiff)
	assert.Equal(t, domain.TrendUnchanged, r.Trend())
}
