// Package summary turns mutant counts into branch summaries, comparisons and
// rendered reports. It performs no I/O.
package summary

import "github.com/mutscore/mutscore/internal/domain"

// Summarize computes the total and caught percentage of one branch. A branch
// with no mutants gets a 0% score and the NoMutants flag.
func Summarize(label string, counts domain.MutantCounts) domain.BranchSummary {
	total := counts.Total()
	return domain.BranchSummary{
		Label:            label,
		Caught:           counts.Caught,
		Missed:           counts.Missed,
		Total:            total,
		PercentageCaught: counts.PercentageCaught(),
		NoMutants:        total == 0,
	}
}

// Compare summarizes both branches with the default labels and computes the
// percentage-point difference candidate - baseline.
func Compare(baseline, candidate domain.MutantCounts) domain.ComparisonResult {
	return CompareLabeled(
		domain.DefaultBaselineLabel, baseline,
		domain.DefaultCandidateLabel, candidate,
	)
}

// CompareLabeled is Compare with explicit branch labels.
func CompareLabeled(baselineLabel string, baseline domain.MutantCounts, candidateLabel string, candidate domain.MutantCounts) domain.ComparisonResult {
	b := Summarize(baselineLabel, baseline)
	c := Summarize(candidateLabel, candidate)
	return domain.ComparisonResult{
		Baseline:       b,
		Candidate:      c,
		PercentageDiff: c.PercentageCaught - b.PercentageCaught,
	}
}
