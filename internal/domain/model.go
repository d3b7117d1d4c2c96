package domain

import "math"

const (
	DefaultBaselineLabel  = "Master"
	DefaultCandidateLabel = "Branch"
)

// MutantCounts holds the raw outcome counts of one mutation-testing run.
type MutantCounts struct {
	Caught int `json:"caught" yaml:"caught"`
	Missed int `json:"missed" yaml:"missed"`
}

func (c MutantCounts) Total() int { return c.Caught + c.Missed }

// PercentageCaught returns 100 * caught / total, or 0 when nothing ran.
func (c MutantCounts) PercentageCaught() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(c.Caught) / float64(total)
}

// Validate rejects negative counts.
func (c MutantCounts) Validate() error {
	if c.Caught < 0 {
		return &CountError{Key: "caught", Value: c.Caught}
	}
	if c.Missed < 0 {
		return &CountError{Key: "missed", Value: c.Missed}
	}
	return nil
}

// BranchSummary is the computed score of one branch.
type BranchSummary struct {
	Label            string  `json:"label"`
	Caught           int     `json:"caught"`
	Missed           int     `json:"missed"`
	Total            int     `json:"total"`
	PercentageCaught float64 `json:"percentage_caught"`
	NoMutants        bool    `json:"no_mutants,omitempty"`
}

func (s BranchSummary) Counts() MutantCounts {
	return MutantCounts{Caught: s.Caught, Missed: s.Missed}
}

// ComparisonResult pairs a baseline and a candidate summary.
type ComparisonResult struct {
	Baseline       BranchSummary `json:"baseline"`
	Candidate      BranchSummary `json:"candidate"`
	PercentageDiff float64       `json:"percentage_diff"`
}

func (r ComparisonResult) Trend() Trend { return TrendFor(r.PercentageDiff) }

// Trend is the direction of a score change.
type Trend string

const (
	TrendIncreased Trend = "increased"
	TrendDecreased Trend = "decreased"
	TrendUnchanged Trend = "unchanged"
)

// TrendFor classifies a percentage-point delta after rounding it to two
// decimals, so that a delta printed as 0.00 is always unchanged.
func TrendFor(delta float64) Trend {
	rounded := RoundPercent(delta)
	switch {
	case rounded > 0:
		return TrendIncreased
	case rounded < 0:
		return TrendDecreased
	default:
		return TrendUnchanged
	}
}

// RoundPercent rounds to two decimal places.
func RoundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format selects how a report is rendered.
type Format string

const (
	FormatTable    Format = "table"
	FormatSentence Format = "sentence"
)

// ValidFormats enumerates the formats understood by the summary renderer.
var ValidFormats = []Format{FormatTable, FormatSentence}

func (f Format) Valid() bool {
	for _, v := range ValidFormats {
		if f == v {
			return true
		}
	}
	return false
}

// Outcomes is the raw per-category breakdown read from a mutants.out directory.
type Outcomes struct {
	Caught   int `json:"caught"`
	Missed   int `json:"missed"`
	Unviable int `json:"unviable"`
	Timeout  int `json:"timeout"`
}

// Counts folds unviable and timed-out mutants into caught or drops them,
// according to the given policies.
func (o Outcomes) Counts(unviable, timeout Policy) MutantCounts {
	c := MutantCounts{Caught: o.Caught, Missed: o.Missed}
	if unviable == PolicyCaught {
		c.Caught += o.Unviable
	}
	if timeout == PolicyCaught {
		c.Caught += o.Timeout
	}
	return c
}

// Policy decides how a secondary outcome category is scored.
type Policy string

const (
	PolicyCaught  Policy = "caught"
	PolicyExclude Policy = "exclude"
)
