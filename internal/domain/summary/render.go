package summary

import (
	"fmt"
	"strings"

	"github.com/mutscore/mutscore/internal/domain"
)

const tableHeader = "| Target | Total Mutants | Caught | Missed | Percentage Caught |\n" +
	"| --- | --- | --- | --- | --- |\n"

// Render produces the textual report for a comparison.
func Render(result domain.ComparisonResult, format domain.Format) (string, error) {
	switch format {
	case domain.FormatTable:
		return renderTable(result.Baseline, result.Candidate), nil
	case domain.FormatSentence:
		return renderComparisonSentence(result), nil
	default:
		return "", fmt.Errorf("%w %q", domain.ErrUnknownFormat, format)
	}
}

// RenderSingle produces the textual report for one branch.
func RenderSingle(s domain.BranchSummary, format domain.Format) (string, error) {
	switch format {
	case domain.FormatTable:
		return renderTable(s), nil
	case domain.FormatSentence:
		if s.NoMutants {
			return noMutantsNote(s.Label), nil
		}
		return fmt.Sprintf("Caught %s of mutants! %d/%d", FormatPercent(s.PercentageCaught), s.Caught, s.Total), nil
	default:
		return "", fmt.Errorf("%w %q", domain.ErrUnknownFormat, format)
	}
}

// TableRow renders the Markdown row of one branch, e.g.
// "| Branch | 10 | 9 | 1 | 90.00% |".
func TableRow(s domain.BranchSummary) string {
	return fmt.Sprintf("| %s | %d | %d | %d | %s |", s.Label, s.Total, s.Caught, s.Missed, FormatPercent(s.PercentageCaught))
}

// FormatPercent renders a 0-100 percentage with exactly two decimals,
// rounded the same way as deltas and minimum checks.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", domain.RoundPercent(p))
}

// FormatDelta renders a percentage-point delta with an explicit sign. Deltas
// that round to zero are rendered unsigned.
func FormatDelta(delta float64) string {
	rounded := domain.RoundPercent(delta)
	if rounded == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%+.2f", rounded)
}

func renderTable(rows ...domain.BranchSummary) string {
	var b strings.Builder
	b.WriteString(tableHeader)
	for _, r := range rows {
		b.WriteString(TableRow(r))
		b.WriteString("\n")
	}

	var notes []string
	for _, r := range rows {
		if r.NoMutants {
			notes = append(notes, "_"+noMutantsNote(r.Label)+"_")
		}
	}
	if len(notes) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(notes, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderComparisonSentence(r domain.ComparisonResult) string {
	scores := fmt.Sprintf("%s %s → %s %s",
		r.Baseline.Label, FormatPercent(r.Baseline.PercentageCaught),
		r.Candidate.Label, FormatPercent(r.Candidate.PercentageCaught),
	)

	var line string
	switch r.Trend() {
	case domain.TrendIncreased:
		line = fmt.Sprintf("Mutation score increased by %s percentage points: %s.", FormatDelta(r.PercentageDiff), scores)
	case domain.TrendDecreased:
		line = fmt.Sprintf("Mutation score decreased by %s percentage points: %s.", FormatDelta(r.PercentageDiff), scores)
	default:
		line = fmt.Sprintf("Mutation score unchanged (%s percentage points): %s.", FormatDelta(r.PercentageDiff), scores)
	}

	for _, s := range []domain.BranchSummary{r.Baseline, r.Candidate} {
		if s.NoMutants {
			line += fmt.Sprintf(" (no mutants run on %s)", s.Label)
		}
	}
	return line
}

func noMutantsNote(label string) string {
	return fmt.Sprintf("No mutants were run on %s.", label)
}
