package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/mutscore/mutscore/internal/domain/summary"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderSummary renders one branch's score as a styled terminal string.
func RenderSummary(s domain.BranchSummary) string {
	var b strings.Builder

	title := headerStyle.Render("mutscore")
	subtitle := dimStyle.Render("Mutation Score")
	score := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(s.PercentageCaught)).
		Render(summary.FormatPercent(s.PercentageCaught))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + score))
	b.WriteString("\n\n")
	renderBranch(&b, s)
	b.WriteString("\n")
	return b.String()
}

// RenderComparison renders a baseline/candidate comparison with its trend.
func RenderComparison(r domain.ComparisonResult) string {
	var b strings.Builder

	title := headerStyle.Render("mutscore")
	subtitle := dimStyle.Render(fmt.Sprintf("%s vs %s", r.Baseline.Label, r.Candidate.Label))
	delta := trendStyle(r.Trend()).
		Bold(true).
		Render(fmt.Sprintf("%s %s pp", trendArrow(r.Trend()), summary.FormatDelta(r.PercentageDiff)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + delta))
	b.WriteString("\n\n")

	renderBranch(&b, r.Baseline)
	renderBranch(&b, r.Candidate)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n")
	return b.String()
}

func renderBranch(b *strings.Builder, s domain.BranchSummary) {
	name := labelStyle.Render(padRight(s.Label, 16))
	if s.NoMutants {
		fmt.Fprintf(b, "  %s %s\n", name, warnStyle.Render("no mutants run"))
		return
	}

	bar := coloredBar(s.PercentageCaught, 20)
	pct := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(s.PercentageCaught)).Render(summary.FormatPercent(s.PercentageCaught))
	counts := dimStyle.Render(fmt.Sprintf("%d/%d caught, %d missed", s.Caught, s.Total, s.Missed))
	fmt.Fprintf(b, "  %s %s  %s  %s\n", name, bar, pct, counts)
}

func trendArrow(t domain.Trend) string {
	switch t {
	case domain.TrendIncreased:
		return "↑"
	case domain.TrendDecreased:
		return "↓"
	default:
		return "="
	}
}

func trendStyle(t domain.Trend) lipgloss.Style {
	switch t {
	case domain.TrendIncreased:
		return passStyle
	case domain.TrendDecreased:
		return failStyle
	default:
		return dimStyle
	}
}

func coloredBar(pct float64, width int) string {
	filled := max(0, min(int(pct)*width/100, width))
	empty := width - filled

	color := scoreColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
