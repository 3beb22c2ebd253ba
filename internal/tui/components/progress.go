package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/julmat/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar followed by its percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	if width < 1 {
		width = 1
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	barColor := lipgloss.Color(ColorForDone(pct))
	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForDone picks the progress role for a completion fraction.
func ColorForDone(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Complete)
	case pct >= 0.6:
		return string(t.Done)
	case pct >= 0.3:
		return string(t.Partial)
	case pct > 0:
		return string(t.Started)
	default:
		return string(t.TextDim)
	}
}

// CompactBar renders a small labeled bar for section headers.
func CompactBar(label string, pct float64, width int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	barW := width - lipgloss.Width(label) - 6
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForDone(pct)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForDone(pct))).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	return labelStyle.Render(label) + " " + bar.ViewAs(pct) + " " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
