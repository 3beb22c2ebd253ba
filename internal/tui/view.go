package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/cli"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/tui/components"
	"github.com/theirongolddev/julmat/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminalen är för smal (%d kolumner)\n\n  julmat behöver minst %d kolumner.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ julmat"))
	b.WriteString(subtitleStyle.Render(" · checklista"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Laddar listan…"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Padding(1, 3)

	errStyle := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := errStyle.Render("Kunde inte ladda listan. Kontrollera att data.json finns.") +
		"\n\n" + mutedStyle.Render(a.loadErr.Error()) +
		"\n\n" + mutedStyle.Render("[q] avsluta")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	type binding struct{ key, desc string }
	bindings := []binding{
		{"j/k ↑/↓", "flytta markören"},
		{"g/G", "första / sista raden"},
		{"enter/space", "fäll ihop / ut familj"},
		{"E / C", "fäll ut / ihop alla"},
		{"/", "sök"},
		{"f", "byt familj"},
		{"a", "byt kategori"},
		{"s", "byt statusfilter"},
		{"esc", "rensa filter"},
	}
	if !a.opts.ReadOnly {
		bindings = append(bindings,
			binding{"b", "bocka handlad"},
			binding{"c", "bocka lagad"},
			binding{"y", "kopiera status till klippbordet"},
			binding{"p", "klistra in status från klippbordet"},
			binding{"e", "exportera till " + a.opts.ExportPath},
			binding{"i", "importera från " + a.opts.ExportPath},
			binding{"X", "nollställ alla bockar"},
		)
	} else {
		bindings = append(bindings,
			binding{"y", "kopiera status till klippbordet"},
			binding{"e", "exportera till " + a.opts.ExportPath},
		)
	}
	bindings = append(bindings, binding{"?", "hjälp"}, binding{"q", "avsluta"})

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("  Kortkommandon"))
	b.WriteString("\n\n")
	for _, kb := range bindings {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", kb.key)),
			descStyle.Render(kb.desc)))
	}
	return padHeight(truncateHeight(b.String(), a.height), a.height)
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	var b strings.Builder
	b.WriteString(a.renderHeader(cw))
	b.WriteString("\n")
	b.WriteString(a.renderList(cw))

	body := padHeight(truncateHeight(b.String(), a.height-footerHeight), a.height-footerHeight)
	return body + "\n" + a.renderStatusBar(cw)
}

func (a App) renderHeader(cw int) string {
	t := theme.Active
	totals := a.view.Totals
	pct := float64(0)
	if totals.Total > 0 {
		pct = float64(totals.Done) / float64(totals.Total)
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	title := titleStyle.Render("◈ julmat")
	if a.opts.ReadOnly {
		title += mutedStyle.Render("  · skrivskyddad")
	}

	// card content width minus border, padding and the " 100%" suffix
	barW := cw/3 - 10
	if barW < 6 {
		barW = 6
	}
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Totalt", Value: cli.FormatNumber(int64(totals.Total))},
		{Label: "Klara", Value: cli.FormatNumber(int64(totals.Done)), Hint: components.ProgressBar(pct, barW)},
		{Label: "I vyn", Value: cli.FormatNumber(int64(a.view.Visible))},
	}, cw)

	return title + "\n" + cards + "\n" + a.renderFilterLine()
}

func (a App) renderFilterLine() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	family := a.filter.Family
	if family == "" || family == checklist.AllFamilies {
		family = "Alla"
	}
	status := a.filter.Status
	if status == "" {
		status = checklist.StatusAll
	}

	search := valueStyle.Render(a.filter.Query)
	if a.searching {
		search = a.search.View()
	} else if a.filter.Query == "" {
		search = labelStyle.Render("–")
	}

	category := a.filter.Category
	if category == "" {
		category = "Alla"
	}

	return fmt.Sprintf(" %s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("Sök:"), search,
		labelStyle.Render("Familj:"), valueStyle.Render(family),
		labelStyle.Render("Kategori:"), valueStyle.Render(category),
		labelStyle.Render("Status:"), valueStyle.Render(status.Label()),
	)
}

func (a App) renderList(cw int) string {
	t := theme.Active

	if a.view.Empty() {
		strong := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
		muted := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "\n  " + strong.Render("Inget matchar filtret.") + "\n  " +
			muted.Render("Testa att rensa sök/familj/status.")
	}

	h := a.listHeight()
	end := a.offset + h
	if end > len(a.rows) {
		end = len(a.rows)
	}

	var b strings.Builder
	for i := a.offset; i < end; i++ {
		row := a.rows[i]
		selected := i == a.cursor
		switch row.kind {
		case rowHeader:
			b.WriteString(a.renderSectionHeader(a.view.Sections[row.section], selected, cw))
		case rowItem:
			b.WriteString(a.renderItemRow(row.item, selected, cw))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderSectionHeader(sec checklist.Section, selected bool, cw int) string {
	t := theme.Active
	st := sec.Stats

	arrow := "▾"
	if a.collapsed[sec.Family] {
		arrow = "▸"
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pillDone := lipgloss.NewStyle().Foreground(t.Done)
	pillView := lipgloss.NewStyle().Foreground(t.InView)

	done := pillDone.Render(fmt.Sprintf("%d%% klart", st.Percent()))
	if cw >= 110 {
		frac := 0.0
		if st.Total > 0 {
			frac = float64(st.Done) / float64(st.Total)
		}
		done = components.CompactBar("klart", frac, 28)
	}

	line := fmt.Sprintf("%s %s  %s  %s  %s",
		arrow,
		nameStyle.Render(sec.Family),
		mutedStyle.Render(cli.FormatFamilySummary(st.Done, st.Total, st.Bought, st.Cooked)),
		done,
		pillView.Render(fmt.Sprintf("%d i vyn", sec.InView())),
	)

	return a.decorateRow(line, selected, cw)
}

func (a App) renderItemRow(r checklist.Row, selected bool, cw int) string {
	t := theme.Active

	boughtStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	if r.Entry.Bought {
		boughtStyle = lipgloss.NewStyle().Foreground(t.Bought)
	}
	cookedStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	if r.Entry.Cooked {
		cookedStyle = lipgloss.NewStyle().Foreground(t.Cooked)
	}
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	if r.Entry.Done() {
		nameStyle = lipgloss.NewStyle().Foreground(t.TextMuted).Strikethrough(true)
	}
	catStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	nameW := cw / 3
	if nameW < 16 {
		nameW = 16
	}

	line := fmt.Sprintf("   %s %s  %s  %s",
		boughtStyle.Render(cli.FormatCheck(r.Entry.Bought)+" Handlad"),
		cookedStyle.Render(cli.FormatCheck(r.Entry.Cooked)+" Lagad"),
		nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(r.Item.Name, nameW))),
		catStyle.Render(categoryLine(r.Item)),
	)

	return a.decorateRow(line, selected, cw)
}

// categoryLine is "Category · notes", or just the category without notes.
func categoryLine(it model.Item) string {
	if it.Notes == "" {
		return it.Category
	}
	return it.Category + " · " + it.Notes
}

func (a App) decorateRow(line string, selected bool, cw int) string {
	t := theme.Active
	if lipgloss.Width(line) > cw {
		line = lipgloss.NewStyle().MaxWidth(cw).Render(line)
	}
	if !selected {
		return line
	}
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("›")
	return marker + line
}

func (a App) renderStatusBar(cw int) string {
	hints := "[?]hjälp  [/]sök  [f]amilj  [s]tatus  [q]uit"
	if !a.opts.ReadOnly {
		hints = "[b]handlad  [c]lagad  " + hints
	}

	msg := a.message
	isErr := a.messageErr
	if a.confirming {
		msg = "Nollställa alla bockar? (listan påverkas inte) [y/N]"
		isErr = true
	} else if msg == "" && a.opts.ReadOnly {
		msg = "skrivskyddad"
	}

	return components.RenderStatusBar(cw, hints, msg, isErr)
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
