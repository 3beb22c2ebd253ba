// Package report renders a checklist view as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/julmat/internal/checklist"
)

// OverviewSheet is the first sheet: one progress row per family.
const OverviewSheet = "Översikt"

var (
	overviewHeaders = []string{"Familj", "Klara", "Totalt", "Handlade", "Lagade", "% klart"}
	itemHeaders     = []string{"Kategori", "Namn", "Anteckning", "Handlad", "Lagad"}
)

// WriteXLSX writes v as a workbook: an overview sheet followed by one sheet
// per section, holding the section's visible rows in view order.
func WriteXLSX(w io.Writer, v checklist.View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	done, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	writeRow(f, OverviewSheet, 1, overviewHeaders)
	styleRow(f, OverviewSheet, 1, len(overviewHeaders), header)
	for i, sec := range v.Sections {
		st := sec.Stats
		writeRow(f, OverviewSheet, i+2, []any{sec.Family, st.Done, st.Total, st.Bought, st.Cooked, st.Percent()})
	}
	totalRow := len(v.Sections) + 2
	writeRow(f, OverviewSheet, totalRow, []any{"Totalt", v.Totals.Done, v.Totals.Total, nil, nil, v.Totals.Percent()})
	styleRow(f, OverviewSheet, totalRow, len(overviewHeaders), header)
	_ = f.SetColWidth(OverviewSheet, "A", "A", 25)

	used := map[string]bool{OverviewSheet: true}
	for _, sec := range v.Sections {
		name := sheetName(sec.Family, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}

		writeRow(f, name, 1, itemHeaders)
		styleRow(f, name, 1, len(itemHeaders), header)
		for i, r := range sec.Rows {
			row := i + 2
			writeRow(f, name, row, []any{r.Item.Category, r.Item.Name, r.Item.Notes, r.Entry.Bought, r.Entry.Cooked})
			if r.Entry.Done() {
				styleRow(f, name, row, len(itemHeaders), done)
			}
		}
		_ = f.SetColWidth(name, "A", "B", 25)
		_ = f.SetColWidth(name, "C", "C", 40)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow[T any](f *excelize.File, sheet string, row int, values []T) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	_ = f.SetCellStyle(sheet, first, last, style)
}

// sheetName makes family a valid, unique sheet name: no []:*?/\ characters,
// at most 31 runes.
func sheetName(family string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(family))
	if name == "" {
		name = "Familj"
	}
	name = truncRunes(name, 31)

	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncRunes(base, 31-len(suffix)) + suffix
	}
	used[name] = true
	return name
}

func truncRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
