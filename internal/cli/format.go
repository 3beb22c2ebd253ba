// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber adds space separators to an integer, Swedish style.
// e.g., 1234567 -> "1 234 567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(' ')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatCheck renders a boolean flag as a checkbox.
func FormatCheck(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// FormatAge describes t relative to now, e.g. "3 hours ago". Zero time is "unknown".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

// FormatFamilySummary renders the per-family line: "3/7 klara · 5 handlade · 4 lagade".
func FormatFamilySummary(done, total, bought, cooked int) string {
	return fmt.Sprintf("%d/%d klara · %d handlade · %d lagade", done, total, bought, cooked)
}
