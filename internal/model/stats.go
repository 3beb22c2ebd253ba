package model

import "math"

// FamilyStats holds progress counts for one family over the full item list.
type FamilyStats struct {
	Family string `json:"family"`
	Total  int    `json:"total"`
	Bought int    `json:"bought"`
	Cooked int    `json:"cooked"`
	Done   int    `json:"done"`
}

// Percent returns the done share as a rounded percentage.
func (f FamilyStats) Percent() int {
	return Percent(f.Done, f.Total)
}

// Totals holds the global KPIs. They always cover the unfiltered list.
type Totals struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// Percent returns the done share as a rounded percentage.
func (t Totals) Percent() int {
	return Percent(t.Done, t.Total)
}

// Percent returns done/total as a percentage rounded half away from zero.
// A zero total yields 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
