package models

import "math"

// Progress is the number of items a user has annotated out of all items.
type Progress struct {
	Done  int `db:"done" json:"done"`
	Total int `db:"total" json:"total"`
}

// Fraction returns Done/Total, or 0 when there are no items at all.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// Percent returns the rounded completion percentage.
func (p Progress) Percent() int {
	return int(math.Round(p.Fraction() * 100))
}

// Complete reports whether nothing is left to annotate. With no items at all
// this holds while Percent stays 0.
func (p Progress) Complete() bool {
	return p.Done >= p.Total
}
