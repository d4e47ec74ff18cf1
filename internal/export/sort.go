// Package export renders a plan to files: a spreadsheet with a calendar
// header and a chronological list, and a PDF chart.
package export

import "github.com/akyairhashvil/timeplan/internal/models"

// SortChronological returns a sorted copy of ms. Dates that cannot be placed
// go last; ties keep input order.
func SortChronological(ms []models.Milestone) []models.Milestone {
	out := make([]models.Milestone, len(ms))
	copy(out, ms)
	models.SortByDate(out)
	return out
}
