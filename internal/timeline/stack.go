package timeline

import (
	"sort"

	"github.com/akyairhashvil/timeplan/internal/models"
)

// Assign gives every milestone a slot within its calendar month. Milestones
// are ordered by their date text (ties keep input order) and numbered from 0
// inside each YYYY-MM group. The result follows that order.
func Assign(milestones []models.Milestone) []models.PositionedMilestone {
	sorted := make([]models.Milestone, len(milestones))
	copy(sorted, milestones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.String() < sorted[j].Date.String()
	})

	counters := make(map[string]int, len(sorted))
	out := make([]models.PositionedMilestone, 0, len(sorted))
	for _, m := range sorted {
		key := m.Date.MonthKey()
		out = append(out, models.PositionedMilestone{Milestone: m, StackIndex: counters[key]})
		counters[key]++
	}
	return out
}

// StackDepth is the number of rows needed to draw positioned.
func StackDepth(positioned []models.PositionedMilestone) int {
	depth := 0
	for _, p := range positioned {
		if p.StackIndex+1 > depth {
			depth = p.StackIndex + 1
		}
	}
	return depth
}
