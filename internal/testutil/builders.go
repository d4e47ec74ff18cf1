package testutil

import (
	"fmt"

	"github.com/akyairhashvil/timeplan/internal/models"
)

// MilestoneBuilder provides fluent API for creating test milestones.
type MilestoneBuilder struct {
	milestone models.Milestone
}

func NewMilestone() *MilestoneBuilder {
	return &MilestoneBuilder{
		milestone: models.Milestone{
			ID:     models.NewMilestoneID(),
			Name:   "Test Milestone",
			Date:   models.MonthOf(2025, 6),
			Marker: models.DefaultMarker(),
		},
	}
}

func (b *MilestoneBuilder) WithID(id string) *MilestoneBuilder {
	b.milestone.ID = id
	return b
}

func (b *MilestoneBuilder) WithName(name string) *MilestoneBuilder {
	b.milestone.Name = name
	return b
}

// WithDate parses s leniently so tests can build malformed dates too.
func (b *MilestoneBuilder) WithDate(s string) *MilestoneBuilder {
	b.milestone.Date = models.LenientDate(s)
	return b
}

func (b *MilestoneBuilder) WithDelta(delta string) *MilestoneBuilder {
	b.milestone.WeeksDelta = delta
	return b
}

// WithMarker selects a catalog entry by index; out-of-range keeps the default.
func (b *MilestoneBuilder) WithMarker(index int) *MilestoneBuilder {
	if m, ok := models.MarkerAt(index); ok {
		b.milestone.Marker = m
	}
	return b
}

func (b *MilestoneBuilder) Build() models.Milestone {
	return b.milestone
}

// Milestones builds n milestones with ids m1..mn, all dated date.
func Milestones(n int, date string) []models.Milestone {
	out := make([]models.Milestone, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewMilestone().
			WithID(fmt.Sprintf("m%d", i)).
			WithName(fmt.Sprintf("Milestone %d", i)).
			WithDate(date).
			Build())
	}
	return out
}
