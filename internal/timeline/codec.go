// Package timeline holds the pure geometry of the planner: the mapping
// between calendar months and horizontal positions, the automatic growth of
// the visible year window and the vertical stacking of same-month milestones.
package timeline

import (
	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/util"
)

// OffTimeline is returned for dates that cannot be placed. It is negative,
// so renderers drop it like any other position left of the origin.
const OffTimeline = -100

// Codec converts between dates and pixel (or cell) offsets from the start of
// the visible window.
type Codec struct {
	MonthWidth int
}

var DefaultCodec = Codec{MonthWidth: config.DefaultMonthWidth}

func (c Codec) width() int {
	if c.MonthWidth < 1 {
		return config.DefaultMonthWidth
	}
	return c.MonthWidth
}

// ToPixel returns the center of the date's month column.
func (c Codec) ToPixel(d models.Date, s models.Settings) int {
	if !d.Valid() {
		return OffTimeline
	}
	w := c.width()
	months := (d.Year-s.StartYear)*12 + (d.Month - 1)
	return months*w + w/2
}

// ToDate returns the month whose column contains pixel. Positions left of
// the origin decode to months before StartYear.
func (c Codec) ToDate(pixel int, s models.Settings) models.Date {
	monthIndex := util.FloorDiv(pixel, c.width())
	years := util.FloorDiv(monthIndex, 12)
	month := util.FloorMod(monthIndex, 12)
	return models.MonthOf(s.StartYear+years, month+1)
}

// Visible reports whether a position should be drawn.
func (c Codec) Visible(pixel int) bool {
	return pixel >= 0
}

// Width is the full extent of the visible window.
func (c Codec) Width(s models.Settings) int {
	return s.YearsToShow * 12 * c.width()
}
