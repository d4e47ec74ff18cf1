package timeline

import "github.com/akyairhashvil/timeplan/internal/models"

// Expand grows the window so that d's year is visible. Settings are returned
// unchanged (and compare equal) when no growth is needed or d has no year.
// The window never shrinks and StartYear never moves forward.
func Expand(d models.Date, s models.Settings) models.Settings {
	if !d.HasYear() {
		return s
	}
	switch {
	case d.Year < s.StartYear:
		return models.Settings{
			StartYear:   d.Year,
			YearsToShow: s.YearsToShow + (s.StartYear - d.Year),
		}
	case d.Year > s.EndYear():
		return models.Settings{
			StartYear:   s.StartYear,
			YearsToShow: s.YearsToShow + (d.Year - s.EndYear()),
		}
	}
	return s
}
