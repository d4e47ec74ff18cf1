package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Default visible window used when no settings have been stored yet.
const (
	DefaultStartYear   = 2025
	DefaultYearsToShow = 6
)

var ErrInvalidSettings = errors.New("yearsToShow must be at least 1")

// Milestone is a named, dated event with an annotation and a marker glyph.
type Milestone struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Date       Date             `json:"date"`
	WeeksDelta string           `json:"weeksDelta"`
	Marker     MarkerDefinition `json:"marker"`
}

// NewMilestoneID returns a fresh identifier for a milestone.
func NewMilestoneID() string {
	return uuid.NewString()
}

// Settings defines the visible window [StartYear, StartYear+YearsToShow-1].
type Settings struct {
	StartYear   int `json:"startYear"`
	YearsToShow int `json:"yearsToShow"`
}

func DefaultSettings() Settings {
	return Settings{StartYear: DefaultStartYear, YearsToShow: DefaultYearsToShow}
}

// EndYear is the last year inside the window.
func (s Settings) EndYear() int {
	return s.StartYear + s.YearsToShow - 1
}

func (s Settings) Contains(year int) bool {
	return year >= s.StartYear && year <= s.EndYear()
}

func (s Settings) Validate() error {
	if s.YearsToShow < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSettings, s.YearsToShow)
	}
	return nil
}

// PositionedMilestone pairs a milestone with its vertical slot inside its month.
// It is derived on every render pass and never persisted.
type PositionedMilestone struct {
	Milestone
	StackIndex int
}

// SortByDate orders milestones chronologically in place. Ties keep their
// relative order; dates that cannot be placed go last.
func SortByDate(ms []Milestone) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Date.Before(ms[j].Date)
	})
}
