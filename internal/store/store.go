// Package store owns the milestone collection and the timeline settings and
// writes every change through to persistence.
package store

import (
	"context"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/timeline"
	"github.com/rs/zerolog"
)

// Store is the single mutator of persisted state. It is not safe for
// concurrent use; callers serialize access (the TUI does so from its update
// loop).
type Store struct {
	persist    Persistence
	log        zerolog.Logger
	notify     func(error)
	milestones []models.Milestone
	settings   models.Settings
}

// New loads both snapshots through p.
func New(ctx context.Context, p Persistence, logger zerolog.Logger) *Store {
	s := &Store{
		persist:  p,
		log:      logger.With().Str("component", "store").Logger(),
		settings: p.LoadSettings(ctx),
	}
	if s.settings.Validate() != nil {
		s.settings = models.DefaultSettings()
	}

	seen := make(map[string]bool)
	for _, m := range p.LoadMilestones(ctx) {
		if m.ID == "" {
			m.ID = models.NewMilestoneID()
		}
		if seen[m.ID] {
			s.log.Warn().Str("id", m.ID).Msg("dropping duplicate milestone from storage")
			continue
		}
		seen[m.ID] = true
		s.milestones = append(s.milestones, m)
	}
	s.log.Debug().Int("milestones", len(s.milestones)).
		Int("startYear", s.settings.StartYear).
		Int("yearsToShow", s.settings.YearsToShow).
		Msg("store loaded")
	return s
}

// SetNotifier registers fn to receive persistence failures. The in-memory
// state is never rolled back when a save fails.
func (s *Store) SetNotifier(fn func(error)) {
	s.notify = fn
}

func (s *Store) indexOf(id string) int {
	for i, m := range s.milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// expand grows the window for d and reports whether settings changed.
func (s *Store) expand(d models.Date) bool {
	next := timeline.Expand(d, s.settings)
	if next == s.settings {
		return false
	}
	s.log.Info().
		Int("fromStart", s.settings.StartYear).Int("fromYears", s.settings.YearsToShow).
		Int("toStart", next.StartYear).Int("toYears", next.YearsToShow).
		Msg("timeline range expanded")
	s.settings = next
	return true
}

// Create adds m. An empty ID is replaced with a fresh one. The stored
// milestone is returned.
func (s *Store) Create(ctx context.Context, m models.Milestone) (models.Milestone, error) {
	if m.ID == "" {
		m.ID = models.NewMilestoneID()
	} else if s.indexOf(m.ID) >= 0 {
		return models.Milestone{}, wrapMilestoneErr("create", m.ID, ErrDuplicateID)
	}
	s.milestones = append(s.milestones, m)
	settingsChanged := s.expand(m.Date)
	s.commit(ctx, "create", true, settingsChanged)
	return m, nil
}

// Update replaces the milestone with the same ID.
func (s *Store) Update(ctx context.Context, m models.Milestone) error {
	i := s.indexOf(m.ID)
	if i < 0 {
		return wrapMilestoneErr("update", m.ID, ErrNotFound)
	}
	s.milestones[i] = m
	settingsChanged := s.expand(m.Date)
	s.commit(ctx, "update", true, settingsChanged)
	return nil
}

// Move changes only the date of milestone id.
func (s *Store) Move(ctx context.Context, id string, date models.Date) error {
	i := s.indexOf(id)
	if i < 0 {
		return wrapMilestoneErr("move", id, ErrNotFound)
	}
	s.milestones[i].Date = date
	settingsChanged := s.expand(date)
	s.commit(ctx, "move", true, settingsChanged)
	return nil
}

// Delete removes milestone id and reports whether anything was removed.
// Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.milestones = append(s.milestones[:i], s.milestones[i+1:]...)
	s.commit(ctx, "delete", true, false)
	return true
}

// UpdateSettings replaces the window. YearsToShow below 1 is rejected.
func (s *Store) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return wrapSettingsErr("update", err)
	}
	s.settings = settings
	s.commit(ctx, "update settings", false, true)
	return nil
}

// ReplaceAll swaps in a complete snapshot, as done by a restore. Milestones
// without an ID get a fresh one; the window grows to cover every date.
func (s *Store) ReplaceAll(ctx context.Context, milestones []models.Milestone, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return wrapSettingsErr("replace", err)
	}
	next := make([]models.Milestone, 0, len(milestones))
	seen := make(map[string]bool, len(milestones))
	for _, m := range milestones {
		if m.ID == "" {
			m.ID = models.NewMilestoneID()
		}
		if seen[m.ID] {
			return wrapMilestoneErr("replace", m.ID, ErrDuplicateID)
		}
		seen[m.ID] = true
		next = append(next, m)
	}
	s.milestones = next
	s.settings = settings
	for _, m := range next {
		s.expand(m.Date)
	}
	s.commit(ctx, "replace", true, true)
	return nil
}

func (s *Store) commit(ctx context.Context, op string, milestones, settings bool) {
	if milestones {
		if err := s.persist.SaveMilestones(ctx, s.Milestones()); err != nil {
			s.persistFailed(op, wrapMilestoneErr("save", "", err))
		}
	}
	if settings {
		if err := s.persist.SaveSettings(ctx, s.settings); err != nil {
			s.persistFailed(op, wrapSettingsErr("save", err))
		}
	}
}

func (s *Store) persistFailed(op string, err error) {
	s.log.Error().Err(err).Str("op", op).Msg("write-through failed; keeping in-memory state")
	if s.notify != nil {
		s.notify(err)
	}
}

// Milestones returns a copy in insertion order.
func (s *Store) Milestones() []models.Milestone {
	out := make([]models.Milestone, len(s.milestones))
	copy(out, s.milestones)
	return out
}

// Sorted returns a chronological copy.
func (s *Store) Sorted() []models.Milestone {
	out := s.Milestones()
	models.SortByDate(out)
	return out
}

func (s *Store) Get(id string) (models.Milestone, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.milestones[i], true
	}
	return models.Milestone{}, false
}

func (s *Store) Settings() models.Settings {
	return s.settings
}

// Positioned recomputes stacking for the current collection.
func (s *Store) Positioned() []models.PositionedMilestone {
	return timeline.Assign(s.milestones)
}

func (s *Store) Len() int {
	return len(s.milestones)
}
