package store

import (
	"context"

	"github.com/akyairhashvil/timeplan/internal/models"
)

// Persistence loads and saves the two snapshots the store owns. Loads never
// fail: implementations fall back to empty/default values.
//
//go:generate mockgen -source=persistence.go -destination=mock_persistence_test.go -package=store
type Persistence interface {
	LoadMilestones(ctx context.Context) []models.Milestone
	LoadSettings(ctx context.Context) models.Settings
	SaveMilestones(ctx context.Context, milestones []models.Milestone) error
	SaveSettings(ctx context.Context, settings models.Settings) error
}
