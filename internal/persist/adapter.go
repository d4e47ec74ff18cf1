// Package persist maps the planner's two snapshots onto a string key-value
// backend and picks that backend from configuration.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/store"
	"github.com/rs/zerolog"
)

// KeyValue is the opaque storage the adapter writes to.
type KeyValue interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
}

// lookuper is implemented by backends that can tell a read failure apart
// from a missing key.
type lookuper interface {
	LookupSetting(ctx context.Context, key string) (*string, error)
}

// Adapter serializes milestones and settings as JSON, one slot each.
type Adapter struct {
	kv       KeyValue
	defaults models.Settings
	log      zerolog.Logger
}

var _ store.Persistence = (*Adapter)(nil)

func NewAdapter(kv KeyValue, defaults models.Settings, logger zerolog.Logger) *Adapter {
	if defaults.Validate() != nil {
		defaults = models.DefaultSettings()
	}
	return &Adapter{
		kv:       kv,
		defaults: defaults,
		log:      logger.With().Str("component", "persist").Logger(),
	}
}

// LoadMilestones returns the stored collection, or an empty one when the
// slot is missing or unreadable.
func (a *Adapter) LoadMilestones(ctx context.Context) []models.Milestone {
	raw, ok := a.read(ctx, config.SlotMilestones)
	if !ok {
		return []models.Milestone{}
	}
	var ms []models.Milestone
	if err := json.Unmarshal([]byte(raw), &ms); err != nil {
		a.log.Warn().Err(err).Str("slot", config.SlotMilestones).Msg("discarding unreadable snapshot")
		return []models.Milestone{}
	}
	if ms == nil {
		ms = []models.Milestone{}
	}
	return ms
}

// LoadSettings returns the stored window, or the defaults when the slot is
// missing, unreadable or invalid.
func (a *Adapter) LoadSettings(ctx context.Context) models.Settings {
	raw, ok := a.read(ctx, config.SlotSettings)
	if !ok {
		return a.defaults
	}
	var s models.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		a.log.Warn().Err(err).Str("slot", config.SlotSettings).Msg("discarding unreadable snapshot")
		return a.defaults
	}
	if err := s.Validate(); err != nil {
		a.log.Warn().Err(err).Str("slot", config.SlotSettings).Msg("discarding invalid settings")
		return a.defaults
	}
	return s
}

func (a *Adapter) read(ctx context.Context, slot string) (string, bool) {
	l, ok := a.kv.(lookuper)
	if !ok {
		return a.kv.GetSetting(ctx, slot)
	}
	v, err := l.LookupSetting(ctx, slot)
	if err != nil {
		a.log.Warn().Err(err).Str("slot", slot).Msg("reading snapshot failed; using defaults")
		return "", false
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

func (a *Adapter) SaveMilestones(ctx context.Context, milestones []models.Milestone) error {
	if milestones == nil {
		milestones = []models.Milestone{}
	}
	b, err := json.Marshal(milestones)
	if err != nil {
		return fmt.Errorf("encode milestones: %w", err)
	}
	return a.kv.SetSetting(ctx, config.SlotMilestones, string(b))
}

func (a *Adapter) SaveSettings(ctx context.Context, settings models.Settings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return a.kv.SetSetting(ctx, config.SlotSettings, string(b))
}
