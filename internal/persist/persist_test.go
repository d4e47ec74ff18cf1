package persist

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/database"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/store"
	"github.com/akyairhashvil/timeplan/internal/testutil"
	"github.com/rs/zerolog"
)

type failingKV struct {
	*Memory
	err error
}

func (f failingKV) SetSetting(context.Context, string, string) error {
	return f.err
}

func TestAdapterDefaultsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemory(), models.DefaultSettings(), zerolog.Nop())

	if ms := a.LoadMilestones(ctx); ms == nil || len(ms) != 0 {
		t.Fatalf("expected empty non-nil collection, got %v", ms)
	}
	if s := a.LoadSettings(ctx); s != models.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	a := NewAdapter(mem, models.DefaultSettings(), zerolog.Nop())

	ms := []models.Milestone{
		testutil.NewMilestone().WithID("a").WithName("Kickoff").WithDate("2025-02").WithDelta("-1w").WithMarker(3).Build(),
		testutil.NewMilestone().WithID("b").WithDate("2026-11-15").Build(),
	}
	if err := a.SaveMilestones(ctx, ms); err != nil {
		t.Fatalf("SaveMilestones failed: %v", err)
	}
	if err := a.SaveSettings(ctx, models.Settings{StartYear: 2024, YearsToShow: 4}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got := a.LoadMilestones(ctx)
	if len(got) != 2 || got[0] != ms[0] || got[1] != ms[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if s := a.LoadSettings(ctx); s != (models.Settings{StartYear: 2024, YearsToShow: 4}) {
		t.Fatalf("unexpected settings %+v", s)
	}

	raw, _ := mem.GetSetting(ctx, config.SlotMilestones)
	if !strings.Contains(raw, `"date":"2025-02"`) || !strings.Contains(raw, `"weeksDelta":"-1w"`) {
		t.Fatalf("unexpected stored blob %s", raw)
	}
}

func TestAdapterCorruptBlobs(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	var logs bytes.Buffer
	a := NewAdapter(mem, models.DefaultSettings(), zerolog.New(&logs))

	_ = mem.SetSetting(ctx, config.SlotMilestones, "{broken")
	_ = mem.SetSetting(ctx, config.SlotSettings, `{"startYear":2025,"yearsToShow":0}`)

	if ms := a.LoadMilestones(ctx); len(ms) != 0 {
		t.Fatalf("expected empty collection for corrupt blob, got %v", ms)
	}
	if s := a.LoadSettings(ctx); s != models.DefaultSettings() {
		t.Fatalf("expected defaults for invalid settings, got %+v", s)
	}
	if !strings.Contains(logs.String(), "discarding") {
		t.Fatalf("expected warnings, got %q", logs.String())
	}

	_ = mem.SetSetting(ctx, config.SlotSettings, "null-ish")
	if s := a.LoadSettings(ctx); s != models.DefaultSettings() {
		t.Fatalf("expected defaults for unreadable settings, got %+v", s)
	}
}

func TestAdapterMalformedDateKept(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	a := NewAdapter(mem, models.DefaultSettings(), zerolog.Nop())
	_ = mem.SetSetting(ctx, config.SlotMilestones, `[{"id":"x","name":"Old","date":"someday","weeksDelta":"","marker":{"shape":"Circle","color":"#ef4444","label":"Red Dot"}}]`)

	ms := a.LoadMilestones(ctx)
	if len(ms) != 1 || ms[0].Date.Valid() || ms[0].Date.String() != "someday" {
		t.Fatalf("expected milestone with unplaceable date kept, got %+v", ms)
	}
}

func TestStoreWriteThroughWithAdapter(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	a := NewAdapter(mem, models.DefaultSettings(), zerolog.Nop())
	s := store.New(ctx, a, zerolog.Nop())

	if _, err := s.Create(ctx, testutil.NewMilestone().WithID("a").WithDate("2031-03").Build()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	reloaded := store.New(ctx, NewAdapter(mem, models.DefaultSettings(), zerolog.Nop()), zerolog.Nop())
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 milestone after reload, got %d", reloaded.Len())
	}
	if reloaded.Settings() != (models.Settings{StartYear: 2025, YearsToShow: 7}) {
		t.Fatalf("expected expanded settings persisted, got %+v", reloaded.Settings())
	}
}

func TestStoreNotifiedOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	kv := failingKV{Memory: NewMemory(), err: errors.New("quota exceeded")}
	s := store.New(ctx, NewAdapter(kv, models.DefaultSettings(), zerolog.Nop()), zerolog.Nop())
	var got error
	s.SetNotifier(func(err error) { got = err })

	if _, err := s.Create(ctx, testutil.NewMilestone().Build()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got == nil || !strings.Contains(got.Error(), "quota exceeded") {
		t.Fatalf("expected notifier to receive save error, got %v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected in-memory state kept")
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cases := []config.StorageConfig{
		{Type: config.StorageSQLite, Path: filepath.Join(dir, "plan.db")},
		{Type: config.StorageJSON, Path: filepath.Join(dir, "plan.json")},
		{Type: config.StorageMemory},
	}
	for _, cfg := range cases {
		b, err := Open(ctx, cfg, models.DefaultSettings(), zerolog.Nop())
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", cfg.Type, err)
		}
		if b.Kind != cfg.Type {
			t.Fatalf("expected kind %s, got %s", cfg.Type, b.Kind)
		}
		if err := b.SaveSettings(ctx, models.Settings{StartYear: 2022, YearsToShow: 2}); err != nil {
			t.Fatalf("SaveSettings on %s failed: %v", cfg.Type, err)
		}
		if s := b.LoadSettings(ctx); s.StartYear != 2022 {
			t.Fatalf("%s did not persist settings: %+v", cfg.Type, s)
		}
		if err := b.Close(); err != nil {
			t.Fatalf("Close(%s) failed: %v", cfg.Type, err)
		}
	}

	reopened, err := Open(ctx, cases[0], models.DefaultSettings(), zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen sqlite failed: %v", err)
	}
	defer reopened.Close()
	if s := reopened.LoadSettings(ctx); s != (models.Settings{StartYear: 2022, YearsToShow: 2}) {
		t.Fatalf("sqlite settings lost on reopen: %+v", s)
	}

	if _, err := Open(ctx, config.StorageConfig{Type: "tape"}, models.DefaultSettings(), zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown storage type")
	}
}

func TestAdapterLogsReadFailure(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "plan.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	var buf bytes.Buffer
	a := NewAdapter(db, models.DefaultSettings(), zerolog.New(&buf))

	ms := []models.Milestone{testutil.NewMilestone().WithID("a").WithDate("2025-02").Build()}
	if err := a.SaveMilestones(ctx, ms); err != nil {
		t.Fatalf("SaveMilestones failed: %v", err)
	}
	if got := a.LoadMilestones(ctx); len(got) != 1 {
		t.Fatalf("expected stored milestone before close, got %v", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no warnings on a healthy read, got %q", buf.String())
	}

	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := a.LoadMilestones(ctx); len(got) != 0 {
		t.Fatalf("expected empty fallback, got %v", got)
	}
	if s := a.LoadSettings(ctx); s != models.DefaultSettings() {
		t.Fatalf("expected default settings fallback, got %+v", s)
	}
	logs := buf.String()
	if !strings.Contains(logs, "reading snapshot failed") || !strings.Contains(logs, config.SlotMilestones) || !strings.Contains(logs, config.SlotSettings) {
		t.Fatalf("expected read failures logged for both slots, got %q", logs)
	}
}
