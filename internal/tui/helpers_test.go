package tui

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/persist"
	"github.com/akyairhashvil/timeplan/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func setupTestStore(t *testing.T, kv persist.KeyValue, ms ...models.Milestone) *store.Store {
	t.Helper()
	ctx := context.Background()
	st := store.New(ctx, persist.NewAdapter(kv, models.DefaultSettings(), zerolog.Nop()), zerolog.Nop())
	for _, m := range ms {
		if _, err := st.Create(ctx, m); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	return st
}

func setupTestModel(t *testing.T, ms ...models.Milestone) Model {
	t.Helper()
	st := setupTestStore(t, persist.NewMemory(), ms...)
	m := NewModel(context.Background(), st, Options{
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return testNow },
	})
	m.width, m.height = 120, 40
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		model, _ := m.Update(keyMsg(k))
		next, ok := model.(Model)
		if !ok {
			t.Fatalf("Update returned %T", model)
		}
		m = next
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func mustGet(t *testing.T, m Model, id string) models.Milestone {
	t.Helper()
	ms, ok := m.store.Get(id)
	if !ok {
		t.Fatalf("milestone %q not found", id)
	}
	return ms
}
