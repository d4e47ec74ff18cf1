package tui

import (
	"strings"
	"testing"

	"github.com/akyairhashvil/timeplan/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestHomeViewShowsActiveCount(t *testing.T) {
	m := setupTestModel(t, testutil.Milestones(2, "2025-06")...)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "2 active milestones") {
		t.Fatalf("expected milestone count in home view, got %q", view)
	}
	if !strings.Contains(view, "Open timeline") {
		t.Fatalf("expected timeline action in home view")
	}
}

func TestHomeOpensTimeline(t *testing.T) {
	m := setupTestModel(t, testutil.NewMilestone().WithID("a").Build())
	m = press(t, m, "t")
	if m.screen != ScreenTimeline {
		t.Fatalf("expected timeline screen, got %v", m.screen)
	}
	if m.selectedID != "a" {
		t.Fatalf("expected first milestone selected, got %q", m.selectedID)
	}
	m = press(t, m, "esc")
	if m.screen != ScreenHome {
		t.Fatalf("expected esc to return home")
	}
}

func TestModelInitAndResize(t *testing.T) {
	m := setupTestModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected init cmd")
	}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	updated := model.(Model)
	if updated.width != 100 || updated.height != 30 {
		t.Fatalf("expected size updated, got %dx%d", updated.width, updated.height)
	}
}

func TestModelQuit(t *testing.T) {
	m := setupTestModel(t)
	model, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil || !model.(Model).quitting {
		t.Fatalf("expected quit on ctrl+c")
	}
	_, cmd = m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit cmd on q")
	}
}

func TestParseStartYear(t *testing.T) {
	cases := map[string]int{"2020": 2020, " 1999 ": 1999, "abc": 2025, "": 2025, "20x5": 2025}
	for in, want := range cases {
		if got := parseStartYear(in); got != want {
			t.Fatalf("parseStartYear(%q) = %d, want %d", in, got, want)
		}
	}
}
