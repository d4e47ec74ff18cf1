package tui

import (
	"strings"
	"testing"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/testutil"
)

func TestCreateMilestoneThroughForm(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n")
	if m.modal.Active() != ModalForm {
		t.Fatalf("expected form modal")
	}
	if got := m.inputs.date.Value(); got != "2025-06" {
		t.Fatalf("expected current month as default date, got %q", got)
	}

	m = typeText(t, m, "Kickoff")
	m = press(t, m, "tab", "tab")
	m = typeText(t, m, "+2w")
	m = press(t, m, "enter")

	if m.modal.IsOpen() {
		t.Fatalf("expected form to close after save")
	}
	if m.store.Len() != 1 {
		t.Fatalf("expected 1 milestone, got %d", m.store.Len())
	}
	created := mustGet(t, m, m.selectedID)
	if created.Name != "Kickoff" || created.WeeksDelta != "+2w" || created.Date != models.MonthOf(2025, 6) {
		t.Fatalf("unexpected milestone %+v", created)
	}
	if created.Marker != models.DefaultMarker() {
		t.Fatalf("expected default marker, got %+v", created.Marker)
	}
	if m.screen != ScreenTimeline {
		t.Fatalf("expected timeline after save")
	}
	if !strings.HasPrefix(m.status, "Saved Kickoff") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestFormRequiresName(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n", "enter")
	state, ok := m.modal.Form()
	if !ok {
		t.Fatalf("expected form to stay open")
	}
	if state.Err != "Name is required" {
		t.Fatalf("unexpected form error %q", state.Err)
	}
	if m.store.Len() != 0 {
		t.Fatalf("expected nothing created")
	}
}

func TestFormRejectsMalformedDate(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n")
	m = typeText(t, m, "Launch")
	m.inputs.date.SetValue("June")
	m = press(t, m, "enter")
	state, ok := m.modal.Form()
	if !ok || state.Err == "" {
		t.Fatalf("expected date validation error")
	}
	if state.Focus != fieldDate {
		t.Fatalf("expected focus on date field, got %d", state.Focus)
	}
}

func TestFormMarkerPicker(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n")
	m = typeText(t, m, "Review")
	m = press(t, m, "shift+tab", "right", "right")
	state, _ := m.modal.Form()
	if state.Focus != fieldMarker || state.MarkerIdx != 2 {
		t.Fatalf("expected marker 2 focused, got focus %d idx %d", state.Focus, state.MarkerIdx)
	}
	m = press(t, m, "left", "left", "left")
	if state.MarkerIdx != 9 {
		t.Fatalf("expected picker to wrap to last marker, got %d", state.MarkerIdx)
	}
	m = press(t, m, "enter")
	created := mustGet(t, m, m.selectedID)
	if created.Marker.Shape != models.ShapeLabel {
		t.Fatalf("expected label marker, got %+v", created.Marker)
	}
}

func TestFormEscCancels(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n")
	m = typeText(t, m, "Draft")
	m = press(t, m, "esc")
	if m.modal.IsOpen() || m.store.Len() != 0 {
		t.Fatalf("expected cancelled form to create nothing")
	}
}

func TestEditPreservesID(t *testing.T) {
	orig := testutil.NewMilestone().WithID("keep").WithName("Beta").WithMarker(7).Build()
	m := setupTestModel(t, orig)
	m = press(t, m, "t", "e")
	state, ok := m.modal.Form()
	if !ok || state.EditingID != "keep" || state.MarkerIdx != 7 {
		t.Fatalf("expected edit form for keep, got %+v", state)
	}
	if m.inputs.name.Value() != "Beta" {
		t.Fatalf("expected name prefilled, got %q", m.inputs.name.Value())
	}
	m.inputs.name.SetValue("Beta 2")
	m = press(t, m, "enter")

	got := mustGet(t, m, "keep")
	if got.Name != "Beta 2" || got.Marker != orig.Marker {
		t.Fatalf("unexpected edited milestone %+v", got)
	}
	if m.store.Len() != 1 {
		t.Fatalf("edit must not add milestones")
	}
}

func TestCreateOutsideWindowExpands(t *testing.T) {
	m := setupTestModel(t)
	m = press(t, m, "n")
	m = typeText(t, m, "Far")
	m.inputs.date.SetValue("2033-02")
	m = press(t, m, "enter")
	if got := m.store.Settings(); got.StartYear != 2025 || got.YearsToShow != 9 {
		t.Fatalf("expected window 2025+9, got %+v", got)
	}
	if _, ok := m.selected(); !ok {
		t.Fatalf("expected new milestone to be selectable")
	}
}
