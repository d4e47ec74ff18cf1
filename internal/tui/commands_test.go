package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/timeplan/internal/export"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/testutil"
)

type failingKV struct{}

func (failingKV) GetSetting(context.Context, string) (string, bool) { return "", false }

func (failingKV) SetSetting(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestExportCmdWritesFiles(t *testing.T) {
	dir := t.TempDir()
	ms := testutil.Milestones(2, "2025-06")
	for _, f := range []export.Format{export.FormatXLSX, export.FormatPDF} {
		msg := exportCmd(dir, f, ms, models.DefaultSettings(), testNow)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("expected exportDoneMsg, got %T", msg)
		}
		if done.Err != nil {
			t.Fatalf("%s export failed: %v", f, done.Err)
		}
		if _, err := os.Stat(done.Path); err != nil {
			t.Fatalf("expected %s file at %s: %v", f, done.Path, err)
		}
	}
}

func TestExportKeysSetStatus(t *testing.T) {
	m := setupTestModel(t, testutil.NewMilestone().Build())
	m = press(t, m, "t")
	model, cmd := m.Update(keyMsg("x"))
	m = model.(Model)
	if cmd == nil {
		t.Fatalf("expected export cmd")
	}
	if m.status != "Exporting xlsx..." {
		t.Fatalf("unexpected status %q", m.status)
	}

	model, _ = m.Update(exportDoneMsg{Format: export.FormatPDF, Path: "/tmp/out.pdf"})
	m = model.(Model)
	if m.status != "Exported /tmp/out.pdf" || m.statusErr {
		t.Fatalf("unexpected status after export %q", m.status)
	}

	model, _ = m.Update(exportDoneMsg{Format: export.FormatPDF, Err: errors.New("boom")})
	m = model.(Model)
	if !m.statusErr || !strings.Contains(m.status, "boom") {
		t.Fatalf("expected export error status, got %q", m.status)
	}
}

func TestExportWithoutDirectory(t *testing.T) {
	m := setupTestModel(t)
	m.exportDir = ""
	m = press(t, m, "t", "p")
	if !m.statusErr {
		t.Fatalf("expected error status without export dir")
	}
}

func TestStatusClears(t *testing.T) {
	m := setupTestModel(t)
	m, _ = m.setStatus("hello", false)
	stale := clearStatusMsg{seq: m.statusSeq - 1}
	model, _ := m.Update(stale)
	if model.(Model).status != "hello" {
		t.Fatalf("stale clear must not wipe a newer status")
	}
	model, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	if model.(Model).status != "" {
		t.Fatalf("expected status cleared")
	}
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	st := setupTestStore(t, failingKV{})
	m := NewModel(context.Background(), st, Options{ExportDir: t.TempDir(), Now: func() time.Time { return testNow }})
	m = press(t, m, "n")
	m = typeText(t, m, "Offline")
	m = press(t, m, "enter")

	if m.store.Len() != 1 {
		t.Fatalf("expected in-memory state kept after failed save")
	}
	if !m.statusErr || !strings.HasPrefix(m.status, "Save failed") {
		t.Fatalf("expected save failure status, got %q", m.status)
	}
	if !strings.Contains(m.View(), "Save failed") {
		t.Fatalf("expected failure visible in view")
	}
}
