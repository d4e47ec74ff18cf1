package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/testutil"
	"github.com/xuri/excelize/v2"
)

func samplePlan() ([]models.Milestone, models.Settings) {
	ms := []models.Milestone{
		testutil.NewMilestone().WithID("c").WithName("Launch").WithDate("2026-03").WithDelta("+2w").WithMarker(7).Build(),
		testutil.NewMilestone().WithID("a").WithName("Kickoff").WithDate("2025-01-15").WithMarker(1).Build(),
		testutil.NewMilestone().WithID("x").WithName("Someday").WithDate("tbd").Build(),
		testutil.NewMilestone().WithID("b").WithName("Review").WithDate("2025-06").WithDelta("-1w").WithMarker(8).Build(),
	}
	return ms, models.Settings{StartYear: 2025, YearsToShow: 2}
}

func TestSortChronological(t *testing.T) {
	ms, _ := samplePlan()
	sorted := SortChronological(ms)
	var ids []string
	for _, m := range sorted {
		ids = append(ids, m.ID)
	}
	if strings.Join(ids, ",") != "a,b,c,x" {
		t.Fatalf("unexpected order %v", ids)
	}
	if ms[0].ID != "c" {
		t.Fatalf("SortChronological must not reorder its input")
	}
}

func TestWorkbookLayout(t *testing.T) {
	ms, s := samplePlan()
	f, err := Workbook(ms, s)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	defer f.Close()

	sheet := "Timeline"
	expect := map[string]string{
		"A1":  "Timeline Planner Export",
		"A3":  "Year",
		"B3":  "2025",
		"N3":  "2026",
		"A4":  "Month",
		"B4":  "J",
		"M4":  "D",
		"Y4":  "D",
		"A6":  "Date",
		"B6":  "Name",
		"C6":  "Delta",
		"D6":  "Marker",
		"A7":  "2025-01-15",
		"B7":  "Kickoff",
		"A8":  "2025-06",
		"C8":  "-1w",
		"D8":  "Azure Rhombus",
		"A9":  "2026-03",
		"D9":  "Red Dot",
		"A10": "tbd",
	}
	for axis, want := range expect {
		got, err := f.GetCellValue(sheet, axis)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", axis, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", axis, got, want)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	ranges := map[string]bool{}
	for _, mc := range merges {
		ranges[mc.GetStartAxis()+":"+mc.GetEndAxis()] = true
	}
	for _, want := range []string{"A1:M1", "B3:M3", "N3:Y3"} {
		if !ranges[want] {
			t.Fatalf("missing merge %s in %v", want, ranges)
		}
	}

	if w, _ := f.GetColWidth(sheet, "A"); w != 15 {
		t.Fatalf("column A width = %v", w)
	}
	if w, _ := f.GetColWidth(sheet, "Y"); w != 3 {
		t.Fatalf("column Y width = %v", w)
	}
}

func TestWorkbookRejectsInvalidSettings(t *testing.T) {
	if _, err := Workbook(nil, models.Settings{StartYear: 2025}); err == nil {
		t.Fatalf("expected error for zero-year window")
	}
}

func TestWorkbookRejectsWindowWiderThanSheet(t *testing.T) {
	if maxSheetYears != 1365 {
		t.Fatalf("maxSheetYears = %d, want 1365", maxSheetYears)
	}
	wide := models.Settings{StartYear: 600, YearsToShow: 1431}
	_, err := Workbook(nil, wide)
	if !errors.Is(err, ErrTooManyYears) {
		t.Fatalf("expected ErrTooManyYears, got %v", err)
	}
	if !strings.Contains(err.Error(), "16384") || !strings.Contains(err.Error(), "600-2030") {
		t.Fatalf("expected limit and window in message, got %q", err.Error())
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, nil, wide); !errors.Is(err, ErrTooManyYears) {
		t.Fatalf("expected Write to surface ErrTooManyYears, got %v", err)
	}
}

func TestWriteWorkbookIsReadable(t *testing.T) {
	ms, s := samplePlan()
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, ms, s); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Timeline", "B9"); got != "Launch" {
		t.Fatalf("unexpected B9 %q", got)
	}
}

func TestWritePDF(t *testing.T) {
	ms, s := samplePlan()
	var buf bytes.Buffer
	if err := WritePDF(&buf, ms, s); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPDFPagination(t *testing.T) {
	ms, _ := samplePlan()
	cases := []struct {
		years int
		pages int
	}{
		{1, 2},
		{6, 2},
		{7, 3},
		{13, 4},
	}
	for _, tc := range cases {
		pdf, err := buildPDF(ms, models.Settings{StartYear: 2025, YearsToShow: tc.years})
		if err != nil {
			t.Fatalf("buildPDF(%d years) failed: %v", tc.years, err)
		}
		if pdf.PageCount() != tc.pages {
			t.Fatalf("%d years: expected %d pages, got %d", tc.years, tc.pages, pdf.PageCount())
		}
	}
}

func TestPDFEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil, models.DefaultSettings()); err != nil {
		t.Fatalf("WritePDF on empty plan failed: %v", err)
	}
}

func TestSaveAndParseFormat(t *testing.T) {
	ms, s := samplePlan()
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	for _, name := range []string{"xlsx", "PDF", ".xlsx"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", name, err)
		}
		path, err := Save(dir, f, ms, s, now)
		if err != nil {
			t.Fatalf("Save(%s) failed: %v", f, err)
		}
		if filepath.Base(path) != "timeplan_export_20250601_093000."+string(f) {
			t.Fatalf("unexpected file name %s", path)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty export at %s", path)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
