package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/xuri/excelize/v2"
)

var monthInitials = [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

// Sheet rows, 1-based.
const (
	rowTitle  = 1
	rowYears  = 3
	rowMonths = 4
	rowHeader = 6
	rowFirst  = 7
)

// ErrTooManyYears is returned when the year band would not fit in a sheet.
var ErrTooManyYears = errors.New("window too wide for a spreadsheet")

// maxSheetYears is how many 12-column years fit after the label column.
const maxSheetYears = (excelize.MaxColumns - 1) / 12

// Workbook builds the spreadsheet. The caller owns (and must Close) the file.
func Workbook(ms []models.Milestone, s models.Settings) (*excelize.File, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.YearsToShow > maxSheetYears {
		return nil, fmt.Errorf("%w: %d years (%d-%d) need %d columns, the limit is %d",
			ErrTooManyYears, s.YearsToShow, s.StartYear, s.EndYear(), 1+s.YearsToShow*12, excelize.MaxColumns)
	}
	f := excelize.NewFile()
	sheet := config.ExportSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet}
	styles, err := newSheetStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	w.set(1, rowTitle, config.ExportTitle)
	w.merge(1, rowTitle, 13, rowTitle)
	w.style(1, rowTitle, 1, rowTitle, styles.title)

	w.set(1, rowYears, "Year")
	w.set(1, rowMonths, "Month")
	w.style(1, rowYears, 1, rowMonths, styles.bold)
	for i := 0; i < s.YearsToShow; i++ {
		col := 2 + i*12
		w.set(col, rowYears, s.StartYear+i)
		w.merge(col, rowYears, col+11, rowYears)
		for m, initial := range monthInitials {
			w.set(col+m, rowMonths, initial)
		}
	}
	lastCol := 1 + s.YearsToShow*12
	w.style(2, rowYears, lastCol, rowYears, styles.year)
	w.style(2, rowMonths, lastCol, rowMonths, styles.month)

	for i, h := range []string{"Date", "Name", "Delta", "Marker"} {
		w.set(1+i, rowHeader, h)
	}
	w.style(1, rowHeader, 4, rowHeader, styles.header)

	for i, m := range SortChronological(ms) {
		row := rowFirst + i
		w.set(1, row, m.Date.String())
		w.set(2, row, m.Name)
		w.set(3, row, m.WeeksDelta)
		w.set(4, row, m.Marker.Label)
		if id, err := styles.marker(m.Marker.Color); err == nil {
			w.style(4, row, 4, row, id)
		} else {
			w.err = err
		}
	}

	first, _ := excelize.ColumnNumberToName(2)
	last, _ := excelize.ColumnNumberToName(lastCol)
	if w.err == nil {
		w.err = f.SetColWidth(sheet, "A", "A", 15)
	}
	if w.err == nil {
		w.err = f.SetColWidth(sheet, first, last, 3)
	}
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", w.err)
	}
	return f, nil
}

// WriteWorkbook streams the spreadsheet to out.
func WriteWorkbook(out io.Writer, ms []models.Milestone, s models.Settings) error {
	f, err := Workbook(ms, s)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

// sheetWriter keeps the first error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (w *sheetWriter) set(col, row int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell(col, row), v)
}

func (w *sheetWriter) merge(c1, r1, c2, r2 int) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(w.sheet, cell(c1, r1), cell(c2, r2))
}

func (w *sheetWriter) style(c1, r1, c2, r2, id int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell(c1, r1), cell(c2, r2), id)
}

type sheetStyles struct {
	f                                *excelize.File
	title, bold, year, month, header int
	markers                          map[models.MarkerColor]int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	st := &sheetStyles{f: f, markers: map[models.MarkerColor]int{}}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	styleDefs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&st.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&st.year, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E293B"}},
			Alignment: center,
		}},
		{&st.month, &excelize.Style{
			Font:      &excelize.Font{Size: 9, Color: "64748B"},
			Alignment: center,
			Border:    []excelize.Border{{Type: "right", Color: "CBD5E1", Style: 1}},
		}},
		{&st.header, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}},
	}
	for _, s := range styleDefs {
		id, err := f.NewStyle(s.style)
		if err != nil {
			return nil, err
		}
		*s.dst = id
	}
	return st, nil
}

// marker returns a fill style in the marker's color, created on first use.
func (st *sheetStyles) marker(c models.MarkerColor) (int, error) {
	if id, ok := st.markers[c]; ok {
		return id, nil
	}
	r, g, b := c.RGB()
	hex := fmt.Sprintf("%02X%02X%02X", r, g, b)
	font := "000000"
	if r*299+g*587+b*114 < 128000 {
		font = "FFFFFF"
	}
	id, err := st.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: font},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
	})
	if err != nil {
		return 0, err
	}
	st.markers[c] = id
	return id, nil
}
