package export

import (
	"fmt"
	"io"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/timeline"
	"github.com/go-pdf/fpdf"
)

// Chart geometry in millimetres on landscape A4.
const (
	pageMargin   = 10.0
	pageWidth    = 297.0
	pageHeight   = 210.0
	yearBandTop  = 24.0
	yearBandH    = 8.0
	monthRowH    = 5.0
	chartTop     = yearBandTop + yearBandH + monthRowH + 6
	chartBottom  = pageHeight - 14
	markerSize   = 4.0
	maxRowHeight = 18.0
	labelWidth   = 22.0
	yearsPerPage = 6
)

// WritePDF renders the chart pages and a chronological table to out.
func WritePDF(out io.Writer, ms []models.Milestone, s models.Settings) error {
	pdf, err := buildPDF(ms, s)
	if err != nil {
		return err
	}
	return pdf.Output(out)
}

func buildPDF(ms []models.Milestone, s models.Settings) (*fpdf.Fpdf, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(config.ExportTitle, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-8)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	positioned := timeline.Assign(ms)
	for start := s.StartYear; start <= s.EndYear(); start += yearsPerPage {
		window := models.Settings{StartYear: start, YearsToShow: yearsPerPage}
		if window.EndYear() > s.EndYear() {
			window.YearsToShow = s.EndYear() - start + 1
		}
		drawChartPage(pdf, tr, positioned, window, s)
	}
	drawTablePage(pdf, tr, SortChronological(ms))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func drawChartPage(pdf *fpdf.Fpdf, tr func(string) string, positioned []models.PositionedMilestone, window, full models.Settings) {
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, config.ExportTitle, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, fmt.Sprintf("Years %d - %d of %d - %d", window.StartYear, window.EndYear(), full.StartYear, full.EndYear()), "", 1, "L", false, 0, "")

	codec := timeline.DefaultCodec
	chartW := pageWidth - 2*pageMargin
	scale := chartW / float64(codec.Width(window))
	monthW := float64(codec.MonthWidth) * scale

	// Year band and month initials.
	pdf.SetLineWidth(0.2)
	for i := 0; i < window.YearsToShow; i++ {
		x := pageMargin + float64(i*12)*monthW
		pdf.SetFillColor(30, 41, 59)
		pdf.SetDrawColor(148, 163, 184)
		pdf.Rect(x, yearBandTop, 12*monthW, yearBandH, "FD")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(x, yearBandTop)
		pdf.CellFormat(12*monthW, yearBandH, fmt.Sprint(window.StartYear+i), "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 116, 139)
		for m, initial := range monthInitials {
			pdf.SetXY(x+float64(m)*monthW, yearBandTop+yearBandH)
			pdf.CellFormat(monthW, monthRowH, initial, "B", 0, "C", false, 0, "")
		}
	}

	// Dashed month grid.
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
	for i := 0; i <= window.YearsToShow*12; i++ {
		x := pageMargin + float64(i)*monthW
		pdf.Line(x, yearBandTop+yearBandH+monthRowH, x, chartBottom)
	}
	pdf.SetDashPattern([]float64{}, 0)

	depth := timeline.StackDepth(positioned)
	rowH := maxRowHeight
	if depth > 0 && (chartBottom-chartTop)/float64(depth) < rowH {
		rowH = (chartBottom - chartTop) / float64(depth)
	}

	width := codec.Width(window)
	for _, p := range positioned {
		px := codec.ToPixel(p.Date, window)
		if !codec.Visible(px) || px >= width {
			continue
		}
		x := pageMargin + float64(px)*scale
		y := chartTop + float64(p.StackIndex)*rowH
		drawMarker(pdf, p.Marker, x, y, markerSize)

		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(30, 41, 59)
		pdf.SetXY(x-labelWidth/2, y+markerSize/2+0.5)
		pdf.CellFormat(labelWidth, 3, fitText(pdf, tr(p.Name), labelWidth), "", 0, "C", false, 0, "")
		if p.WeeksDelta != "" {
			pdf.SetFont("Courier", "", 5)
			pdf.SetTextColor(100, 116, 139)
			pdf.SetXY(x-labelWidth/2, y+markerSize/2+3.5)
			pdf.CellFormat(labelWidth, 2.5, fitText(pdf, tr(p.WeeksDelta), labelWidth), "", 0, "C", false, 0, "")
		}
	}
}

func drawMarker(pdf *fpdf.Fpdf, m models.MarkerDefinition, x, y, size float64) {
	r, g, b := m.Color.RGB()
	pdf.SetFillColor(r, g, b)
	pdf.SetDrawColor(71, 85, 105)
	pdf.SetLineWidth(0.15)
	h := size / 2
	switch m.Shape {
	case models.ShapeTriangleDown:
		pdf.Polygon([]fpdf.PointType{{X: x - h, Y: y - h}, {X: x + h, Y: y - h}, {X: x, Y: y + h}}, "FD")
	case models.ShapeCircle:
		pdf.Circle(x, y, h, "FD")
	case models.ShapeRhombus:
		pdf.Polygon([]fpdf.PointType{{X: x, Y: y - h}, {X: x + h, Y: y}, {X: x, Y: y + h}, {X: x - h, Y: y}}, "FD")
	case models.ShapeLabel:
		pdf.Rect(x-size*0.8, y-size/3, size*1.6, size*2/3, "FD")
	default:
		pdf.Polygon([]fpdf.PointType{{X: x, Y: y - h}, {X: x + h, Y: y + h}, {X: x - h, Y: y + h}}, "FD")
	}
}

// fitText shortens s with a trailing ellipsis until it fits width.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func drawTablePage(pdf *fpdf.Fpdf, tr func(string) string, sorted []models.Milestone) {
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, "Milestones", "", 1, "L", false, 0, "")

	cols := []struct {
		title string
		width float64
	}{
		{"Date", 30}, {"Name", 130}, {"Delta", 40}, {"Marker", 77},
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(226, 232, 240)
	pdf.SetDrawColor(148, 163, 184)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(sorted) == 0 {
		pdf.CellFormat(0, 7, "No milestones.", "", 1, "L", false, 0, "")
		return
	}
	for _, m := range sorted {
		values := []string{m.Date.String(), m.Name, m.WeeksDelta, "    " + m.Marker.Label}
		if pdf.GetY()+6 > pageHeight-12 {
			pdf.AddPage()
		}
		y := pdf.GetY()
		x := pdf.GetX()
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, fitText(pdf, tr(values[i]), c.width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		markerX := x + cols[0].width + cols[1].width + cols[2].width + 3
		drawMarker(pdf, m.Marker, markerX, y+3, 3)
		pdf.SetDrawColor(148, 163, 184)
		pdf.SetLineWidth(0.2)
	}
}
