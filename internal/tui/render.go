package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/timeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var monthInitials = [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

// Each stack slot takes a glyph line, a name line and a delta line.
const slotLines = 3

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sections []string
	switch m.screen {
	case ScreenHome:
		sections = append(sections, m.renderHome())
	case ScreenTimeline:
		sections = append(sections, m.renderTimeline())
	}
	if modal := m.renderModal(); modal != "" {
		sections = append(sections, modal)
	}
	sections = append(sections, m.renderFooter())
	return CurrentTheme.Base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Timeline Planner"))
	b.WriteString(CurrentTheme.Dim.Render(" v" + versionLabel()))
	b.WriteString("\n\n")

	n := m.store.Len()
	noun := "milestones"
	if n == 1 {
		noun = "milestone"
	}
	b.WriteString(fmt.Sprintf("%d active %s\n", n, noun))
	s := m.store.Settings()
	b.WriteString(CurrentTheme.Dim.Render(fmt.Sprintf("Window %d-%d (%d years)", s.StartYear, s.EndYear(), s.YearsToShow)))
	b.WriteString("\n\n")
	b.WriteString(CurrentTheme.Focused.Render("[n]") + " Add milestone   ")
	b.WriteString(CurrentTheme.Focused.Render("[t]") + " Open timeline   ")
	b.WriteString(CurrentTheme.Focused.Render("[q]") + " Quit")
	return b.String()
}

func (m Model) renderTimeline() string {
	settings := m.store.Settings()
	total := m.codec.Width(settings)
	view := m.viewportWidth()
	from, to := m.scroll, m.scroll+view
	if to > total {
		to = total
	}

	positioned := m.store.Positioned()
	depth := timeline.StackDepth(positioned)
	if depth < 1 {
		depth = 1
	}
	cv := m.drawGrid(settings, total, depth)
	m.drawMilestones(cv, positioned, settings, total)
	m.drawGhost(cv, depth)

	title := CurrentTheme.Header.Render("Timeline") +
		CurrentTheme.Dim.Render(fmt.Sprintf("  %d-%d", settings.StartYear, settings.EndYear()))
	if from > 0 {
		title += CurrentTheme.Dim.Render("  ◀")
	}
	if to < total {
		title += CurrentTheme.Dim.Render("  ▶")
	}

	gutter := lipgloss.NewStyle().Width(config.TimelineGutter)
	labels := make([]string, len(cv.rows))
	labels[0] = "year"
	labels[1] = "month"
	for k := 0; k < depth; k++ {
		labels[2+k*slotLines] = fmt.Sprintf("#%d", k+1)
	}

	lines := []string{title, ""}
	for row := range cv.rows {
		lines = append(lines, gutter.Render(CurrentTheme.Dim.Render(labels[row]))+cv.line(row, from, to))
	}
	if detail := m.renderSelection(); detail != "" {
		lines = append(lines, "", detail)
	}
	if hidden := m.hiddenCount(settings, total); hidden > 0 {
		lines = append(lines, CurrentTheme.Dim.Render(fmt.Sprintf("%d not shown (date outside the window or unreadable)", hidden)))
	}
	return strings.Join(lines, "\n")
}

// drawGrid lays out the year band, month initials and the dashed month
// separators for every slot line.
func (m Model) drawGrid(settings models.Settings, total, depth int) *canvas {
	cv := newCanvas(total, 2+depth*slotLines)
	month := m.codec.MonthWidth
	for y := 0; y < settings.YearsToShow; y++ {
		style := &CurrentTheme.Year
		if y == 0 {
			style = &CurrentTheme.StartYear
		}
		cv.write(0, y*12*month, fmt.Sprintf("%d", settings.StartYear+y), style)
		for mo := 0; mo < 12; mo++ {
			col := (y*12 + mo) * month
			cv.set(1, col+month/2, monthInitials[mo], &CurrentTheme.Month)
			sep := "┊"
			if mo == 0 {
				sep = "│"
			}
			for row := 2; row < len(cv.rows); row++ {
				cv.set(row, col, sep, &CurrentTheme.Grid)
			}
		}
	}
	return cv
}

func (m Model) drawMilestones(cv *canvas, positioned []models.PositionedMilestone, settings models.Settings, total int) {
	moving := ""
	if state, ok := m.modal.Move(); ok {
		moving = state.ID
	}
	for i := range positioned {
		p := positioned[i]
		px := m.codec.ToPixel(p.Date, settings)
		if !m.codec.Visible(px) || px >= total {
			continue
		}
		row := 2 + p.StackIndex*slotLines
		glyph := markerStyle(p.Marker)
		label := &CurrentTheme.Label
		switch {
		case p.ID == moving:
			glyph = CurrentTheme.Dim
			label = &CurrentTheme.Dim
		case p.ID == m.selectedID:
			glyph = CurrentTheme.Highlight
			label = &CurrentTheme.Focused
		}
		cv.set(row, px, markerGlyph(p.Marker), &glyph)
		cv.write(row+1, px, ansi.Truncate(p.Name, config.LabelWidth, config.TruncationSuffix), label)
		if p.WeeksDelta != "" {
			cv.write(row+2, px, ansi.Truncate(p.WeeksDelta, config.LabelWidth, config.TruncationSuffix), &CurrentTheme.Delta)
		}
	}
}

// drawGhost marks the drop column while moving.
func (m Model) drawGhost(cv *canvas, depth int) {
	state, ok := m.modal.Move()
	if !ok {
		return
	}
	ms, ok := m.store.Get(state.ID)
	if !ok {
		return
	}
	cv.set(2, state.Column, markerGlyph(ms.Marker), &CurrentTheme.Ghost)
	for row := 3; row < 2+depth*slotLines; row++ {
		cv.set(row, state.Column, "┃", &CurrentTheme.Ghost)
	}
}

func (m Model) renderSelection() string {
	if state, ok := m.modal.Move(); ok {
		target := m.codec.ToDate(state.Column, m.store.Settings())
		return CurrentTheme.Ghost.Render("Drop at " + target.String())
	}
	sel, ok := m.selected()
	if !ok {
		return ""
	}
	parts := []string{CurrentTheme.Focused.Render(sel.Name), sel.Date.String()}
	if sel.WeeksDelta != "" {
		parts = append(parts, sel.WeeksDelta)
	}
	parts = append(parts, markerStyle(sel.Marker).Render(markerGlyph(sel.Marker))+" "+sel.Marker.Label)
	return strings.Join(parts, CurrentTheme.Dim.Render(" · "))
}

func (m Model) hiddenCount(settings models.Settings, total int) int {
	n := 0
	for _, ms := range m.store.Milestones() {
		px := m.codec.ToPixel(ms.Date, settings)
		if !m.codec.Visible(px) || px >= total {
			n++
		}
	}
	return n
}

func (m Model) renderModal() string {
	var body string
	switch m.modal.Active() {
	case ModalForm:
		body = m.renderForm()
	case ModalPopover:
		body = m.renderPopover()
	case ModalConfirmDelete:
		state, _ := m.modal.ConfirmDelete()
		ms, _ := m.store.Get(state.ID)
		body = fmt.Sprintf("Delete %q?\n\n%s yes   %s no",
			ms.Name, CurrentTheme.Focused.Render("[y]"), CurrentTheme.Focused.Render("[n]"))
	case ModalStartYear:
		body = "Start year " + m.inputs.year.View() + "\n" +
			CurrentTheme.Dim.Render(fmt.Sprintf("non-numeric input resets to %d", models.DefaultStartYear))
	default:
		return ""
	}
	return CurrentTheme.Input.BorderForeground(CurrentTheme.Border).Render(body)
}

func (m Model) renderForm() string {
	state, _ := m.modal.Form()
	title := "New milestone"
	if state.EditingID != "" {
		title = "Edit milestone"
	}
	marker, _ := models.MarkerAt(state.MarkerIdx)
	rows := []struct {
		label string
		value string
	}{
		{"Name", m.inputs.name.View()},
		{"Date", m.inputs.date.View()},
		{"Delta", m.inputs.delta.View()},
		{"Marker", "‹ " + markerStyle(marker).Render(markerGlyph(marker)) + " " + marker.Label + " ›"},
	}

	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render(title) + "\n\n")
	for i, r := range rows {
		prefix := "  "
		label := CurrentTheme.Dim.Render(fmt.Sprintf("%-7s", r.label))
		if i == state.Focus {
			prefix = CurrentTheme.Focused.Render("> ")
			label = CurrentTheme.Focused.Render(fmt.Sprintf("%-7s", r.label))
		}
		b.WriteString(prefix + label + r.value + "\n")
	}
	if state.Err != "" {
		b.WriteString("\n" + CurrentTheme.Error.Render(state.Err) + "\n")
	}
	b.WriteString("\n" + CurrentTheme.Dim.Render("[tab] next field  [←/→] marker  [enter] save  [esc] cancel"))
	return b.String()
}

func (m Model) renderPopover() string {
	state, _ := m.modal.Popover()
	ms, ok := m.store.Get(state.ID)
	if !ok {
		return ""
	}
	head := CurrentTheme.Focused.Render(ms.Name) + "  " + ms.Date.String()
	if ms.WeeksDelta != "" {
		head += "  " + CurrentTheme.Delta.Render(ms.WeeksDelta)
	}
	actions := []string{"Edit", "Delete"}
	for i, a := range actions {
		if i == state.Cursor {
			actions[i] = CurrentTheme.Highlight.Render(" " + a + " ")
		} else {
			actions[i] = " " + a + " "
		}
	}
	return head + "\n\n" + strings.Join(actions, "  ")
}

func (m Model) renderFooter() string {
	var lines []string
	width := m.width - CurrentTheme.Base.GetHorizontalFrameSize()
	if width < config.MinTimelineWidth {
		width = config.MinTimelineWidth
	}
	if m.status != "" {
		style := CurrentTheme.Dim
		if m.statusErr {
			style = CurrentTheme.Error
		}
		lines = append(lines, style.Render(ansi.Truncate(m.status, width, config.TruncationSuffix)))
	}
	help := m.keys.HelpFor(m.screen)
	switch {
	case m.modal.Active() == ModalMove:
		help = "[←/→] month [H/L] year [enter] drop [esc] cancel"
	case m.modal.InInputMode():
		help = ""
	case m.modal.IsOpen():
		help = "[enter] choose [esc] close"
	}
	if help != "" {
		lines = append(lines, CurrentTheme.Dim.Render(ansi.Truncate(help, width, config.TruncationSuffix)))
	}
	return "\n" + strings.Join(lines, "\n")
}
