package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/export"
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/akyairhashvil/timeplan/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ensureSelectionVisible()
		return m, nil

	case exportDoneMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Str("format", string(msg.Format)).Msg("export failed")
			return m.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), true)
		}
		m.log.Info().Str("format", string(msg.Format)).Str("path", msg.Path).Msg("export written")
		return m.setStatus("Exported "+msg.Path, false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		next, cmd := m.handleKey(msg)
		return next.reportFailures(cmd)
	}

	return m.updateFocusedInput(msg)
}

// reportFailures surfaces persistence errors raised during the update as a
// status line. The session carries on with the in-memory state.
func (m Model) reportFailures(cmd tea.Cmd) (Model, tea.Cmd) {
	errs := m.failures.drain()
	if len(errs) == 0 {
		return m, cmd
	}
	next, statusCmd := m.setStatus(fmt.Sprintf("Save failed: %v", errs[len(errs)-1]), true)
	return next, tea.Batch(cmd, statusCmd)
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.status, m.statusErr = text, isErr
	return m, clearStatusAfter(m.statusSeq)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.modal.Active() {
	case ModalForm:
		return m.updateForm(msg)
	case ModalStartYear:
		return m.updateStartYear(msg)
	case ModalPopover:
		return m.updatePopover(msg)
	case ModalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case ModalMove:
		return m.updateMove(msg)
	}
	next, cmd, _ := m.keys.Handle(m, msg.String())
	return next, cmd
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modal.Active() {
	case ModalForm:
		state, _ := m.modal.Form()
		switch state.Focus {
		case fieldName:
			m.inputs.name, cmd = m.inputs.name.Update(msg)
		case fieldDate:
			m.inputs.date, cmd = m.inputs.date.Update(msg)
		case fieldDelta:
			m.inputs.delta, cmd = m.inputs.delta.Update(msg)
		}
	case ModalStartYear:
		m.inputs.year, cmd = m.inputs.year.Update(msg)
	}
	return m, cmd
}

// --- Registry handlers ---

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	m.quitting = true
	return m, tea.Quit, true
}

func handleNew(m Model, _ string) (Model, tea.Cmd, bool) {
	next, cmd := m.openForm(nil)
	return next, cmd, true
}

func handleOpenTimeline(m Model, _ string) (Model, tea.Cmd, bool) {
	m.screen = ScreenTimeline
	if _, ok := m.selected(); !ok {
		if order := m.visibleOrder(); len(order) > 0 {
			m.selectedID = order[0].ID
		}
	}
	m.ensureSelectionVisible()
	return m, nil, true
}

func handleHome(m Model, _ string) (Model, tea.Cmd, bool) {
	m.screen = ScreenHome
	return m, nil, true
}

func handleSelectNext(m Model, _ string) (Model, tea.Cmd, bool) {
	m.cycleSelection(1)
	return m, nil, true
}

func handleSelectPrev(m Model, _ string) (Model, tea.Cmd, bool) {
	m.cycleSelection(-1)
	return m, nil, true
}

func handleOpenPopover(m Model, _ string) (Model, tea.Cmd, bool) {
	sel, ok := m.selected()
	if !ok {
		return m, nil, false
	}
	m.modal.Open(&PopoverState{ID: sel.ID})
	return m, nil, true
}

func handleEdit(m Model, _ string) (Model, tea.Cmd, bool) {
	sel, ok := m.selected()
	if !ok {
		return m, nil, false
	}
	next, cmd := m.openForm(&sel.Milestone)
	return next, cmd, true
}

func handleDelete(m Model, _ string) (Model, tea.Cmd, bool) {
	sel, ok := m.selected()
	if !ok {
		return m, nil, false
	}
	m.modal.Open(&ConfirmDeleteState{ID: sel.ID})
	return m, nil, true
}

func handleMove(m Model, _ string) (Model, tea.Cmd, bool) {
	sel, ok := m.selected()
	if !ok {
		return m, nil, false
	}
	m.modal.Open(&MoveState{ID: sel.ID, Column: m.codec.ToPixel(sel.Date, m.store.Settings())})
	return m, nil, true
}

func handleStartYear(m Model, _ string) (Model, tea.Cmd, bool) {
	m.inputs.year.SetValue(strconv.Itoa(m.store.Settings().StartYear))
	m.inputs.year.CursorEnd()
	m.modal.Open(&StartYearState{})
	return m, m.inputs.year.Focus(), true
}

func handleScrollRight(m Model, _ string) (Model, tea.Cmd, bool) {
	m.scrollBy(12 * m.codec.MonthWidth)
	return m, nil, true
}

func handleScrollLeft(m Model, _ string) (Model, tea.Cmd, bool) {
	m.scrollBy(-12 * m.codec.MonthWidth)
	return m, nil, true
}

func handleExportXLSX(m Model, _ string) (Model, tea.Cmd, bool) {
	next, cmd := m.startExport(export.FormatXLSX)
	return next, cmd, true
}

func handleExportPDF(m Model, _ string) (Model, tea.Cmd, bool) {
	next, cmd := m.startExport(export.FormatPDF)
	return next, cmd, true
}

func (m Model) startExport(f export.Format) (Model, tea.Cmd) {
	if m.exportDir == "" {
		return m.setStatus("No export directory configured", true)
	}
	run := exportCmd(m.exportDir, f, m.store.Milestones(), m.store.Settings(), m.now())
	next, statusCmd := m.setStatus(fmt.Sprintf("Exporting %s...", f), false)
	return next, tea.Batch(statusCmd, run)
}

// --- Form ---

func (m Model) openForm(existing *models.Milestone) (Model, tea.Cmd) {
	state := &FormState{}
	if existing != nil {
		state.EditingID = existing.ID
		state.MarkerIdx = models.MarkerIndex(existing.Marker)
		if state.MarkerIdx < 0 {
			state.MarkerIdx = 0
		}
		m.inputs.name.SetValue(existing.Name)
		m.inputs.date.SetValue(existing.Date.String())
		m.inputs.delta.SetValue(existing.WeeksDelta)
	} else {
		m.inputs.name.SetValue("")
		m.inputs.date.SetValue(m.now().Format("2006-01"))
		m.inputs.delta.SetValue("")
	}
	m.modal.Open(state)
	return m, m.focusField(state, fieldName)
}

func (m *Model) focusField(state *FormState, field int) tea.Cmd {
	state.Focus = util.FloorMod(field, fieldCount)
	m.inputs.name.Blur()
	m.inputs.date.Blur()
	m.inputs.delta.Blur()
	switch state.Focus {
	case fieldName:
		return m.inputs.name.Focus()
	case fieldDate:
		return m.inputs.date.Focus()
	case fieldDelta:
		return m.inputs.delta.Focus()
	}
	return nil
}

func (m Model) closeModal() Model {
	m.modal.Close()
	m.inputs.name.Blur()
	m.inputs.date.Blur()
	m.inputs.delta.Blur()
	m.inputs.year.Blur()
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	state, _ := m.modal.Form()
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil
	case "tab", "down":
		return m, m.focusField(state, state.Focus+1)
	case "shift+tab", "up":
		return m, m.focusField(state, state.Focus-1)
	case "enter":
		return m.submitForm(state)
	case "left", "right":
		if state.Focus == fieldMarker {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			state.MarkerIdx = util.FloorMod(state.MarkerIdx+step, len(models.PresetMarkers()))
			return m, nil
		}
	}
	next, cmd := m.updateFocusedInput(msg)
	return next.(Model), cmd
}

func (m Model) submitForm(state *FormState) (Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs.name.Value())
	if name == "" {
		state.Err = "Name is required"
		return m, m.focusField(state, fieldName)
	}
	date, err := models.ParseDate(m.inputs.date.Value())
	if err != nil {
		state.Err = "Date must be YYYY-MM"
		return m, m.focusField(state, fieldDate)
	}
	marker, ok := models.MarkerAt(state.MarkerIdx)
	if !ok {
		marker = models.DefaultMarker()
	}
	ms := models.Milestone{
		ID:         state.EditingID,
		Name:       name,
		Date:       date,
		WeeksDelta: strings.TrimSpace(m.inputs.delta.Value()),
		Marker:     marker,
	}

	if state.EditingID == "" {
		created, err := m.store.Create(m.ctx, ms)
		if err != nil {
			state.Err = err.Error()
			return m, nil
		}
		m.selectedID = created.ID
	} else if err := m.store.Update(m.ctx, ms); err != nil {
		state.Err = err.Error()
		return m, nil
	} else {
		m.selectedID = ms.ID
	}

	m = m.closeModal()
	m.screen = ScreenTimeline
	m.ensureSelectionVisible()
	return m.setStatus("Saved "+name, false)
}

// --- Start year ---

// parseStartYear falls back to the default year for anything non-numeric.
func parseStartYear(s string) int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return models.DefaultStartYear
	}
	return year
}

func (m Model) updateStartYear(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil
	case "enter":
		settings := m.store.Settings()
		settings.StartYear = parseStartYear(m.inputs.year.Value())
		m = m.closeModal()
		if err := m.store.UpdateSettings(m.ctx, settings); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.scroll = 0
		m.ensureSelectionVisible()
		return m, nil
	}
	next, cmd := m.updateFocusedInput(msg)
	return next.(Model), cmd
}

// --- Popover and delete ---

func (m Model) updatePopover(msg tea.KeyMsg) (Model, tea.Cmd) {
	state, _ := m.modal.Popover()
	ms, ok := m.store.Get(state.ID)
	if !ok {
		return m.closeModal(), nil
	}
	switch msg.String() {
	case "esc", "q":
		return m.closeModal(), nil
	case "left", "right", "up", "down", "tab", "shift+tab":
		state.Cursor = 1 - state.Cursor
	case "e":
		return m.closeModal().openForm(&ms)
	case "d":
		m.modal.Open(&ConfirmDeleteState{ID: ms.ID})
	case "enter":
		if state.Cursor == 0 {
			return m.closeModal().openForm(&ms)
		}
		m.modal.Open(&ConfirmDeleteState{ID: ms.ID})
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (Model, tea.Cmd) {
	state, _ := m.modal.ConfirmDelete()
	switch msg.String() {
	case "y", "enter":
		ms, _ := m.store.Get(state.ID)
		neighbor := m.neighborOf(state.ID)
		m = m.closeModal()
		if !m.store.Delete(m.ctx, state.ID) {
			return m, nil
		}
		if m.selectedID == state.ID {
			m.selectedID = neighbor
		}
		return m.setStatus("Deleted "+ms.Name, false)
	case "n", "esc":
		return m.closeModal(), nil
	}
	return m, nil
}

// --- Move ---

func (m Model) updateMove(msg tea.KeyMsg) (Model, tea.Cmd) {
	state, _ := m.modal.Move()
	month := m.codec.MonthWidth
	switch msg.String() {
	case "left", "h":
		state.Column -= month
	case "right", "l":
		state.Column += month
	case "H", "shift+left":
		state.Column -= 12 * month
	case "L", "shift+right":
		state.Column += 12 * month
	case "esc":
		m = m.closeModal()
		m.ensureSelectionVisible()
		return m.setStatus("Move cancelled", false)
	case "enter":
		date := m.codec.ToDate(state.Column, m.store.Settings())
		ms, _ := m.store.Get(state.ID)
		m = m.closeModal()
		if err := m.store.Move(m.ctx, state.ID, date); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.selectedID = state.ID
		m.ensureSelectionVisible()
		return m.setStatus(fmt.Sprintf("Moved %s to %s", ms.Name, date), false)
	default:
		return m, nil
	}
	m.ensureColumnVisible(state.Column)
	return m, nil
}

// --- Selection and scrolling ---

// visibleOrder lists the milestones drawn on the grid, left to right and
// top to bottom.
func (m Model) visibleOrder() []models.PositionedMilestone {
	settings := m.store.Settings()
	total := m.codec.Width(settings)
	var out []models.PositionedMilestone
	for _, p := range m.store.Positioned() {
		px := m.codec.ToPixel(p.Date, settings)
		if m.codec.Visible(px) && px < total {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := m.codec.ToPixel(out[i].Date, settings), m.codec.ToPixel(out[j].Date, settings)
		if pi != pj {
			return pi < pj
		}
		return out[i].StackIndex < out[j].StackIndex
	})
	return out
}

func (m Model) selected() (models.PositionedMilestone, bool) {
	if m.selectedID == "" {
		return models.PositionedMilestone{}, false
	}
	for _, p := range m.visibleOrder() {
		if p.ID == m.selectedID {
			return p, true
		}
	}
	return models.PositionedMilestone{}, false
}

func (m *Model) cycleSelection(delta int) {
	order := m.visibleOrder()
	if len(order) == 0 {
		m.selectedID = ""
		return
	}
	idx := -1
	for i, p := range order {
		if p.ID == m.selectedID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(order) - 1
	case idx < 0:
		idx = 0
	default:
		idx = util.FloorMod(idx+delta, len(order))
	}
	m.selectedID = order[idx].ID
	m.ensureSelectionVisible()
}

// neighborOf picks the milestone to select once id is gone.
func (m Model) neighborOf(id string) string {
	order := m.visibleOrder()
	for i, p := range order {
		if p.ID != id {
			continue
		}
		if i+1 < len(order) {
			return order[i+1].ID
		}
		if i > 0 {
			return order[i-1].ID
		}
	}
	return ""
}

func (m Model) viewportWidth() int {
	w := m.width - config.TimelineGutter - CurrentTheme.Base.GetHorizontalFrameSize()
	if w < config.MinTimelineWidth {
		w = config.MinTimelineWidth
	}
	return w
}

func (m *Model) clampScroll() {
	maxScroll := m.codec.Width(m.store.Settings()) - m.viewportWidth()
	if maxScroll < 0 {
		maxScroll = 0
	}
	m.scroll = util.Clamp(m.scroll, 0, maxScroll)
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) ensureColumnVisible(col int) {
	view := m.viewportWidth()
	switch {
	case col < m.scroll:
		m.scroll = col - m.codec.MonthWidth
	case col >= m.scroll+view:
		m.scroll = col - view + m.codec.MonthWidth + 1
	}
	m.clampScroll()
}

func (m *Model) ensureSelectionVisible() {
	if sel, ok := m.selected(); ok {
		m.ensureColumnVisible(m.codec.ToPixel(sel.Date, m.store.Settings()))
		return
	}
	m.clampScroll()
}
