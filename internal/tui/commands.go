package tui

import (
	"time"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/export"
	"github.com/akyairhashvil/timeplan/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---
type exportDoneMsg struct {
	Format export.Format
	Path   string
	Err    error
}

type clearStatusMsg struct{ seq int }

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(config.StatusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// exportCmd renders a snapshot off the update loop.
func exportCmd(dir string, f export.Format, ms []models.Milestone, s models.Settings, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, f, ms, s, now)
		return exportDoneMsg{Format: f, Path: path, Err: err}
	}
}
