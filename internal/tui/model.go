// Package tui is the terminal front end: a home screen and a horizontally
// scrolling timeline with create, edit, delete and move interactions.
package tui

import (
	"context"
	"time"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/akyairhashvil/timeplan/internal/store"
	"github.com/akyairhashvil/timeplan/internal/timeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Screen is the top-level view.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenTimeline
)

// Form field order.
const (
	fieldName = iota
	fieldDate
	fieldDelta
	fieldMarker
	fieldCount
)

// Options configures NewModel. Zero values pick defaults.
type Options struct {
	ExportDir  string
	MonthCells int
	Theme      string
	Logger     zerolog.Logger
	Now        func() time.Time
}

// InputState stores the text input models.
type InputState struct {
	name  textinput.Model
	date  textinput.Model
	delta textinput.Model
	year  textinput.Model
}

func newInputState() InputState {
	name := textinput.New()
	name.Placeholder = "Milestone name"
	name.CharLimit = config.MaxNameLength
	name.Width = 40

	date := textinput.New()
	date.Placeholder = "YYYY-MM"
	date.CharLimit = 10
	date.Width = 12

	delta := textinput.New()
	delta.Placeholder = "+2w"
	delta.CharLimit = config.MaxDeltaLength
	delta.Width = 12

	year := textinput.New()
	year.Placeholder = "2025"
	year.CharLimit = 4
	year.Width = 6

	return InputState{name: name, date: date, delta: delta, year: year}
}

// failureQueue collects persistence failures reported by the store while an
// update is running. It is drained before the update returns.
type failureQueue struct {
	errs []error
}

func (q *failureQueue) push(err error) { q.errs = append(q.errs, err) }

func (q *failureQueue) drain() []error {
	out := q.errs
	q.errs = nil
	return out
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	store    *store.Store
	codec    timeline.Codec
	keys     *HandlerRegistry
	log      zerolog.Logger
	now      func() time.Time
	failures *failureQueue

	screen     Screen
	selectedID string
	scroll     int
	modal      ModalManager
	inputs     InputState
	exportDir  string

	status    string
	statusErr bool
	statusSeq int
	width     int
	height    int
	quitting  bool
}

func NewModel(ctx context.Context, st *store.Store, opts Options) Model {
	cells := opts.MonthCells
	if cells < 1 {
		cells = config.MonthCells
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	failures := &failureQueue{}
	st.SetNotifier(failures.push)

	return Model{
		ctx:       ctx,
		store:     st,
		codec:     timeline.Codec{MonthWidth: cells},
		keys:      defaultRegistry(),
		log:       opts.Logger.With().Str("component", "tui").Logger(),
		now:       opts.Now,
		failures:  failures,
		screen:    ScreenHome,
		inputs:    newInputState(),
		exportDir: opts.ExportDir,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
