package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler func(m Model, key string) (Model, tea.Cmd, bool)

type KeyBinding struct {
	Keys        []string
	Handler     KeyHandler
	Description string
	Screens     []Screen
	Priority    int
}

func (b KeyBinding) AppliesTo(s Screen) bool {
	if len(b.Screens) == 0 {
		return true
	}
	for _, v := range b.Screens {
		if v == s {
			return true
		}
	}
	return false
}

func (b KeyBinding) matches(key string) bool {
	for _, k := range b.Keys {
		if k == key {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m Model, key string) (Model, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.matches(key) && b.AppliesTo(m.screen) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) BindingsFor(s Screen) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesTo(s) {
			out = append(out, b)
		}
	}
	return out
}

// HelpFor renders the described bindings of screen s as "[key]desc" pairs.
func (r *HandlerRegistry) HelpFor(s Screen) string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range r.BindingsFor(s) {
		if b.Description == "" || len(b.Keys) == 0 {
			continue
		}
		if seen[b.Keys[0]] {
			continue
		}
		seen[b.Keys[0]] = true
		parts = append(parts, "["+b.Keys[0]+"]"+b.Description)
	}
	return strings.Join(parts, " ")
}

func defaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	home := []Screen{ScreenHome}
	tl := []Screen{ScreenTimeline}

	r.Register(KeyBinding{Keys: []string{"q"}, Handler: handleQuit, Description: "quit"})
	r.Register(KeyBinding{Keys: []string{"n", "a"}, Handler: handleNew, Description: "new"})

	r.Register(KeyBinding{Keys: []string{"t", "enter"}, Handler: handleOpenTimeline, Description: "timeline", Screens: home})

	r.Register(KeyBinding{Keys: []string{"esc"}, Handler: handleHome, Description: "home", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"right", "l", "tab"}, Handler: handleSelectNext, Description: "next", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"left", "h", "shift+tab"}, Handler: handleSelectPrev, Screens: tl})
	r.Register(KeyBinding{Keys: []string{"enter"}, Handler: handleOpenPopover, Description: "actions", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"e"}, Handler: handleEdit, Description: "edit", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"d"}, Handler: handleDelete, Description: "delete", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"m"}, Handler: handleMove, Description: "move", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"y"}, Handler: handleStartYear, Description: "start year", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"]", "pgdown"}, Handler: handleScrollRight, Screens: tl})
	r.Register(KeyBinding{Keys: []string{"[", "pgup"}, Handler: handleScrollLeft, Screens: tl})
	r.Register(KeyBinding{Keys: []string{"x"}, Handler: handleExportXLSX, Description: "xlsx", Screens: tl})
	r.Register(KeyBinding{Keys: []string{"p"}, Handler: handleExportPDF, Description: "pdf", Screens: tl})
	return r
}
