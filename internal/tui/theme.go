package tui

import (
	"github.com/akyairhashvil/timeplan/internal/models"
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Year      lipgloss.Style
	StartYear lipgloss.Style
	Month     lipgloss.Style
	Grid      lipgloss.Style
	Label     lipgloss.Style
	Delta     lipgloss.Style
	Ghost     lipgloss.Style
	Input     lipgloss.Style
	Error     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Year:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		StartYear: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Underline(true),
		Month:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Grid:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Delta:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Ghost:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                            // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true), // Cyan
		Year:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		StartYear: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true), // Pink
		Month:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Grid:      lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Delta:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Italic(true),
		Ghost:     lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("212")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

// markerGlyphs maps each shape to its terminal glyph.
var markerGlyphs = map[models.MarkerShape]string{
	models.ShapeTriangleDown: "▼",
	models.ShapeTriangleUp:   "▲",
	models.ShapeCircle:       "●",
	models.ShapeRhombus:      "◆",
	models.ShapeLabel:        "▬",
}

func markerGlyph(m models.MarkerDefinition) string {
	if g, ok := markerGlyphs[m.Shape]; ok {
		return g
	}
	return "▼"
}

func markerStyle(m models.MarkerDefinition) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(m.Color))).Bold(true)
}
