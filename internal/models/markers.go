package models

import "strings"

// MarkerShape enumerates the glyph shapes a milestone can carry.
type MarkerShape string

const (
	ShapeTriangleDown MarkerShape = "TriangleDown"
	ShapeTriangleUp   MarkerShape = "TriangleUp"
	ShapeCircle       MarkerShape = "Circle"
	ShapeRhombus      MarkerShape = "Rhombus"
	ShapeLabel        MarkerShape = "Label"
)

// MarkerColor is one of the fixed palette values.
type MarkerColor string

const (
	ColorGrey        MarkerColor = "#9ca3af"
	ColorLightGreen  MarkerColor = "#86efac"
	ColorDarkGreen   MarkerColor = "#166534"
	ColorLightBlue   MarkerColor = "#93c5fd"
	ColorDarkBlue    MarkerColor = "#1e40af"
	ColorYellow      MarkerColor = "#facc15"
	ColorBeige       MarkerColor = "#e7e5e4"
	ColorRed         MarkerColor = "#ef4444"
	ColorAzure       MarkerColor = "#0ea5e9"
	ColorLabelYellow MarkerColor = "#fef08a"
)

// MarkerDefinition is an immutable shape+color+label glyph from the catalog.
type MarkerDefinition struct {
	Shape MarkerShape `json:"shape"`
	Color MarkerColor `json:"color"`
	Label string      `json:"label"`
}

// RGB decodes the hex color. Unknown values decode as mid grey.
func (c MarkerColor) RGB() (int, int, int) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return 128, 128, 128
	}
	var rgb [3]int
	for i := range rgb {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return 128, 128, 128
		}
		rgb[i] = hi<<4 | lo
	}
	return rgb[0], rgb[1], rgb[2]
}

func hexNibble(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}

var presetMarkers = [...]MarkerDefinition{
	{Shape: ShapeTriangleDown, Color: ColorGrey, Label: "Grey Down Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorLightGreen, Label: "Light Green Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorDarkGreen, Label: "Dark Green Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorLightBlue, Label: "Light Blue Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorDarkBlue, Label: "Dark Blue Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorYellow, Label: "Yellow Triangle"},
	{Shape: ShapeTriangleUp, Color: ColorBeige, Label: "Beige Triangle"},
	{Shape: ShapeCircle, Color: ColorRed, Label: "Red Dot"},
	{Shape: ShapeRhombus, Color: ColorAzure, Label: "Azure Rhombus"},
	{Shape: ShapeLabel, Color: ColorLabelYellow, Label: "Yellow Label"},
}

// PresetMarkers returns a copy of the catalog in display order.
func PresetMarkers() []MarkerDefinition {
	out := make([]MarkerDefinition, len(presetMarkers))
	copy(out, presetMarkers[:])
	return out
}

func DefaultMarker() MarkerDefinition {
	return presetMarkers[0]
}

// MarkerAt returns the catalog entry at a 0-based index.
func MarkerAt(i int) (MarkerDefinition, bool) {
	if i < 0 || i >= len(presetMarkers) {
		return MarkerDefinition{}, false
	}
	return presetMarkers[i], true
}

// MarkerByLabel looks up a catalog entry by label, ignoring case.
func MarkerByLabel(label string) (MarkerDefinition, bool) {
	label = strings.TrimSpace(label)
	for _, m := range presetMarkers {
		if strings.EqualFold(m.Label, label) {
			return m, true
		}
	}
	return MarkerDefinition{}, false
}

// MarkerIndex returns the catalog position of m, or -1.
func MarkerIndex(m MarkerDefinition) int {
	for i, p := range presetMarkers {
		if p == m {
			return i
		}
	}
	return -1
}
