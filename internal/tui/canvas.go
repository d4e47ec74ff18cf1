package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// cell is one terminal column. A wide rune occupies its own cell and
// leaves an empty continuation cell after it.
type cell struct {
	text  string
	style *lipgloss.Style
}

// canvas is a fixed grid of cells that is cropped to the viewport when
// rendered.
type canvas struct {
	width int
	rows  [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, rows: make([][]cell, height)}
	for i := range c.rows {
		row := make([]cell, width)
		for j := range row {
			row[j] = cell{text: " "}
		}
		c.rows[i] = row
	}
	return c
}

func (c *canvas) set(row, col int, text string, style *lipgloss.Style) {
	if row < 0 || row >= len(c.rows) || col < 0 || col >= c.width {
		return
	}
	c.rows[row][col] = cell{text: text, style: style}
}

// write places text starting at col and returns the column after it.
func (c *canvas) write(row, col int, text string, style *lipgloss.Style) int {
	for _, r := range text {
		s := string(r)
		w := ansi.StringWidth(s)
		if w == 0 {
			continue
		}
		c.set(row, col, s, style)
		for k := 1; k < w; k++ {
			c.set(row, col+k, "", nil)
		}
		col += w
	}
	return col
}

// line renders columns [from, to) of row.
func (c *canvas) line(row, from, to int) string {
	var b strings.Builder
	cells := c.rows[row]
	for col := from; col < to; col++ {
		if col < 0 || col >= c.width {
			b.WriteByte(' ')
			continue
		}
		cl := cells[col]
		text := cl.text
		switch {
		case text == "" && col == from:
			text = " " // crop landed inside a wide rune
		case text == "":
			continue
		case col+1 == to && col+1 < c.width && cells[col+1].text == "":
			text = " " // wide rune would overflow the viewport
		}
		if cl.style != nil {
			b.WriteString(cl.style.Render(text))
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}
