package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ansiReset = "\x1b[0m"

// canvas is a fixed-size grid of styled lines that blocks can be drawn onto
// at cell offsets. It is how chip views, which carry their own positions,
// are composited over message text and how the popover floats over the list.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	blank := strings.Repeat(" ", max(width, 0))
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// canvasFrom wraps an already rendered screen, padding or cutting it to size.
func canvasFrom(s string, width, height int) *canvas {
	c := newCanvas(width, height)
	for i, line := range strings.Split(s, "\n") {
		if i >= height {
			break
		}
		c.lines[i] = fit(line, width)
	}
	return c
}

// place draws block with its top-left cell at (x, y). Parts that fall
// outside the canvas are clipped.
func (c *canvas) place(x, y int, block string) {
	if block == "" {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = splice(c.lines[row], x, line, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// splice overwrites line with seg starting at cell x.
func splice(line string, x int, seg string, width int) string {
	if x < 0 {
		seg = ansi.TruncateLeft(seg, -x, "")
		x = 0
	}
	if x >= width {
		return line
	}
	segW := ansi.StringWidth(seg)
	if x+segW > width {
		seg = ansi.Truncate(seg, width-x, "")
		segW = ansi.StringWidth(seg)
	}
	if segW == 0 {
		return line
	}

	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(line, x+segW, "")
	return left + ansiReset + seg + ansiReset + right
}

// fit pads or cuts a styled line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
