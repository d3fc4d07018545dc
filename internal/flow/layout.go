// Package flow packs sized chips into wrapped rows.
//
// Packing is greedy left to right with one extra rule: a row is closed early
// so that it never reaches the chip count of the row above it. The result is
// a tapering wrap (4, 3, 2, 1, 1, ...) rather than a ragged one. The taper is
// part of the visual design and must not be relaxed to plain width wrapping.
package flow

import (
	"fmt"
	"slices"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/geom"
)

// Result is one layout pass. Chips carry their assigned Rect.
type Result struct {
	Rows  [][]chip.Chip
	Size  geom.Size
	inset int
}

// Measure packs chips into rows no wider than maxWidth. inset is the gap
// between chips and between rows. A single chip wider than maxWidth still
// gets a row of its own.
func Measure(chips []chip.Chip, maxWidth, inset int) Result {
	if len(chips) == 0 {
		return Result{inset: inset}
	}

	var rows [][]chip.Chip
	var open []chip.Chip
	current := 0
	for _, c := range chips {
		current += c.MinSize.Width + inset
		overflow := current-inset > maxWidth
		taper := len(rows) > 0 && len(open)+1 >= len(rows[len(rows)-1])
		if len(open) > 0 && (overflow || taper) {
			rows = append(rows, open)
			open = nil
			current = c.MinSize.Width + inset
		}
		open = append(open, c)
	}
	rows = append(rows, open)

	packed := 0
	for _, row := range rows {
		packed += len(row)
	}
	if packed != len(chips) {
		panic(fmt.Sprintf("flow: packed %d chips, want %d", packed, len(chips)))
	}

	return place(rows, inset)
}

// place assigns rects top-down, left to right. Row height is the tallest
// chip plus the inset; the trailing inset is dropped from the total.
func place(rows [][]chip.Chip, inset int) Result {
	res := Result{Rows: make([][]chip.Chip, len(rows)), inset: inset}
	y := 0
	for i, row := range rows {
		placed := make([]chip.Chip, len(row))
		x := 0
		rowHeight := 0
		for j, c := range row {
			c.Rect = geom.Rect{X: x, Y: y, Width: c.MinSize.Width, Height: c.MinSize.Height}
			placed[j] = c
			x += c.MinSize.Width + inset
			rowHeight = max(rowHeight, c.MinSize.Height)
		}
		res.Rows[i] = placed
		if right := x - inset; right > res.Size.Width {
			res.Size.Width = right
		}
		y += rowHeight + inset
	}
	res.Size.Height = y - inset
	return res
}

// Reversed returns the same rows in bottom-up order, re-placed. Popovers
// attached above their anchor use it so the first row stays nearest.
func (r Result) Reversed() Result {
	if len(r.Rows) == 0 {
		return r
	}
	rows := slices.Clone(r.Rows)
	slices.Reverse(rows)
	return place(rows, r.inset)
}

// Chips flattens the rows in reading order.
func (r Result) Chips() []chip.Chip {
	var out []chip.Chip
	for _, row := range r.Rows {
		out = append(out, row...)
	}
	return out
}

// Len is the number of chips laid out.
func (r Result) Len() int {
	n := 0
	for _, row := range r.Rows {
		n += len(row)
	}
	return n
}

// RowCounts returns the chip count of each row.
func (r Result) RowCounts() []int {
	out := make([]int, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = len(row)
	}
	return out
}

// ChipAt returns the chip whose rect contains p (layout coordinates).
func (r Result) ChipAt(p geom.Point) (chip.Chip, bool) {
	for _, row := range r.Rows {
		for _, c := range row {
			if c.Rect.Contains(p) {
				return c, true
			}
		}
	}
	return chip.Chip{}, false
}

// RectFor returns the layout rect of the chip with the given stable id.
func (r Result) RectFor(id string) (geom.Rect, bool) {
	for _, row := range r.Rows {
		for _, c := range row {
			if c.StableID == id {
				return c.Rect, true
			}
		}
	}
	return geom.Rect{}, false
}
