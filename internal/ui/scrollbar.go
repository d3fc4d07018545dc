package ui

import "strings"

// renderScrollbar builds a 1-char-wide vertical scrollbar column with reaction markers.
// Each row maps proportionally to the total content; the thumb shows the visible portion
// and colored markers show where the messages carrying one of your reactions are.
func (m *MessageListModel) renderScrollbar() string {
	height := m.height
	totalLines := m.total
	if totalLines <= 0 || height <= 0 {
		return strings.Repeat(" \n", max(height-1, 0)) + " "
	}

	// Thumb position and size
	thumbSize := min(max(1, height*height/totalLines), height)
	thumbStart := m.offset * height / totalLines
	if thumbStart+thumbSize > height {
		thumbStart = height - thumbSize
	}

	markers := make([]bool, height)
	for i, r := range m.rows {
		if len(m.messages[i].Selected()) == 0 {
			continue
		}
		row := min(r.y*height/totalLines, height-1)
		markers[row] = true
	}

	rows := make([]string, height)
	for i := 0; i < height; i++ {
		inThumb := i >= thumbStart && i < thumbStart+thumbSize
		switch {
		case inThumb && markers[i]:
			rows[i] = scrollbarMarkerStyle.Render("┃")
		case inThumb:
			rows[i] = scrollbarThumbStyle.Render("┃")
		case markers[i]:
			rows[i] = scrollbarMarkerStyle.Render("●")
		default:
			rows[i] = scrollbarTrackStyle.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
