package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
	"github.com/shhac/reactea/internal/reaction"
)

const (
	gutterWidth    = 2
	scrollbarWidth = 1
	anchorGlyph    = "[+]"
	anchorWidth    = 3
)

// rowLayout is one message's slot in the list, in content lines. Offsets
// inside the row (anchor, bar) are relative to the row's first line.
type rowLayout struct {
	id      string
	y       int
	height  int // including the blank separator
	text    []string
	service bool
	anchor  geom.Rect
	barY    int
}

// MessageListModel renders the conversation and is the hover controller's
// Container and Source. It is held by pointer: the controller keeps a
// reference to it.
type MessageListModel struct {
	width  int
	height int
	top    int // screen row of the first list line

	me       string
	messages []chat.Message
	rows     []rowLayout
	index    map[string]int
	total    int // content lines

	offset    int
	cursor    int
	selecting bool
	selected  map[string]bool
	highlight string

	bars     map[string]*reactionBar
	style    chipStyle
	quick    string
	duration time.Duration

	md        MarkdownRenderer
	bodyCache map[string]string
	bodyWidth int
}

// NewMessageListModel creates an empty list. d is the chip animation length.
func NewMessageListModel(theme chip.Theme, mode chip.Mode, d time.Duration) *MessageListModel {
	return &MessageListModel{
		index:     make(map[string]int),
		selected:  make(map[string]bool),
		bars:      make(map[string]*reactionBar),
		bodyCache: make(map[string]string),
		style: chipStyle{
			mode:    mode,
			theme:   theme,
			catalog: reaction.DefaultSnapshot(),
		},
		duration: d,
	}
}

// SetSize sets the list area. top is the screen row the list starts on.
func (m *MessageListModel) SetSize(width, height, top int) {
	m.width = width
	m.height = height
	m.top = top
	m.relayout()
}

// SetMe marks whose messages are the local user's.
func (m *MessageListModel) SetMe(id string) { m.me = id }

// SetMessages replaces the conversation. The first load starts at the
// newest message.
func (m *MessageListModel) SetMessages(msgs []chat.Message) {
	first := len(m.messages) == 0
	m.messages = msgs
	m.bodyCache = make(map[string]string)
	m.relayout()
	if first && len(msgs) > 0 {
		m.cursor = len(msgs) - 1
		m.offset = m.maxOffset()
	}
	m.clampCursor()
}

// UpdateMessage swaps in a fresh copy of one message. Its reaction bar is
// re-laid-out and the bar's views animate into the new state.
func (m *MessageListModel) UpdateMessage(msg chat.Message) bool {
	i, ok := m.index[msg.ID]
	if !ok {
		return false
	}
	if m.messages[i].Body != msg.Body {
		delete(m.bodyCache, msg.ID)
	}
	m.messages[i] = msg
	m.relayout()
	return true
}

// SetCatalog swaps the available reactions. Chips for values the new
// catalogue drops keep their raw value as the icon.
func (m *MessageListModel) SetCatalog(snap reaction.Snapshot) {
	m.style.catalog = snap
	m.relayout()
}

func (m *MessageListModel) SetPremium(premium bool) {
	m.style.premium = premium
	m.relayout()
}

func (m *MessageListModel) SetQuick(value string) { m.quick = value }

func (m *MessageListModel) SetChipMode(mode chip.Mode) {
	m.style.mode = mode
	m.relayout()
}

func (m *MessageListModel) ChipMode() chip.Mode { return m.style.mode }

func (m *MessageListModel) Catalog() reaction.Snapshot { return m.style.catalog }

// SetHighlight marks the row whose anchor the popover is attached to.
func (m *MessageListModel) SetHighlight(id string) { m.highlight = id }

func (m *MessageListModel) Messages() []chat.Message { return m.messages }

// Message looks up a message by id.
func (m *MessageListModel) Message(id string) (chat.Message, bool) {
	i, ok := m.index[id]
	if !ok {
		return chat.Message{}, false
	}
	return m.messages[i], true
}

func (m *MessageListModel) textWidth() int {
	return max(m.width-gutterWidth-scrollbarWidth, 1)
}

// relayout recomputes every row and reconciles the reaction bars.
func (m *MessageListModel) relayout() {
	textW := m.textWidth()
	bodyW := max(textW-anchorWidth-1, 1)
	if bodyW != m.bodyWidth {
		m.bodyWidth = bodyW
		m.bodyCache = make(map[string]string)
	}

	m.rows = m.rows[:0]
	m.index = make(map[string]int, len(m.messages))
	live := make(map[string]bool, len(m.messages))
	y := 0
	for i, msg := range m.messages {
		m.index[msg.ID] = i
		live[msg.ID] = true
		r := rowLayout{id: msg.ID, y: y}
		if !msg.Reactable {
			r.service = true
			r.text = []string{lipgloss.PlaceHorizontal(textW, lipgloss.Center, serviceStyle.Render(msg.Body))}
			r.height = 2
		} else {
			r.text = append([]string{m.header(msg)}, strings.Split(m.body(msg), "\n")...)
			last := r.text[len(r.text)-1]
			ax := min(lipgloss.Width(last)+1, textW-anchorWidth)
			r.anchor = geom.R(gutterWidth+max(ax, 0), len(r.text)-1, anchorWidth, 1)
			r.barY = len(r.text)

			bar := m.bars[msg.ID]
			if bar == nil {
				bar = newReactionBar(m.duration)
				m.bars[msg.ID] = bar
			}
			bar.apply(m.style.barChips(msg), textW, m.style.theme.InnerInset)
			r.height = len(r.text) + bar.height() + 1
		}
		m.rows = append(m.rows, r)
		y += r.height
	}
	m.total = y

	for id := range m.bars {
		if !live[id] {
			delete(m.bars, id)
		}
	}
	m.offset = clamp(m.offset, 0, m.maxOffset())
}

func (m *MessageListModel) header(msg chat.Message) string {
	style := authorStyle
	if msg.Author.ID == m.me {
		style = ownAuthorStyle
	}
	return style.Render(msg.Author.Name) + " " + timestampStyle.Render(msg.SentAt.Format("15:04"))
}

func (m *MessageListModel) body(msg chat.Message) string {
	if b, ok := m.bodyCache[msg.ID]; ok {
		return b
	}
	var b string
	if msg.Markdown {
		b = m.md.RenderMarkdown(msg.Body, m.bodyWidth)
	} else {
		b = wordWrap(msg.Body, m.bodyWidth)
	}
	m.bodyCache[msg.ID] = b
	return b
}

// -- Scrolling and cursor --

func (m *MessageListModel) maxOffset() int { return max(m.total-m.height, 0) }

// ScrollBy moves the window by n lines and reports whether it moved.
func (m *MessageListModel) ScrollBy(n int) bool {
	next := clamp(m.offset+n, 0, m.maxOffset())
	if next == m.offset {
		return false
	}
	m.offset = next
	return true
}

func (m *MessageListModel) ScrollToTop() bool { return m.ScrollBy(-m.offset) }

func (m *MessageListModel) ScrollToBottom() bool { return m.ScrollBy(m.maxOffset() - m.offset) }

func (m *MessageListModel) Offset() int { return m.offset }

// MoveCursor moves the cursor by delta messages and scrolls it into view.
// It reports whether the window scrolled.
func (m *MessageListModel) MoveCursor(delta int) bool {
	if len(m.rows) == 0 {
		return false
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
	return m.revealCursor()
}

func (m *MessageListModel) CursorToTop() bool { return m.MoveCursor(-len(m.rows)) }

func (m *MessageListModel) CursorToBottom() bool { return m.MoveCursor(len(m.rows)) }

func (m *MessageListModel) revealCursor() bool {
	r := m.rows[m.cursor]
	before := m.offset
	if r.y < m.offset {
		m.offset = r.y
	} else if r.y+r.height > m.offset+m.height {
		m.offset = min(r.y, r.y+r.height-m.height)
	}
	m.offset = clamp(m.offset, 0, m.maxOffset())
	return m.offset != before
}

func (m *MessageListModel) clampCursor() {
	m.cursor = clamp(m.cursor, 0, max(len(m.rows)-1, 0))
}

// Cursor returns the id of the message under the keyboard cursor.
func (m *MessageListModel) Cursor() (string, bool) {
	if len(m.rows) == 0 {
		return "", false
	}
	return m.rows[m.cursor].id, true
}

// SetCursor moves the cursor to a message without scrolling.
func (m *MessageListModel) SetCursor(id string) {
	if i, ok := m.index[id]; ok {
		m.cursor = i
	}
}

// -- Selection mode --

func (m *MessageListModel) Selecting() bool { return m.selecting }

// SetSelecting enters or leaves multi-select. Leaving clears the selection.
func (m *MessageListModel) SetSelecting(on bool) {
	m.selecting = on
	if !on {
		m.selected = make(map[string]bool)
	}
}

// ToggleSelected flips a message's selection while selecting.
func (m *MessageListModel) ToggleSelected(id string) {
	if !m.selecting {
		return
	}
	if _, ok := m.index[id]; !ok {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

func (m *MessageListModel) SelectedCount() int { return len(m.selected) }

// -- Animation --

// Advance steps every bar's transitions and reports whether any is still
// running.
func (m *MessageListModel) Advance(dt time.Duration) bool {
	running := false
	for _, b := range m.bars {
		if b.rec.Advance(dt) {
			running = true
		}
	}
	return running
}

func (m *MessageListModel) Animating() bool {
	for _, b := range m.bars {
		if b.rec.Animating() {
			return true
		}
	}
	return false
}

// PlayEffect flashes a chip in a message's bar.
func (m *MessageListModel) PlayEffect(id, value string) {
	if b, ok := m.bars[id]; ok {
		b.rec.PlayEffect(value)
	}
}

// -- Geometry --

func (m *MessageListModel) rowScreenY(r rowLayout) int { return m.top + r.y - m.offset }

// rendered reports whether any line of the row is inside the window. Rows
// outside it have no live view as far as the hover controller is concerned.
func (m *MessageListModel) rendered(r rowLayout) bool {
	y := r.y - m.offset
	return y+r.height > 0 && y < m.height
}

func (m *MessageListModel) row(id hover.RowID) (rowLayout, bool) {
	i, ok := m.index[string(id)]
	if !ok || i >= len(m.rows) {
		return rowLayout{}, false
	}
	return m.rows[i], true
}

// Viewport is the list area in screen cells, scrollbar excluded.
func (m *MessageListModel) Viewport() geom.Rect {
	return geom.R(0, m.top, m.width-scrollbarWidth, m.height)
}

func (m *MessageListModel) RowAt(p geom.Point) (hover.RowID, bool) {
	if !m.Viewport().Contains(p) {
		return "", false
	}
	cy := p.Y - m.top + m.offset
	for _, r := range m.rows {
		if cy >= r.y && cy < r.y+r.height {
			return hover.RowID(r.id), true
		}
	}
	return "", false
}

func (m *MessageListModel) RowAbove(id hover.RowID) (hover.RowID, bool) {
	i, ok := m.index[string(id)]
	if !ok || i == 0 {
		return "", false
	}
	return hover.RowID(m.rows[i-1].id), true
}

func (m *MessageListModel) RowBelow(id hover.RowID) (hover.RowID, bool) {
	i, ok := m.index[string(id)]
	if !ok || i+1 >= len(m.rows) {
		return "", false
	}
	return hover.RowID(m.rows[i+1].id), true
}

func (m *MessageListModel) RowRect(id hover.RowID) (geom.Rect, bool) {
	r, ok := m.row(id)
	if !ok || !m.rendered(r) {
		return geom.Rect{}, false
	}
	return geom.R(0, m.rowScreenY(r), m.width-scrollbarWidth, r.height), true
}

func (m *MessageListModel) AnchorRect(id hover.RowID) (geom.Rect, bool) {
	r, ok := m.row(id)
	if !ok || r.service || !m.rendered(r) {
		return geom.Rect{}, false
	}
	return r.anchor.Offset(0, m.rowScreenY(r)), true
}

func (m *MessageListModel) AcceptsReactions(id hover.RowID) bool {
	msg, ok := m.Message(string(id))
	return ok && msg.Reactable
}

func (m *MessageListModel) InSelectionMode() bool { return m.selecting }

// PopoverChips supplies the popover contents: the quick reaction when
// collapsed, the whole catalogue the account may see when expanded. Chips
// are always full-size and carry no counters.
func (m *MessageListModel) PopoverChips(id hover.RowID, expanded bool) []chip.Chip {
	msg, ok := m.Message(string(id))
	if !ok || !msg.Reactable {
		return nil
	}
	style := m.style
	style.mode = chip.ModeFull
	entry := func(d reaction.Descriptor) chip.Chip {
		c, _ := reaction.Find(msg.Reactions, d.Value)
		return style.chipFor(reaction.Count{Value: d.Value, Selected: c.Selected})
	}

	if !expanded {
		d, ok := style.catalog.Top(m.quick, style.premium)
		if !ok {
			return []chip.Chip{style.chipFor(reaction.Placeholder())}
		}
		return []chip.Chip{entry(d)}
	}
	allowed := style.catalog.Allowed(style.premium)
	chips := make([]chip.Chip, 0, len(allowed))
	for _, d := range allowed {
		chips = append(chips, entry(d))
	}
	return chips
}

// ChipAt hit-tests the reaction bars at a screen point.
func (m *MessageListModel) ChipAt(p geom.Point) (string, chip.Chip, bool) {
	id, ok := m.RowAt(p)
	if !ok {
		return "", chip.Chip{}, false
	}
	r, _ := m.row(id)
	b, ok := m.bars[r.id]
	if !ok {
		return "", chip.Chip{}, false
	}
	local := geom.Point{X: p.X - gutterWidth, Y: p.Y - m.rowScreenY(r) - r.barY}
	c, ok := b.chipAt(local)
	if !ok {
		return "", chip.Chip{}, false
	}
	return r.id, c, true
}

// -- Rendering --

func (m *MessageListModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if len(m.rows) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
			renderEmptyState("No messages yet", "Press s to start live reactions"))
	}

	c := newCanvas(m.width, m.height)
	textW := m.textWidth()
	for i, r := range m.rows {
		if !m.rendered(r) {
			continue
		}
		y := r.y - m.offset
		cursor := i == m.cursor
		for j, line := range r.text {
			c.place(0, y+j, m.gutter(r, cursor, j == 0))
			c.place(gutterWidth, y+j, line)
		}
		if r.service {
			continue
		}

		style := anchorStyle
		if cursor || r.id == m.highlight {
			style = anchorActiveStyle
		}
		c.place(r.anchor.X, y+r.anchor.Y, style.Render(anchorGlyph))

		if b := m.bars[r.id]; b != nil && b.height() > 0 {
			for j := 0; j < b.height(); j++ {
				c.place(0, y+r.barY+j, m.gutter(r, cursor, false))
			}
			c.place(gutterWidth, y+r.barY, b.render(textW))
		}
	}
	c.place(m.width-scrollbarWidth, 0, m.renderScrollbar())
	return c.String()
}

func (m *MessageListModel) gutter(r rowLayout, cursor, first bool) string {
	lead := " "
	if cursor {
		lead = listCursorStyle.Render("▎")
	}
	mark := " "
	if m.selecting && first && !r.service {
		if m.selected[r.id] {
			mark = selectedMarkStyle.Render("●")
		} else {
			mark = selectMarkStyle.Render("○")
		}
	}
	return lead + mark
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
