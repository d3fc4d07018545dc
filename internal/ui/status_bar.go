package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/hover"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width      int
	premium    bool
	simulating bool
	selecting  bool
	selected   int
	mode       chip.Mode
	hover      hover.State
	quick      string // icon of the quick reaction

	// Temporary flash message (e.g. "Reaction catalogue reloaded")
	statusMessage string
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

// SetState copies the app state the bar describes.
func (m *StatusBarModel) SetState(premium, simulating bool, mode chip.Mode, state hover.State) {
	m.premium = premium
	m.simulating = simulating
	m.mode = mode
	m.hover = state
}

// SetSelection updates the selection-mode indicator.
func (m *StatusBarModel) SetSelection(selecting bool, count int) {
	m.selecting = selecting
	m.selected = count
}

func (m *StatusBarModel) SetQuick(icon string) {
	m.quick = icon
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given duration,
// which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearMessage explicitly clears the temporary message.
func (m *StatusBarModel) ClearMessage() {
	m.statusMessage = ""
}

// ClearIfSeqMatch clears the message only if the given seq matches the current one.
// Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var leftHints string
	if m.statusMessage != "" {
		leftHints = " " + m.statusMessage
	} else {
		leftHints = m.keyHints()
	}
	rightInfo := m.contextInfo()

	leftRendered := statusBarAccentStyle.Render(leftHints)
	rightRendered := statusBarStyle.Render(rightInfo)
	if m.premium {
		rightRendered += statusBarBadgeStyle.Render(" PREMIUM ")
	}

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	padding := m.width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) keyHints() string {
	if m.selecting {
		return " [Space]select [Esc/v]done [j/k]move [?]help"
	}
	switch m.hover {
	case hover.Revealed:
		return " [click]react [right-click]more [middle-click]set quick [Esc]close"
	case hover.Locked:
		return " [Esc]close"
	}
	return " [j/k]move [r]react [+]quick [-]clear [v]select [m]chips [s]live [p]premium [?]help"
}

func (m StatusBarModel) contextInfo() string {
	var parts []string
	if m.selecting {
		parts = append(parts, fmt.Sprintf("SELECT %d", m.selected))
	}
	if m.simulating {
		parts = append(parts, "LIVE")
	}
	if m.quick != "" {
		parts = append(parts, "quick "+m.quick)
	}
	parts = append(parts, m.mode.String())
	return " " + strings.Join(parts, " · ") + " "
}
