package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel renders a centered help overlay with keybinding reference.
type HelpOverlayModel struct {
	viewport viewport.Model
	width    int
	height   int
	visible  bool
	context  helpContext // what the user was doing when help opened
	ready    bool
}

// HelpClosedMsg is sent when the help overlay is dismissed.
type HelpClosedMsg struct{}

// helpContext picks the section marked "(current)".
type helpContext int

const (
	helpContextList helpContext = iota
	helpContextSelecting
	helpContextPopover
)

func NewHelpOverlayModel() HelpOverlayModel {
	return HelpOverlayModel{}
}

// Show makes the overlay visible and sets the context section.
func (m *HelpOverlayModel) Show(context helpContext) {
	m.visible = true
	m.context = context
	m.refreshContent()
}

// Hide dismisses the overlay.
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// IsVisible returns whether the overlay is currently shown.
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize updates the overlay dimensions and rebuilds the viewport.
func (m *HelpOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight

	innerW, innerH := m.innerDimensions()
	if !m.ready {
		m.viewport = viewport.New(innerW, innerH)
		m.ready = true
	} else {
		m.viewport.Width = innerW
		m.viewport.Height = innerH
	}
	m.refreshContent()
}

func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, GlobalKeys.Help):
			m.Hide()
			return m, func() tea.Msg { return HelpClosedMsg{} }
		case msg.String() == "esc":
			m.Hide()
			return m, func() tea.Msg { return HelpClosedMsg{} }
		case msg.String() == "q":
			m.Hide()
			return m, func() tea.Msg { return HelpClosedMsg{} }
		default:
			// Scroll the viewport with j/k/arrows
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	overlayW, overlayH := m.overlayDimensions()

	var content string
	if m.ready {
		content = m.viewport.View()
	}

	// Build the overlay box
	title := helpTitleStyle.Render(" Keyboard Shortcuts ")
	footer := helpFooterStyle.Render(" ? / Esc to close ")

	innerW := overlayW - 4 // account for border + padding
	if innerW < 1 {
		innerW = 1
	}

	// Center the title and footer
	titleLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, title)
	footerLine := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, footer)

	boxParts := []string{titleLine, "", content}
	if indicator := scrollIndicator(m.viewport, innerW); indicator != "" {
		boxParts = append(boxParts, indicator)
	} else {
		boxParts = append(boxParts, "")
	}
	boxParts = append(boxParts, footerLine)
	box := lipgloss.JoinVertical(lipgloss.Left, boxParts...)

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(overlayW - 2).   // account for border
		Height(overlayH - 2)

	rendered := overlayStyle.Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// overlayDimensions returns the outer dimensions of the overlay box.
func (m HelpOverlayModel) overlayDimensions() (width, height int) {
	width = int(float64(m.width) * 0.65)
	height = int(float64(m.height) * 0.75)
	if width < 50 {
		width = min(50, m.width)
	}
	if height < 15 {
		height = min(15, m.height)
	}
	return width, height
}

// innerDimensions returns the viewport dimensions inside the overlay box.
func (m HelpOverlayModel) innerDimensions() (width, height int) {
	ow, oh := m.overlayDimensions()
	// Subtract border (2), padding (2), title line (2), footer line (2), blank lines (2)
	width = ow - 6
	height = oh - 10
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (m *HelpOverlayModel) refreshContent() {
	if !m.ready {
		return
	}
	content := m.renderHelpContent()
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m HelpOverlayModel) renderHelpContent() string {
	innerW, _ := m.innerDimensions()

	var b strings.Builder

	sections := []struct {
		title string
		match bool // whether this section matches current context
		keys  []helpEntry
	}{
		{
			title: "Global",
			keys: bindingEntries(
				GlobalKeys.Help, GlobalKeys.Dismiss, GlobalKeys.SelectMode,
				GlobalKeys.ChipMode, GlobalKeys.Simulate, GlobalKeys.Premium, GlobalKeys.Quit,
			),
		},
		{
			title: "Messages",
			match: m.context == helpContextList,
			keys: bindingEntries(
				ListKeys.Up, ListKeys.Down, ListKeys.PageUp, ListKeys.PageDown,
				ListKeys.Top, ListKeys.Bottom, ListKeys.React, ListKeys.QuickReact, ListKeys.Unreact,
			),
		},
		{
			title: "Selection",
			match: m.context == helpContextSelecting,
			keys: append(bindingEntries(ListKeys.Select), helpEntry{"Esc / v", "Leave selection mode"}),
		},
		{
			title: "Mouse",
			match: m.context == helpContextPopover,
			keys: []helpEntry{
				{"Hover [+]", "Show the quick reaction"},
				{"Keep hovering", "Show every reaction"},
				{"Right click", "Show every reaction now"},
				{"Click a chip", "Add or remove that reaction"},
				{"Middle click", "Make it the quick reaction"},
				{"Wheel", "Scroll"},
			},
		},
	}

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}

		titleStr := section.title
		if section.match {
			titleStr += " (current)"
		}

		if section.match {
			b.WriteString(helpSectionActiveStyle.Render(titleStr))
		} else {
			b.WriteString(helpSectionStyle.Render(titleStr))
		}
		b.WriteString("\n")

		// Divider line under the section title
		divLen := min(lipgloss.Width(titleStr)+2, innerW)
		if section.match {
			b.WriteString(helpSectionActiveStyle.Render(strings.Repeat("─", divLen)))
		} else {
			b.WriteString(helpDividerStyle.Render(strings.Repeat("─", divLen)))
		}
		b.WriteString("\n")

		for _, entry := range section.keys {
			keyCol := helpKeyStyle.Render(padRight(entry.key, 20))
			descCol := helpDescStyle.Render(entry.desc)
			b.WriteString(keyCol + descCol + "\n")
		}
	}

	return b.String()
}

type helpEntry struct {
	key  string
	desc string
}

func bindingEntries(bindings ...key.Binding) []helpEntry {
	out := make([]helpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, helpEntry{h.Key, capitalize(h.Desc)})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
