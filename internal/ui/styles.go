package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Accent colors
var (
	accentColor = lipgloss.Color("62")  // bright purple/blue
	dimColor    = lipgloss.Color("240") // dim gray
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(accentColor).
				Bold(true)
	statusBarBadgeStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("214")).
				Foreground(lipgloss.Color("0")).
				Bold(true)
)

// Message list
var (
	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)
	ownAuthorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	serviceStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// Anchor handle that the popover attaches to
var (
	anchorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	anchorActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// Gutter markers: cursor bar and selection dots
var (
	listCursorStyle   = lipgloss.NewStyle().Foreground(accentColor)
	selectedMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	selectMarkStyle   = lipgloss.NewStyle().Foreground(dimColor)
)

// Popover frame
var (
	popoverBorderColor       = accentColor
	popoverLockedBorderColor = dimColor
)

// newLoadingSpinner creates a consistently styled spinner for loading states.
func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)
	return s
}

// renderEmptyState renders a consistent empty state message with optional action hint.
func renderEmptyState(message, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(1, 2).
		Render("— " + message)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(dimColor).
		Italic(true).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// renderErrorWithHint renders a consistent error message with retry hint.
func renderErrorWithHint(errMsg, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Padding(1, 2).
		Render(errMsg)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// formatUserError converts raw error strings into user-friendly messages.
func formatUserError(err string) string {
	lower := strings.ToLower(err)
	switch {
	case strings.Contains(lower, "requires premium"):
		return "That reaction needs premium. Press p to unlock it."
	case strings.Contains(lower, "does not accept reactions"):
		return "This message can't be reacted to."
	case strings.Contains(lower, "reaction not available"):
		return "That reaction is no longer available."
	case strings.Contains(lower, "message not found"):
		return "That message is gone."
	case strings.Contains(lower, "reactions file") || strings.Contains(lower, "yaml"):
		return "Could not read the reactions file; keeping the current set."
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return "Request timed out. Try again."
	default:
		return err
	}
}

// Help overlay styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(accentColor).
			Padding(0, 1)

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("33"))

	helpSectionActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	helpDividerStyle = lipgloss.NewStyle().
				Foreground(dimColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Vertical scrollbar styles (1-char wide column beside the message list)
var (
	scrollbarTrackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	scrollbarThumbStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	scrollbarMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// Scroll indicator style
var scrollIndicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// scrollIndicator returns a scroll position line for a viewport.
// Returns "" if all content fits within the viewport (no scrolling needed).
func scrollIndicator(vp viewport.Model, width int) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	pct := int(vp.ScrollPercent() * 100)
	var label string
	switch {
	case vp.AtTop():
		label = fmt.Sprintf("%d%% ▼", pct)
	case vp.AtBottom():
		label = fmt.Sprintf("▲ %d%%", pct)
	default:
		label = fmt.Sprintf("▲ %d%% ▼", pct)
	}
	return scrollIndicatorStyle.Render(
		lipgloss.PlaceHorizontal(width, lipgloss.Right, label),
	)
}
