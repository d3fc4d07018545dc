// Package chip sizes reaction chips: one renderable unit per reaction
// (icon, plus a counter or an avatar stack).
package chip

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/reaction"
)

// Mode selects how a chip is drawn.
type Mode int

const (
	// ModeFull draws a bordered chip with counter or avatars.
	ModeFull Mode = iota
	// ModeShort draws an inline icon with an optional counter.
	ModeShort
)

func (m Mode) String() string {
	if m == ModeShort {
		return "short"
	}
	return "full"
}

// ParseMode maps a config string onto a Mode. Unknown values mean full.
func ParseMode(s string) Mode {
	if s == "short" {
		return ModeShort
	}
	return ModeFull
}

// Theme holds the cell metrics used for sizing.
type Theme struct {
	IconWidth        int
	IconHeight       int
	InnerInset       int
	OuterInset       int
	ShortGap         int
	PlaceholderWidth int
	AvatarStride     int
	MaxAvatars       int
	ShowAvatars      bool
}

// DefaultTheme matches the lipgloss chip styles in the ui package: a rounded
// border is the outer inset and the vertical inner inset.
func DefaultTheme() Theme {
	return Theme{
		IconWidth:        2,
		IconHeight:       1,
		InnerInset:       1,
		OuterInset:       1,
		ShortGap:         1,
		PlaceholderWidth: 5,
		AvatarStride:     1,
		MaxAvatars:       3,
		ShowAvatars:      true,
	}
}

// Chip is derived from a reaction aggregate for one layout pass.
type Chip struct {
	StableID    string
	Value       string
	Icon        string
	Title       string
	Count       int
	Selected    bool
	Locked      bool // premium-only and the account lacks the entitlement
	Placeholder bool
	Avatars     []reaction.Peer
	Mode        Mode
	MinSize     geom.Size
	Rect        geom.Rect
}

// New builds a chip for an aggregate. desc may be the zero Descriptor when
// the catalogue no longer lists the value.
func New(c reaction.Count, desc reaction.Descriptor, mode Mode, theme Theme) Chip {
	ch := Chip{
		StableID:    c.Value,
		Value:       c.Value,
		Icon:        desc.Icon(),
		Title:       desc.Title,
		Count:       c.Count,
		Selected:    c.Selected,
		Placeholder: c.IsPlaceholder(),
		Mode:        mode,
	}
	if ch.Icon == "" {
		ch.Icon = c.Value
	}
	if ch.Placeholder {
		ch.Icon = "+"
		ch.StableID = reaction.PlaceholderValue
	}
	if ShowsAvatars(c, theme) {
		ch.Avatars = append([]reaction.Peer(nil), c.Recent...)
	}
	ch.MinSize = Size(c, mode, theme)
	return ch
}

// CounterText is the chip's counter, or "" when the chip shows none.
func (c Chip) CounterText() string {
	if c.Placeholder || len(c.Avatars) > 0 {
		return ""
	}
	if c.Mode == ModeShort && c.Count <= 1 {
		return ""
	}
	if c.Count <= 0 {
		return ""
	}
	return FormatCount(c.Count)
}

// ShowsAvatars reports whether an aggregate is drawn with an avatar stack
// instead of a counter: every reactor must be known and few enough to stack.
func ShowsAvatars(c reaction.Count, theme Theme) bool {
	if !theme.ShowAvatars || c.IsPlaceholder() || c.Count <= 0 {
		return false
	}
	return len(c.Recent) == c.Count && c.Count <= theme.MaxAvatars
}

// Size computes the minimum bounding size of a chip.
func Size(c reaction.Count, mode Mode, theme Theme) geom.Size {
	if mode == ModeShort {
		w := theme.IconWidth + theme.ShortGap
		if c.Count > 1 {
			w += runewidth.StringWidth(FormatCount(c.Count))
		}
		return geom.Size{Width: w, Height: theme.IconHeight}
	}

	h := theme.IconHeight + 2*theme.InnerInset
	if c.IsPlaceholder() {
		return geom.Size{Width: theme.PlaceholderWidth, Height: h}
	}
	w := theme.OuterInset + theme.IconWidth
	switch {
	case ShowsAvatars(c, theme):
		w += theme.InnerInset + AvatarStackWidth(len(c.Recent), theme)
	case c.Count > 0:
		w += theme.InnerInset + runewidth.StringWidth(FormatCount(c.Count))
	}
	w += theme.OuterInset
	return geom.Size{Width: w, Height: h}
}

// AvatarStackWidth is the width of n overlapping avatars. A lone avatar takes
// a full icon slot; stacked avatars advance by the overlap stride.
func AvatarStackWidth(n int, theme Theme) int {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return theme.IconWidth
	default:
		return n * theme.AvatarStride
	}
}

// FormatCount renders a counter compactly: 999, 1.2K, 12K, 3.4M.
func FormatCount(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000)) + "K"
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1000)
	case n < 10_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	default:
		return fmt.Sprintf("%dM", n/1_000_000)
	}
}

func trimZero(s string) string {
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}

// IDs returns the stable ids of chips in order.
func IDs(chips []Chip) []string {
	out := make([]string, len(chips))
	for i, c := range chips {
		out[i] = c.StableID
	}
	return out
}
