package recycler

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/geom"
)

const effectDuration = 600 * time.Millisecond

// View is a live on-screen chip. Views outlive layout passes: the recycler
// rebinds them to fresh chips with the same stable id.
type View interface {
	ID() string
	Chip() chip.Chip
	// Update rebinds content without moving the view.
	Update(c chip.Chip)
	// UpdateLayout animates the view to a new rect.
	UpdateLayout(r geom.Rect, d time.Duration)
	// PlayEffect flashes the view, e.g. after the user toggles it.
	PlayEffect()
	// Render draws the view and returns the cell where the block starts.
	Render() (string, geom.Point)
	Frame() Frame
	Dispose()
	Disposed() bool

	popIn(r geom.Rect, d time.Duration)
	morphFrom(from, to geom.Rect, d time.Duration)
	exit(d time.Duration)
	revive(r geom.Rect, d time.Duration)
	setZ(z int)
	step(dt time.Duration) bool
	animating() bool
	kind() viewKind
}

type viewKind int

const (
	kindFull viewKind = iota
	kindShort
	kindPlaceholder
)

func kindOf(c chip.Chip) viewKind {
	switch {
	case c.Placeholder:
		return kindPlaceholder
	case c.Mode == chip.ModeShort:
		return kindShort
	default:
		return kindFull
	}
}

// Palette holds the styles used to draw chips.
type Palette struct {
	Border         lipgloss.TerminalColor
	SelectedBorder lipgloss.TerminalColor
	LockedBorder   lipgloss.TerminalColor
	EffectBorder   lipgloss.TerminalColor
	Counter        lipgloss.Style
	Selected       lipgloss.Style
	Locked         lipgloss.Style
	Avatar         lipgloss.Style
}

// DefaultPalette uses the same 256-colour codes as the ui styles.
func DefaultPalette() Palette {
	return Palette{
		Border:         lipgloss.Color("240"),
		SelectedBorder: lipgloss.Color("62"),
		LockedBorder:   lipgloss.Color("236"),
		EffectBorder:   lipgloss.Color("214"),
		Counter:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Locked:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Avatar:         lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	}
}

// NewView builds the view variant for a chip: placeholder, short or full.
func NewView(c chip.Chip, p Palette) View {
	b := base{c: c, palette: p}
	b.jump(settled(c.Rect))
	switch kindOf(c) {
	case kindPlaceholder:
		return &placeholderView{base: b}
	case kindShort:
		return &shortView{base: b}
	default:
		return &fullView{base: b}
	}
}

type base struct {
	motion
	c       chip.Chip
	palette Palette
}

func (b *base) ID() string      { return b.c.StableID }
func (b *base) Chip() chip.Chip { return b.c }
func (b *base) Frame() Frame    { return b.current }
func (b *base) Disposed() bool  { return b.disposed }
func (b *base) PlayEffect()     { b.effect = effectDuration }

func (b *base) Dispose() {
	b.disposed = true
	b.tr = nil
	b.effect = 0
}

func (b *base) setZ(z int) {
	b.current.Z = z
	b.target.Z = z
}

func (b *base) Update(c chip.Chip) {
	c.Rect = b.c.Rect
	b.c = c
}

func (b *base) UpdateLayout(r geom.Rect, d time.Duration) {
	b.c.Rect = r
	if b.target.Rect == r && b.target.Opacity == 1 {
		return
	}
	b.animateTo(settled(r), d)
}

// popIn grows the view from a collapsed, transparent point.
func (b *base) popIn(r geom.Rect, d time.Duration) {
	b.c.Rect = r
	b.jump(Frame{Rect: r, Opacity: 0, Scale: 0.2})
	b.animateTo(settled(r), d)
}

func (b *base) morphFrom(from, to geom.Rect, d time.Duration) {
	b.c.Rect = to
	b.jump(Frame{Rect: from, Opacity: 1, Scale: 1})
	b.animateTo(settled(to), d)
}

func (b *base) exit(d time.Duration) {
	out := b.current
	out.Opacity = 0
	out.Scale = 0.2
	b.animateTo(out, d)
}

func (b *base) revive(r geom.Rect, d time.Duration) {
	b.c.Rect = r
	b.animateTo(settled(r), d)
}

// visible reports whether the current frame should be drawn, and whether it
// is far enough into a pop-in to draw the full chip rather than its icon.
func (b *base) visible() (show, compact bool) {
	if b.disposed || b.current.Opacity < 0.15 {
		return false, false
	}
	return true, b.current.Scale < 0.7
}

func (b *base) faint(s lipgloss.Style) lipgloss.Style {
	if b.current.Opacity < 0.6 {
		return s.Faint(true)
	}
	return s
}

func (b *base) borderColor() lipgloss.TerminalColor {
	switch {
	case b.effect > 0:
		return b.palette.EffectBorder
	case b.c.Locked:
		return b.palette.LockedBorder
	case b.c.Selected:
		return b.palette.SelectedBorder
	default:
		return b.palette.Border
	}
}

func (b *base) textStyle() lipgloss.Style {
	switch {
	case b.c.Locked:
		return b.palette.Locked
	case b.c.Selected:
		return b.palette.Selected
	default:
		return b.palette.Counter
	}
}

// compactRender draws just the icon at the centre of the current rect.
func (b *base) compactRender() (string, geom.Point) {
	r := b.current.Rect
	return b.faint(b.textStyle()).Render(b.c.Icon), geom.Point{X: r.X + r.Width/2 - 1, Y: r.Y + r.Height/2}
}

func (b *base) boxed(content string) string {
	r := b.current.Rect
	return b.faint(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(b.borderColor()).
		Width(max(r.Width-2, 1)).
		MaxHeight(max(r.Height, 1))).
		Render(content)
}

// fullView is a bordered chip: icon then counter or avatar stack.
type fullView struct{ base }

func (v *fullView) kind() viewKind { return kindFull }

func (v *fullView) Render() (string, geom.Point) {
	show, compact := v.visible()
	if !show {
		return "", geom.Point{}
	}
	if compact {
		return v.compactRender()
	}
	var b strings.Builder
	b.WriteString(v.c.Icon)
	switch {
	case len(v.c.Avatars) == 1:
		b.WriteString(" ")
		b.WriteString(v.palette.Avatar.Render(v.c.Avatars[0].Initial()))
	case len(v.c.Avatars) > 1:
		b.WriteString(" ")
		for _, p := range v.c.Avatars {
			b.WriteString(v.palette.Avatar.Render(p.Initial()))
		}
	case v.c.CounterText() != "":
		b.WriteString(" ")
		b.WriteString(v.textStyle().Render(v.c.CounterText()))
	}
	r := v.current.Rect
	return v.boxed(b.String()), geom.Point{X: r.X, Y: r.Y}
}

// shortView is an inline icon with an optional counter.
type shortView struct{ base }

func (v *shortView) kind() viewKind { return kindShort }

func (v *shortView) Render() (string, geom.Point) {
	show, compact := v.visible()
	if !show {
		return "", geom.Point{}
	}
	if compact {
		return v.compactRender()
	}
	style := v.faint(v.textStyle())
	if v.effect > 0 {
		style = style.Underline(true)
	}
	r := v.current.Rect
	return v.c.Icon + style.Render(v.c.CounterText()), geom.Point{X: r.X, Y: r.Y}
}

// placeholderView is the "add reaction" chip.
type placeholderView struct{ base }

func (v *placeholderView) kind() viewKind { return kindPlaceholder }

func (v *placeholderView) Render() (string, geom.Point) {
	show, compact := v.visible()
	if !show {
		return "", geom.Point{}
	}
	if compact {
		return v.compactRender()
	}
	r := v.current.Rect
	if v.c.Mode == chip.ModeShort {
		return v.faint(v.palette.Locked).Render("+"), geom.Point{X: r.X, Y: r.Y}
	}
	content := lipgloss.PlaceHorizontal(max(r.Width-2, 1), lipgloss.Center, v.palette.Locked.Render("+"))
	return v.boxed(content), geom.Point{X: r.X, Y: r.Y}
}
