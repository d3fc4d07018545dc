package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
	"github.com/shhac/reactea/internal/recycler"
)

// popoverSurface draws the hover popover. The controller hands it sessions;
// it keeps the chip views in its own recycler so expanding the popover
// animates the quick chip into place beside the rest.
type popoverSurface struct {
	rec     *recycler.Recycler
	session hover.Session
	live    bool
}

func newPopoverSurface(d time.Duration) *popoverSurface {
	return &popoverSurface{rec: recycler.New(recycler.Options{Duration: d})}
}

func (p *popoverSurface) Attach(s hover.Session) {
	p.rec.Flush()
	p.session = s
	p.live = true
	p.rec.Apply(s.Layout.Chips())
}

func (p *popoverSurface) Update(s hover.Session) {
	p.session = s
	p.rec.Apply(s.Layout.Chips())
}

func (p *popoverSurface) Detach(id string) {
	if p.session.ID != id {
		return
	}
	p.live = false
	p.rec.Flush()
}

func (p *popoverSurface) PlayEffect(value string) {
	p.rec.PlayEffect(value)
}

func (p *popoverSurface) Visible() bool { return p.live }

func (p *popoverSurface) Advance(dt time.Duration) bool {
	if !p.live {
		return false
	}
	return p.rec.Advance(dt)
}

func (p *popoverSurface) Animating() bool { return p.live && p.rec.Animating() }

// Render returns the framed popover and the screen cell of its top-left
// corner.
func (p *popoverSurface) Render() (string, geom.Point, bool) {
	if !p.live {
		return "", geom.Point{}, false
	}
	r := p.session.Rect
	borderColor := popoverBorderColor
	if p.session.Locked {
		borderColor = popoverLockedBorderColor
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(r.Width-2, 0)).
		Height(max(r.Height-2, 0)).
		Render("")

	c := canvasFrom(frame, r.Width, r.Height)
	pad := p.session.Padding
	for _, v := range p.rec.Views() {
		block, at := v.Render()
		c.place(pad+at.X, pad+at.Y, block)
	}
	return c.String(), geom.Point{X: r.X, Y: r.Y}, true
}
