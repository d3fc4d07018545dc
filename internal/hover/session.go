package hover

import (
	"time"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/flow"
	"github.com/shhac/reactea/internal/geom"
)

// RowID identifies a row in the host list. The controller passes it back as
// the message id of toggle intents.
type RowID string

// Session is the live popover. At most one exists per controller.
type Session struct {
	ID         string
	Row        RowID
	Locked     bool
	Expanded   bool
	Reversed   bool // attached above the anchor
	RevealedAt time.Time

	// Rect is the popover frame in screen cells; Layout holds the chips in
	// content coordinates, which start Padding cells inside Rect.
	Rect    geom.Rect
	Layout  flow.Result
	Padding int
}

// Origin is the screen cell of the content's top-left corner.
func (s Session) Origin() geom.Point {
	return geom.Point{X: s.Rect.X + s.Padding, Y: s.Rect.Y + s.Padding}
}

// ChipAt returns the popover chip under a screen point.
func (s Session) ChipAt(p geom.Point) (chip.Chip, bool) {
	o := s.Origin()
	return s.Layout.ChipAt(geom.Point{X: p.X - o.X, Y: p.Y - o.Y})
}

// RectFor returns a chip's screen rect.
func (s Session) RectFor(value string) (geom.Rect, bool) {
	r, ok := s.Layout.RectFor(value)
	if !ok {
		return geom.Rect{}, false
	}
	o := s.Origin()
	return r.Offset(o.X, o.Y), true
}
