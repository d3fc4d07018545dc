package ui

import (
	"time"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/flow"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/reaction"
	"github.com/shhac/reactea/internal/recycler"
)

// chipStyle carries what every chip derivation needs besides the aggregate.
type chipStyle struct {
	mode    chip.Mode
	theme   chip.Theme
	catalog reaction.Snapshot
	premium bool
}

// chipFor builds a chip for one aggregate. A premium-only reaction the
// account cannot send is drawn locked unless the user already holds it.
func (s chipStyle) chipFor(c reaction.Count) chip.Chip {
	desc, _ := s.catalog.Lookup(c.Value)
	ch := chip.New(c, desc, s.mode, s.theme)
	ch.Locked = desc.PremiumOnly && !s.premium && !c.Selected
	return ch
}

// barChips is a message's reaction bar: its aggregates in order followed by
// the add-reaction placeholder.
func (s chipStyle) barChips(m chat.Message) []chip.Chip {
	if !m.Reactable || len(m.Reactions) == 0 {
		return nil
	}
	chips := make([]chip.Chip, 0, len(m.Reactions)+1)
	for _, c := range m.Reactions {
		chips = append(chips, s.chipFor(c))
	}
	return append(chips, s.chipFor(reaction.Placeholder()))
}

// reactionBar is the chip strip under one message. Its views live in a
// recycler so count changes and reorders animate between layout passes.
type reactionBar struct {
	rec    *recycler.Recycler
	layout flow.Result
}

func newReactionBar(d time.Duration) *reactionBar {
	return &reactionBar{rec: recycler.New(recycler.Options{Duration: d})}
}

// apply lays chips out within width and reconciles the views against the
// result.
func (b *reactionBar) apply(chips []chip.Chip, width, inset int) {
	b.layout = flow.Measure(chips, width, inset)
	b.rec.Apply(b.layout.Chips())
}

func (b *reactionBar) height() int { return b.layout.Size.Height }

// render draws the live views, exiting ones included, into a block of the
// bar's height.
func (b *reactionBar) render(width int) string {
	c := newCanvas(width, b.height())
	for _, v := range b.rec.Views() {
		block, at := v.Render()
		c.place(at.X, at.Y, block)
	}
	return c.String()
}

// chipAt hit-tests a point relative to the bar's top-left cell.
func (b *reactionBar) chipAt(p geom.Point) (chip.Chip, bool) {
	return b.layout.ChipAt(p)
}
