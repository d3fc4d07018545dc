// Package recycler keeps a live set of chip views in step with successive
// layout passes. Views are keyed by chip stable id and reused across passes
// so that a chip whose count or position changes animates into its new state
// instead of being rebuilt.
package recycler

import (
	"slices"
	"sort"
	"time"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/diff"
	"github.com/shhac/reactea/internal/geom"
)

// DefaultDuration is the length of enter, exit and move transitions.
const DefaultDuration = 200 * time.Millisecond

// Options configures a Recycler.
type Options struct {
	// Duration defaults to DefaultDuration; a negative value disables
	// animation.
	Duration time.Duration
	Palette  Palette
	// Factory builds views; NewView when nil.
	Factory func(chip.Chip, Palette) View
}

// Stats counts view lifecycle events since the recycler was created.
type Stats struct {
	Created  int
	Reused   int
	Revived  int
	Morphed  int
	Disposed int
}

// Recycler owns the stableID -> view table. Nothing else holds views.
type Recycler struct {
	opts    Options
	chips   []chip.Chip
	views   map[string]View
	exiting map[string]View
	stats   Stats
}

// New creates an empty recycler.
func New(opts Options) *Recycler {
	if opts.Factory == nil {
		opts.Factory = NewView
	}
	if opts.Duration == 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Palette.Border == nil {
		opts.Palette = DefaultPalette()
	}
	return &Recycler{
		opts:    opts,
		views:   make(map[string]View),
		exiting: make(map[string]View),
	}
}

func key(c chip.Chip) string { return c.StableID }

// Apply reconciles the live views against next, a laid-out chip sequence.
// Removals run first, then inserts, then updates; z-order follows the
// sequence index afterwards.
func (r *Recycler) Apply(next []chip.Chip) diff.Script[chip.Chip] {
	script := diff.Compute(r.chips, next, key)
	d := r.opts.Duration

	morphSource := -1
	if script.Substituted() {
		morphSource = script.Inserted[0].Matched
	}
	var morphRect geom.Rect

	removed := slices.Clone(script.Removed)
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))
	for _, idx := range removed {
		id := r.chips[idx].StableID
		v, ok := r.views[id]
		if !ok {
			continue
		}
		delete(r.views, id)
		if idx == morphSource {
			morphRect = v.Frame().Rect
			r.dispose(v)
			continue
		}
		v.exit(d)
		v.setZ(-1)
		r.exiting[id] = v
	}

	for _, ins := range script.Inserted {
		c := ins.Item
		if v, ok := r.exiting[c.StableID]; ok && v.kind() == kindOf(c) {
			delete(r.exiting, c.StableID)
			v.Update(c)
			v.revive(c.Rect, d)
			r.views[c.StableID] = v
			r.stats.Revived++
			continue
		} else if ok {
			delete(r.exiting, c.StableID)
			r.dispose(v)
		}

		v := r.opts.Factory(c, r.opts.Palette)
		r.stats.Created++
		if ins.Matched != diff.NoMatch && !morphRect.Empty() {
			v.morphFrom(morphRect, c.Rect, d)
			r.stats.Morphed++
		} else {
			v.popIn(c.Rect, d)
		}
		r.views[c.StableID] = v
	}

	for _, up := range script.Updated {
		c := up.Item
		v := r.views[c.StableID]
		if v.kind() != kindOf(c) {
			// the chip changed variant (e.g. mode switch); swap in place
			nv := r.opts.Factory(c, r.opts.Palette)
			nv.morphFrom(v.Frame().Rect, c.Rect, d)
			r.dispose(v)
			r.views[c.StableID] = nv
			r.stats.Created++
			continue
		}
		v.Update(c)
		v.UpdateLayout(c.Rect, d)
		r.stats.Reused++
	}

	for i, c := range next {
		r.views[c.StableID].setZ(i)
	}
	r.chips = slices.Clone(next)
	return script
}

func (r *Recycler) dispose(v View) {
	v.Dispose()
	r.stats.Disposed++
}

// Advance moves every transition forward by dt and disposes views whose exit
// animation has finished. It reports whether another frame is needed.
func (r *Recycler) Advance(dt time.Duration) bool {
	busy := false
	for _, v := range r.views {
		if v.step(dt) {
			busy = true
		}
	}
	for id, v := range r.exiting {
		if v.step(dt) {
			busy = true
			continue
		}
		delete(r.exiting, id)
		r.dispose(v)
	}
	return busy
}

// Animating reports whether any view is mid-transition.
func (r *Recycler) Animating() bool {
	if len(r.exiting) > 0 {
		return true
	}
	for _, v := range r.views {
		if v.animating() {
			return true
		}
	}
	return false
}

// Clear exits every live view, as if Apply(nil) were called.
func (r *Recycler) Clear() { r.Apply(nil) }

// Flush disposes every view immediately, exits included.
func (r *Recycler) Flush() {
	for id, v := range r.views {
		delete(r.views, id)
		r.dispose(v)
	}
	for id, v := range r.exiting {
		delete(r.exiting, id)
		r.dispose(v)
	}
	r.chips = nil
}

// Views returns live and exiting views in draw order: exiting views first,
// then live views by ascending z.
func (r *Recycler) Views() []View {
	out := make([]View, 0, len(r.views)+len(r.exiting))
	exitIDs := make([]string, 0, len(r.exiting))
	for id := range r.exiting {
		exitIDs = append(exitIDs, id)
	}
	sort.Strings(exitIDs)
	for _, id := range exitIDs {
		out = append(out, r.exiting[id])
	}
	for _, c := range r.chips {
		out = append(out, r.views[c.StableID])
	}
	return out
}

// View returns the live view for a stable id.
func (r *Recycler) View(id string) (View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// Pending reports whether id is exiting but not yet disposed.
func (r *Recycler) Pending(id string) bool {
	_, ok := r.exiting[id]
	return ok
}

// Len is the number of live (non-exiting) views.
func (r *Recycler) Len() int { return len(r.views) }

// Chips returns the sequence last applied.
func (r *Recycler) Chips() []chip.Chip { return r.chips }

// RectFor returns the target rect of a live view.
func (r *Recycler) RectFor(id string) (geom.Rect, bool) {
	v, ok := r.views[id]
	if !ok {
		return geom.Rect{}, false
	}
	return v.Chip().Rect, true
}

// PlayEffect flashes the live view for id.
func (r *Recycler) PlayEffect(id string) bool {
	v, ok := r.views[id]
	if ok {
		v.PlayEffect()
	}
	return ok
}

// Stats returns lifecycle counters.
func (r *Recycler) Stats() Stats { return r.stats }
