// Package hover decides when to show the add-reaction popover.
//
// The controller is a single state machine fed pointer, scroll and focus
// events by the list that owns it. It never draws: geometry comes from a
// Container, popover contents from a Source, and the popover itself is
// handed to a Surface. Delays are bubbletea ticks carrying sequence tokens;
// every transition cancels the timers it invalidates, so a tick that arrives
// late is dropped rather than acted on.
package hover

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/flow"
	"github.com/shhac/reactea/internal/geom"
)

// State is the controller's position in the reveal lifecycle.
type State int

const (
	Idle State = iota
	Candidate
	Revealing
	Revealed
	Locked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Candidate:
		return "candidate"
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	case Locked:
		return "locked"
	}
	return "unknown"
}

// Container is the list the controller hit-tests against. All rects are in
// screen cells. A false ok means the row no longer exists (it was scrolled
// away and its view recycled, or the message was deleted).
type Container interface {
	RowAt(p geom.Point) (RowID, bool)
	RowAbove(id RowID) (RowID, bool)
	RowBelow(id RowID) (RowID, bool)
	RowRect(id RowID) (geom.Rect, bool)
	AnchorRect(id RowID) (geom.Rect, bool)
	AcceptsReactions(id RowID) bool
	Viewport() geom.Rect
	InSelectionMode() bool
}

// Source supplies the popover chips for a row, unlaid-out. Collapsed
// popovers show a single chip; expanded ones show the full set.
type Source interface {
	PopoverChips(id RowID, expanded bool) []chip.Chip
}

// Surface draws the popover.
type Surface interface {
	Attach(s Session)
	Update(s Session)
	Detach(sessionID string)
	PlayEffect(value string)
}

// ToggleIntent asks the reaction service to toggle the caller's Value
// reaction on a message. A nil Value removes every selection.
type ToggleIntent struct {
	MessageID string
	Value     *string
}

// QuickReactionIntent asks for Value to become the default reaction.
type QuickReactionIntent struct {
	Value string
}

// UpsellIntent is emitted instead of a toggle when a premium-only chip is
// clicked by an account without the entitlement.
type UpsellIntent struct {
	MessageID string
	Value     string
}

// Config holds the controller's timings and popover geometry.
type Config struct {
	SettleDelay  time.Duration
	RevealDelay  time.Duration
	ExpandDelay  time.Duration
	LockCooldown time.Duration
	// SafeFactor grows the anchor rect into the safe rectangle.
	SafeFactor int
	MaxWidth   int
	Inset      int
	Padding    int
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		SettleDelay:  350 * time.Millisecond,
		RevealDelay:  16 * time.Millisecond,
		ExpandDelay:  700 * time.Millisecond,
		LockCooldown: time.Second,
		SafeFactor:   4,
		MaxWidth:     36,
		Inset:        1,
		Padding:      1,
	}
}

// Controller is the hover state machine. It is not safe for concurrent use;
// call it only from the bubbletea Update loop.
type Controller struct {
	cfg       Config
	container Container
	source    Source
	surface   Surface

	state     State
	candidate RowID
	session   *Session
	pointer   geom.Point
	hasFocus  bool
	// hovering is set while the pointer holds the session open from inside
	// its safe rectangle.
	hovering bool

	lockedRow RowID
	settle    timer
	reveal    timer
	expand    timer
	lock      timer

	schedule scheduler
	now      func() time.Time
	newID    func() string
}

// New creates an idle controller.
func New(cfg Config, c Container, src Source, s Surface) *Controller {
	return &Controller{
		cfg:       cfg,
		container: c,
		source:    src,
		surface:   s,
		hasFocus:  true,
		settle:    timer{kind: settleTimer},
		reveal:    timer{kind: revealTimer},
		expand:    timer{kind: expandTimer},
		lock:      timer{kind: lockTimer},
		schedule:  tick,
		now:       time.Now,
		newID:     func() string { return ulid.Make().String() },
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Session returns the live session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Candidate returns the row waiting out the settle delay.
func (c *Controller) Candidate() (RowID, bool) {
	return c.candidate, c.state == Candidate
}

// LockedRow returns the row in cool-down after a click.
func (c *Controller) LockedRow() (RowID, bool) {
	return c.lockedRow, c.lock.armed
}

// Contains reports whether p is over the attached popover.
func (c *Controller) Contains(p geom.Point) bool {
	return c.attached() && c.session.Rect.Contains(p)
}

// RectFor returns the on-screen rect of a popover chip, for anchoring effects.
func (c *Controller) RectFor(value string) (geom.Rect, bool) {
	if !c.attached() {
		return geom.Rect{}, false
	}
	return c.session.RectFor(value)
}

func (c *Controller) attached() bool {
	return c.session != nil && (c.state == Revealed || c.state == Locked) && !c.session.Rect.Empty()
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	row := c.candidate
	if c.session != nil {
		row = c.session.Row
	}
	log.Printf("hover: %s -> %s (row %q)", c.state, s, row)
	c.state = s
}

// rest is the state with no candidate and no session.
func (c *Controller) rest() State {
	if c.lock.armed {
		return Locked
	}
	return Idle
}

// Update handles the controller's own timer messages.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	tm, ok := msg.(TimerMsg)
	if !ok {
		return nil
	}
	switch {
	case c.settle.fire(tm):
		return c.onSettled()
	case c.reveal.fire(tm):
		return c.onReveal()
	case c.expand.fire(tm):
		return c.onExpand()
	case c.lock.fire(tm):
		return c.onCooldown()
	}
	return nil
}

// PointerMoved feeds a pointer position.
func (c *Controller) PointerMoved(p geom.Point) tea.Cmd {
	c.pointer = p
	if c.session != nil {
		if c.safeRect().Contains(p) {
			c.hovering = true
			return c.trackInside(p)
		}
		c.teardown()
	}
	return c.evaluate(p)
}

// trackInside handles motion that stays within the safe rectangle: hovering
// the collapsed popover arms the expand delay, leaving it disarms it.
func (c *Controller) trackInside(p geom.Point) tea.Cmd {
	if c.state != Revealed || c.session.Expanded {
		return nil
	}
	if !c.session.Rect.Contains(p) {
		c.expand.cancel()
		return nil
	}
	if c.expand.armed {
		return nil
	}
	return c.expand.arm(c.schedule, c.cfg.ExpandDelay)
}

// evaluate picks a candidate row for p. Motion over the same candidate
// re-arms the settle delay, so the popover only appears once the pointer
// rests.
func (c *Controller) evaluate(p geom.Point) tea.Cmd {
	row, ok := c.nearest(p)
	if !ok || (c.lock.armed && row == c.lockedRow) {
		c.settle.cancel()
		c.candidate = ""
		c.setState(c.rest())
		return nil
	}
	c.candidate = row
	c.setState(Candidate)
	return c.settle.arm(c.schedule, c.cfg.SettleDelay)
}

// nearest returns the reactable row whose anchor is closest to p among the
// row under p and its two neighbours.
func (c *Controller) nearest(p geom.Point) (RowID, bool) {
	if !c.hasFocus || c.container.InSelectionMode() || !c.container.Viewport().Contains(p) {
		return "", false
	}
	at, ok := c.container.RowAt(p)
	if !ok {
		return "", false
	}
	candidates := []RowID{at}
	if above, ok := c.container.RowAbove(at); ok {
		candidates = append(candidates, above)
	}
	if below, ok := c.container.RowBelow(at); ok {
		candidates = append(candidates, below)
	}

	var best RowID
	bestDist := -1.0
	for _, id := range candidates {
		if !c.container.AcceptsReactions(id) {
			continue
		}
		anchor, ok := c.container.AnchorRect(id)
		if !ok {
			continue
		}
		if d := anchor.Distance(p); bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist >= 0
}

func (c *Controller) onSettled() tea.Cmd {
	if c.state != Candidate {
		return nil
	}
	row := c.candidate
	anchor, ok := c.anchor(row)
	if !ok || !anchor.Scaled(c.cfg.SafeFactor).Contains(c.pointer) {
		c.candidate = ""
		c.setState(c.rest())
		return nil
	}

	c.teardown()
	c.session = &Session{ID: c.newID(), Row: row, Padding: c.cfg.Padding}
	c.candidate = ""
	c.setState(Revealing)
	return c.reveal.arm(c.schedule, c.cfg.RevealDelay)
}

func (c *Controller) onReveal() tea.Cmd {
	if c.state != Revealing || c.session == nil {
		return nil
	}
	if !c.layout(false) {
		c.teardown()
		return nil
	}
	c.session.RevealedAt = c.now()
	c.setState(Revealed)
	c.surface.Attach(*c.session)
	return c.trackInside(c.pointer)
}

func (c *Controller) onExpand() tea.Cmd {
	if c.state != Revealed || c.session == nil || c.session.Expanded {
		return nil
	}
	c.expandSession()
	return nil
}

func (c *Controller) expandSession() {
	c.expand.cancel()
	if !c.layout(true) {
		c.teardown()
		return
	}
	c.surface.Update(*c.session)
}

func (c *Controller) onCooldown() tea.Cmd {
	c.lockedRow = ""
	if c.state != Locked {
		return nil
	}
	// the next pointer motion picks a new candidate
	c.teardown()
	c.setState(Idle)
	return nil
}

// Open reveals an expanded popover for row straight away, e.g. from the
// placeholder chip of a reaction bar.
func (c *Controller) Open(row RowID) tea.Cmd {
	if c.container.InSelectionMode() || !c.container.AcceptsReactions(row) {
		return nil
	}
	if _, ok := c.anchor(row); !ok {
		return nil
	}
	c.teardown()
	c.settle.cancel()
	c.candidate = ""
	c.session = &Session{ID: c.newID(), Row: row, Padding: c.cfg.Padding}
	if !c.layout(true) {
		c.teardown()
		return nil
	}
	c.session.RevealedAt = c.now()
	c.setState(Revealed)
	c.surface.Attach(*c.session)
	return nil
}

// Click handles a primary click. It reports whether the popover consumed it.
func (c *Controller) Click(p geom.Point) (tea.Cmd, bool) {
	if !c.Contains(p) {
		return nil, false
	}
	if c.state == Locked {
		return nil, true
	}
	ch, ok := c.session.ChipAt(p)
	if !ok {
		return nil, true
	}
	if ch.Placeholder {
		if !c.session.Expanded {
			c.expandSession()
		}
		return nil, true
	}

	msgID := string(c.session.Row)
	var intent tea.Msg
	if ch.Locked {
		intent = UpsellIntent{MessageID: msgID, Value: ch.Value}
	} else {
		v := ch.Value
		intent = ToggleIntent{MessageID: msgID, Value: &v}
	}

	c.surface.PlayEffect(ch.Value)
	return tea.Batch(emit(intent), c.lockSession()), true
}

// ContextClick handles a secondary action on a popover chip: assigning it
// as the quick reaction.
func (c *Controller) ContextClick(p geom.Point) (tea.Cmd, bool) {
	if !c.Contains(p) {
		return nil, false
	}
	if c.state == Locked {
		return nil, true
	}
	ch, ok := c.session.ChipAt(p)
	if !ok || ch.Placeholder || ch.Locked {
		return nil, true
	}
	c.surface.PlayEffect(ch.Value)
	return emit(QuickReactionIntent{Value: ch.Value}), true
}

// RightClick expands a collapsed popover without waiting for the hover delay.
func (c *Controller) RightClick(p geom.Point) bool {
	if c.state != Revealed || !c.safeRect().Contains(p) {
		return false
	}
	if !c.session.Expanded {
		c.expandSession()
	}
	return true
}

func (c *Controller) lockSession() tea.Cmd {
	c.expand.cancel()
	c.session.Locked = true
	c.lockedRow = c.session.Row
	c.setState(Locked)
	return c.lock.arm(c.schedule, c.cfg.LockCooldown)
}

// Scrolled re-queries the anchor after the list moved under the pointer. The
// popover follows its anchor, and is torn down once the anchor is gone or
// no longer fully inside the viewport.
func (c *Controller) Scrolled() tea.Cmd {
	if c.session == nil {
		if c.state == Candidate {
			return c.evaluate(c.pointer)
		}
		return nil
	}
	anchor, ok := c.anchor(c.session.Row)
	if !ok || anchor.Intersect(c.container.Viewport()) != anchor {
		c.teardown()
		return nil
	}
	if c.session.Layout.Len() == 0 {
		return nil
	}
	before := c.session.Rect
	c.place(anchor)
	// No motion event follows a wheel scroll, so check the resting pointer
	// against the moved popover here.
	if c.hovering && !c.safeRect().Contains(c.pointer) {
		c.teardown()
		return c.evaluate(c.pointer)
	}
	if c.session.Rect != before {
		c.surface.Update(*c.session)
	}
	return nil
}

// Relayout is Scrolled for size changes.
func (c *Controller) Relayout() tea.Cmd { return c.Scrolled() }

// Refresh re-reads popover contents after the row's reactions or the
// catalogue changed.
func (c *Controller) Refresh() tea.Cmd {
	if !c.attached() {
		return nil
	}
	if !c.layout(c.session.Expanded) {
		c.teardown()
		return nil
	}
	c.surface.Update(*c.session)
	return nil
}

// FocusChanged handles window focus. Losing focus drops everything.
func (c *Controller) FocusChanged(focused bool) {
	c.hasFocus = focused
	if !focused {
		c.Reset()
	}
}

// SetSelectionMode is called when the list enters or leaves multi-select.
func (c *Controller) SetSelectionMode(on bool) {
	if on {
		c.Reset()
	}
}

// Dismiss closes the popover, keeping any cool-down.
func (c *Controller) Dismiss() {
	c.settle.cancel()
	c.candidate = ""
	c.teardown()
	c.setState(c.rest())
}

// Reset cancels every timer and returns to Idle.
func (c *Controller) Reset() {
	c.settle.cancel()
	c.lock.cancel()
	c.lockedRow = ""
	c.candidate = ""
	c.teardown()
	c.setState(Idle)
}

// teardown detaches the session and cancels its timers. The settle timer
// belongs to the candidate, not the session, and is left alone.
func (c *Controller) teardown() {
	c.reveal.cancel()
	c.expand.cancel()
	if c.session != nil {
		if !c.session.Rect.Empty() {
			c.surface.Detach(c.session.ID)
		}
		c.session = nil
	}
	c.hovering = false
	if c.state != Candidate {
		c.setState(c.rest())
	}
}

// anchor returns the row's anchor rect, or false if the row has gone stale.
func (c *Controller) anchor(row RowID) (geom.Rect, bool) {
	if _, ok := c.container.RowRect(row); !ok {
		return geom.Rect{}, false
	}
	r, ok := c.container.AnchorRect(row)
	if !ok || r.Empty() {
		return geom.Rect{}, false
	}
	return r, true
}

// layout sizes the session's chips and places the popover against its
// anchor. It returns false if the session can no longer be shown.
func (c *Controller) layout(expanded bool) bool {
	anchor, ok := c.anchor(c.session.Row)
	if !ok || anchor.Intersect(c.container.Viewport()) != anchor {
		return false
	}
	chips := c.source.PopoverChips(c.session.Row, expanded)
	if len(chips) == 0 {
		return false
	}
	c.session.Expanded = expanded
	c.session.Layout = flow.Measure(chips, c.cfg.MaxWidth, c.cfg.Inset)
	c.session.Reversed = false
	c.place(anchor)
	c.hovering = c.safeRect().Contains(c.pointer)
	return true
}

// place positions the popover below the anchor, or above it with reversed
// rows when the viewport lacks room below.
func (c *Controller) place(anchor geom.Rect) {
	s := c.session
	vp := c.container.Viewport()
	if s.Reversed {
		s.Layout = s.Layout.Reversed()
		s.Reversed = false
	}
	w := s.Layout.Size.Width + 2*s.Padding
	h := s.Layout.Size.Height + 2*s.Padding

	y := anchor.MaxY()
	if y+h > vp.MaxY() && anchor.Y-h >= vp.Y {
		y = anchor.Y - h
		s.Layout = s.Layout.Reversed()
		s.Reversed = true
	}
	x := min(anchor.X, vp.MaxX()-w)
	x = max(x, vp.X)
	s.Rect = geom.R(x, y, w, h)
}

// safeRect is the region the pointer may wander without dismissing the
// session: the enlarged anchor, plus the popover once it is attached.
func (c *Controller) safeRect() geom.Rect {
	if c.session == nil {
		return geom.Rect{}
	}
	anchor, ok := c.container.AnchorRect(c.session.Row)
	if !ok {
		return geom.Rect{}
	}
	return anchor.Scaled(c.cfg.SafeFactor).Union(c.session.Rect)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
