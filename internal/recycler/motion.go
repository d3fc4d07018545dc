package recycler

import (
	"time"

	"github.com/shhac/reactea/internal/geom"
)

// Frame is a view's presentation state at the current animation instant.
type Frame struct {
	Rect    geom.Rect
	Opacity float64
	Scale   float64
	Z       int
}

// transition tweens rect, opacity and scale with an ease-out curve.
type transition struct {
	from, to Frame
	elapsed  time.Duration
	duration time.Duration
}

func (t *transition) advance(dt time.Duration) bool {
	t.elapsed += dt
	return t.elapsed >= t.duration
}

func (t transition) progress() float64 {
	if t.duration <= 0 || t.elapsed >= t.duration {
		return 1
	}
	p := float64(t.elapsed) / float64(t.duration)
	inv := 1 - p
	return 1 - inv*inv*inv
}

func (t transition) frame() Frame {
	p := t.progress()
	return Frame{
		Rect:    geom.Lerp(t.from.Rect, t.to.Rect, p),
		Opacity: t.from.Opacity + (t.to.Opacity-t.from.Opacity)*p,
		Scale:   t.from.Scale + (t.to.Scale-t.from.Scale)*p,
	}
}

// motion is the animation state shared by every view variant.
type motion struct {
	target   Frame
	current  Frame
	tr       *transition
	effect   time.Duration
	disposed bool
}

func settled(r geom.Rect) Frame {
	return Frame{Rect: r, Opacity: 1, Scale: 1}
}

// animateTo starts a transition from the current frame to target. A zero
// duration jumps straight there.
func (m *motion) animateTo(target Frame, d time.Duration) {
	target.Z = m.current.Z
	m.target = target
	if d <= 0 || m.current == target {
		m.current = target
		m.tr = nil
		return
	}
	m.tr = &transition{from: m.current, to: target, duration: d}
}

func (m *motion) jump(f Frame) {
	f.Z = m.current.Z
	m.current = f
	m.target = f
	m.tr = nil
}

// step advances the transition and effect; it reports whether anything is
// still moving.
func (m *motion) step(dt time.Duration) bool {
	if m.effect > 0 {
		m.effect -= dt
		if m.effect < 0 {
			m.effect = 0
		}
	}
	if m.tr != nil {
		done := m.tr.advance(dt)
		z := m.current.Z
		m.current = m.tr.frame()
		m.current.Z = z
		if done {
			m.current = m.target
			m.current.Z = z
			m.tr = nil
		}
	}
	return m.tr != nil || m.effect > 0
}

func (m *motion) animating() bool { return m.tr != nil || m.effect > 0 }
