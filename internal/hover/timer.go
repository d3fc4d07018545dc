package hover

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerKind int

const (
	settleTimer timerKind = iota
	revealTimer
	expandTimer
	lockTimer
)

func (k timerKind) String() string {
	switch k {
	case settleTimer:
		return "settle"
	case revealTimer:
		return "reveal"
	case expandTimer:
		return "expand"
	case lockTimer:
		return "lock"
	}
	return "unknown"
}

// TimerMsg is delivered when one of the controller's timers elapses. Route it
// back through Controller.Update. A TimerMsg whose seq no longer matches the
// timer it was armed by is stale and has no effect.
type TimerMsg struct {
	kind timerKind
	seq  int
}

// scheduler turns a delay into a command that later yields msg.
type scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// timer is a cancellable one-shot. Cancelling bumps the sequence number so a
// tick already in flight is recognised as stale when it arrives.
type timer struct {
	kind  timerKind
	seq   int
	armed bool
}

func (t *timer) arm(s scheduler, d time.Duration) tea.Cmd {
	t.seq++
	t.armed = true
	return s(d, TimerMsg{kind: t.kind, seq: t.seq})
}

func (t *timer) cancel() {
	if t.armed {
		t.seq++
		t.armed = false
	}
}

// fire consumes msg if it belongs to the currently armed generation.
func (t *timer) fire(msg TimerMsg) bool {
	if !t.armed || msg.kind != t.kind || msg.seq != t.seq {
		return false
	}
	t.armed = false
	return true
}
