// Package chat holds the conversation model shown by the ui.
package chat

import (
	"slices"
	"time"

	"github.com/shhac/reactea/internal/reaction"
)

// Message is one row of the conversation.
type Message struct {
	ID       string
	Author   reaction.Peer
	Body     string
	Markdown bool
	SentAt   time.Time
	// Reactable is false for service messages (joins, pins) which take no
	// reactions.
	Reactable bool
	Reactions []reaction.Count
}

// Clone returns a copy that shares no slices with m.
func (m Message) Clone() Message {
	m.Reactions = slices.Clone(m.Reactions)
	for i := range m.Reactions {
		m.Reactions[i].Recent = slices.Clone(m.Reactions[i].Recent)
	}
	return m
}

// Selected returns the reaction values the local user has chosen.
func (m Message) Selected() []string { return reaction.Selected(m.Reactions) }

// Total is the number of reactions on the message.
func (m Message) Total() int {
	n := 0
	for _, c := range m.Reactions {
		n += c.Count
	}
	return n
}
