// Package demo provides an in-memory ReactionService: a seeded conversation
// whose reactions change as the local user toggles them, plus simulated
// reactions from other people so the reaction bars have something to
// animate.
package demo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/reaction"
)

var (
	ErrUnknownMessage  = errors.New("message not found")
	ErrNotReactable    = errors.New("message does not accept reactions")
	ErrUnknownReaction = errors.New("reaction not available")
	ErrPremiumRequired = errors.New("reaction requires premium")
)

// Selection limits per message.
const (
	maxSelections        = 1
	maxPremiumSelections = 3
	recentLimit          = 3
)

// Service implements ui.ReactionService with in-memory data. It is safe for
// concurrent use: the ui calls it from tea.Cmd goroutines.
type Service struct {
	mu       sync.Mutex
	me       reaction.Peer
	premium  bool
	quick    string
	catalog  reaction.Snapshot
	messages []chat.Message
	rng      *rand.Rand
}

// NewService creates a Service with the seeded conversation and the built-in
// catalogue.
func NewService(premium bool) *Service {
	return &Service{
		me:       peerMe,
		premium:  premium,
		quick:    reaction.Defaults[0].Value,
		catalog:  reaction.DefaultSnapshot(),
		messages: seedMessages(),
		rng:      rand.New(rand.NewPCG(uint64(baseTime.Unix()), 7)),
	}
}

func (s *Service) Me() reaction.Peer { return s.me }

func (s *Service) Premium() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.premium
}

// SetPremium flips the account capability. Selections made with premium
// stay in place when it is revoked.
func (s *Service) SetPremium(premium bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.premium = premium
}

func (s *Service) QuickReaction() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quick
}

// SetCatalog replaces the available-reactions snapshot, e.g. after the
// reactions file changed on disk.
func (s *Service) SetCatalog(snap reaction.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = snap
}

// -- Read operations --

func (s *Service) Messages(_ context.Context) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chat.Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.Clone()
	}
	return out, nil
}

func (s *Service) Message(_ context.Context, id string) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.find(id)
	if err != nil {
		return chat.Message{}, err
	}
	return m.Clone(), nil
}

func (s *Service) AvailableReactions(_ context.Context) (reaction.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog, nil
}

func (s *Service) find(id string) (*chat.Message, error) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return &s.messages[i], nil
		}
	}
	return nil, fmt.Errorf("demo: %s: %w", id, ErrUnknownMessage)
}

// -- Write operations --

// ToggleReaction sets or clears the local user's reaction. A nil value
// clears every selection on the message; a value already selected is
// cleared; any other value is added, evicting the oldest selection when the
// account is at its limit.
func (s *Service) ToggleReaction(_ context.Context, msgID string, value *string) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.find(msgID)
	if err != nil {
		return chat.Message{}, err
	}
	if !m.Reactable {
		return chat.Message{}, fmt.Errorf("demo: %s: %w", msgID, ErrNotReactable)
	}

	if value == nil {
		for _, v := range m.Selected() {
			m.Reactions = remove(m.Reactions, v, s.me)
		}
		return m.Clone(), nil
	}

	v := *value
	if _, ok := s.catalog.Lookup(v); !ok {
		return chat.Message{}, fmt.Errorf("demo: %q: %w", v, ErrUnknownReaction)
	}
	if c, ok := reaction.Find(m.Reactions, v); ok && c.Selected {
		m.Reactions = remove(m.Reactions, v, s.me)
		return m.Clone(), nil
	}
	if !s.catalog.Usable(v, s.premium) {
		return chat.Message{}, fmt.Errorf("demo: %q: %w", v, ErrPremiumRequired)
	}

	limit := maxSelections
	if s.premium {
		limit = maxPremiumSelections
	}
	for selected := m.Selected(); len(selected) >= limit; selected = m.Selected() {
		m.Reactions = remove(m.Reactions, selected[0], s.me)
	}
	m.Reactions = add(m.Reactions, v, s.me, true)
	return m.Clone(), nil
}

// SetQuickReaction changes the reaction shown in the collapsed popover.
func (s *Service) SetQuickReaction(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog.Lookup(value); !ok {
		return fmt.Errorf("demo: %q: %w", value, ErrUnknownReaction)
	}
	if !s.catalog.Usable(value, s.premium) {
		return fmt.Errorf("demo: %q: %w", value, ErrPremiumRequired)
	}
	s.quick = value
	return nil
}

// Simulate has someone else react to a random message. If that person had
// already used the chosen reaction, it is taken back instead, so counts go
// both ways over time.
func (s *Service) Simulate(ctx context.Context) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var reactable []int
	for i, m := range s.messages {
		if m.Reactable {
			reactable = append(reactable, i)
		}
	}
	if len(reactable) == 0 || len(s.catalog.Reactions) == 0 {
		return chat.Message{}, fmt.Errorf("demo: nothing to react to")
	}

	m := &s.messages[reactable[s.rng.IntN(len(reactable))]]
	peer := others[s.rng.IntN(len(others))]
	// bias towards reactions already on the message
	var v string
	if len(m.Reactions) > 0 && s.rng.IntN(3) > 0 {
		v = m.Reactions[s.rng.IntN(len(m.Reactions))].Value
	} else {
		v = s.catalog.Reactions[s.rng.IntN(len(s.catalog.Reactions))].Value
	}

	if c, ok := reaction.Find(m.Reactions, v); ok && slices.Contains(c.Recent, peer) {
		m.Reactions = remove(m.Reactions, v, peer)
	} else {
		m.Reactions = add(m.Reactions, v, peer, false)
	}
	return m.Clone(), nil
}

// add records peer's reaction. New aggregates are appended so existing
// chips keep their positions.
func add(counts []reaction.Count, value string, peer reaction.Peer, mine bool) []reaction.Count {
	i := slices.IndexFunc(counts, func(c reaction.Count) bool { return c.Value == value })
	if i < 0 {
		return append(counts, reaction.Count{Value: value, Count: 1, Selected: mine, Recent: []reaction.Peer{peer}})
	}
	c := &counts[i]
	c.Count++
	if mine {
		c.Selected = true
	}
	c.Recent = slices.Insert(slices.DeleteFunc(c.Recent, func(p reaction.Peer) bool { return p == peer }), 0, peer)
	if len(c.Recent) > recentLimit {
		c.Recent = c.Recent[:recentLimit]
	}
	return counts
}

// remove takes back peer's reaction, dropping the aggregate at zero.
func remove(counts []reaction.Count, value string, peer reaction.Peer) []reaction.Count {
	i := slices.IndexFunc(counts, func(c reaction.Count) bool { return c.Value == value })
	if i < 0 {
		return counts
	}
	c := &counts[i]
	c.Count--
	if peer.ID == peerMe.ID {
		c.Selected = false
	}
	c.Recent = slices.DeleteFunc(c.Recent, func(p reaction.Peer) bool { return p == peer })
	if c.Count <= 0 {
		return slices.Delete(counts, i, i+1)
	}
	return counts
}
