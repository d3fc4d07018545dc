package ui

import (
	"context"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/reaction"
)

// ReactionService is the message and reaction backend used by the UI layer.
// *demo.Service satisfies this interface.
type ReactionService interface {
	Me() reaction.Peer
	Premium() bool
	SetPremium(premium bool)
	QuickReaction() string
	SetCatalog(snap reaction.Snapshot)
	Messages(ctx context.Context) ([]chat.Message, error)
	AvailableReactions(ctx context.Context) (reaction.Snapshot, error)
	ToggleReaction(ctx context.Context, msgID string, value *string) (chat.Message, error)
	SetQuickReaction(ctx context.Context, value string) error
	Simulate(ctx context.Context) (chat.Message, error)
}
