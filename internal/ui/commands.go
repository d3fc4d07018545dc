package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/reactea/internal/notify"
	"github.com/shhac/reactea/internal/reaction"
)

// frameInterval paces chip animations (~30fps).
const frameInterval = 33 * time.Millisecond

// loadMessagesCmd returns a command that fetches the conversation.
func loadMessagesCmd(svc ReactionService) tea.Cmd {
	return func() tea.Msg {
		msgs, err := svc.Messages(context.Background())
		return MessagesLoadedMsg{Messages: msgs, Err: err}
	}
}

// loadCatalogCmd reads the reactions file, or asks the service for its
// reactions when path is empty.
func loadCatalogCmd(svc ReactionService, path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			snap, err := svc.AvailableReactions(context.Background())
			return CatalogLoadedMsg{Snapshot: snap, Err: err}
		}
		snap, err := reaction.LoadCatalog(path)
		return CatalogLoadedMsg{Snapshot: snap, Err: err}
	}
}

// watchCatalogCmd starts watching the reactions file for edits.
func watchCatalogCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		ch, err := reaction.Watch(ctx, path)
		return catalogWatchStartedMsg{ch: ch, Err: err}
	}
}

// waitForCatalogCmd blocks until the watcher delivers the next reload.
func waitForCatalogCmd(ch <-chan reaction.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		return catalogUpdateMsg{Update: u, ch: ch, closed: !ok}
	}
}

// toggleReactionCmd sends the user's reaction change to the service. A nil
// value clears the user's selection on the message.
func toggleReactionCmd(svc ReactionService, msgID string, value *string) tea.Cmd {
	return func() tea.Msg {
		msg, err := svc.ToggleReaction(context.Background(), msgID, value)
		return MessageUpdatedMsg{Message: msg, Value: value, Err: err}
	}
}

// setQuickReactionCmd changes the reaction offered by the collapsed popover.
func setQuickReactionCmd(svc ReactionService, value string) tea.Cmd {
	return func() tea.Msg {
		err := svc.SetQuickReaction(context.Background(), value)
		return QuickReactionSetMsg{Value: value, Err: err}
	}
}

// simulateTickCmd schedules the next reaction by someone else.
func simulateTickCmd(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(_ time.Time) tea.Msg {
		return simulateTickMsg{Seq: seq}
	})
}

// simulateCmd has the service produce one reaction by someone else.
func simulateCmd(svc ReactionService) tea.Cmd {
	return func() tea.Msg {
		msg, err := svc.Simulate(context.Background())
		return simulatedReactionMsg{Message: msg, Err: err}
	}
}

// notifyUpsellCmd sends the premium upsell as an OS notification.
func notifyUpsellCmd(desc reaction.Descriptor) tea.Cmd {
	return func() tea.Msg {
		_ = notify.Upsell(desc.Title, desc.Icon())
		return nil
	}
}

// animationFrameCmd schedules the next chip animation frame.
func animationFrameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(_ time.Time) tea.Msg {
		return animationFrameMsg{}
	})
}
