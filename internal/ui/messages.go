package ui

import (
	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/reaction"
)

// -- Conversation data --

// MessagesLoadedMsg is sent when the conversation has been fetched.
type MessagesLoadedMsg struct {
	Messages []chat.Message
	Err      error
}

// MessageUpdatedMsg carries a message whose reactions changed, either from
// the user's own toggle or from someone else.
type MessageUpdatedMsg struct {
	Message chat.Message
	// Value is the reaction the local user toggled, nil when every
	// selection was cleared. Its chip plays an effect if the toggle added it.
	Value *string
	Err   error
}

// simulatedReactionMsg is MessageUpdatedMsg's counterpart for reactions by
// other people.
type simulatedReactionMsg struct {
	Message chat.Message
	Err     error
}

// simulateTickMsg schedules the next simulated reaction. Seq guards against
// ticks from a simulation that has since been switched off.
type simulateTickMsg struct {
	Seq int
}

// -- Reaction catalogue --

// CatalogLoadedMsg is sent when the available-reactions snapshot is read.
type CatalogLoadedMsg struct {
	Snapshot reaction.Snapshot
	Err      error
}

// catalogWatchStartedMsg hands the watcher channel to the app.
type catalogWatchStartedMsg struct {
	ch  <-chan reaction.Update
	Err error
}

// catalogUpdateMsg is one reload from the watched reactions file.
type catalogUpdateMsg struct {
	Update reaction.Update
	ch     <-chan reaction.Update
	closed bool
}

// QuickReactionSetMsg reports the outcome of changing the quick reaction.
type QuickReactionSetMsg struct {
	Value string
	Err   error
}

// -- Infrastructure --

// StatusBarClearMsg clears a temporary status bar message. Seq must match the
// bar's current message for the clear to apply.
type StatusBarClearMsg struct {
	Seq int
}

// animationFrameMsg advances every running chip transition.
type animationFrameMsg struct{}
