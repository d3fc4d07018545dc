package demo

import (
	"time"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/reaction"
)

// Fictional people
var (
	peerMe    = reaction.Peer{ID: "me", Name: "You"}
	peerAlice = reaction.Peer{ID: "alice", Name: "Alice"}
	peerBob   = reaction.Peer{ID: "bob", Name: "Bob"}
	peerCarol = reaction.Peer{ID: "carol", Name: "Carol"}
	peerDave  = reaction.Peer{ID: "dave", Name: "Dave"}
	peerEve   = reaction.Peer{ID: "eve", Name: "Eve"}
	peerFrank = reaction.Peer{ID: "frank", Name: "Frank"}
)

// others react during simulation.
var others = []reaction.Peer{peerAlice, peerBob, peerCarol, peerDave, peerEve, peerFrank}

var baseTime = time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

func seedMessages() []chat.Message {
	return []chat.Message{
		{
			ID: "m01", Author: peerAlice, SentAt: baseTime,
			Body:      "Morning all. The staging deploy finished overnight, nothing on fire as far as I can tell.",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "thumbs_up", Count: 2, Recent: []reaction.Peer{peerBob, peerCarol}},
				{Value: "fire", Count: 1, Recent: []reaction.Peer{peerDave}},
			},
		},
		{
			ID: "m02", Author: peerBob, SentAt: baseTime.Add(2 * time.Minute),
			Body:      "Famous last words.",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "joy", Count: 4, Selected: true, Recent: []reaction.Peer{peerMe, peerAlice, peerEve}},
			},
		},
		{
			ID: "m03", Author: peerCarol, SentAt: baseTime.Add(5 * time.Minute),
			Body:      "Carol pinned a message",
			Reactable: false,
		},
		{
			ID: "m04", Author: peerCarol, SentAt: baseTime.Add(6 * time.Minute), Markdown: true,
			Body: "**Release checklist** for Thursday:\n\n" +
				"- freeze `main` at noon\n" +
				"- run the migration dry-run\n" +
				"- post the changelog in #announcements",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "eyes", Count: 3, Recent: []reaction.Peer{peerAlice, peerBob, peerDave}},
				{Value: "thumbs_up", Count: 12, Selected: true, Recent: []reaction.Peer{peerMe, peerEve, peerFrank}},
				{Value: "rocket", Count: 1, Recent: []reaction.Peer{peerFrank}},
			},
		},
		{
			ID: "m05", Author: peerDave, SentAt: baseTime.Add(14 * time.Minute),
			Body:      "Who owns the migration dry-run this time? Last release it took forty minutes and nobody noticed it had stalled on the audit table.",
			Reactable: true,
		},
		{
			ID: "m06", Author: peerMe, SentAt: baseTime.Add(15 * time.Minute),
			Body:      "I can take it. I'll add a progress log so we notice next time.",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "heart", Count: 1, Recent: []reaction.Peer{peerDave}},
				{Value: "party", Count: 2, Recent: []reaction.Peer{peerAlice, peerCarol}},
			},
		},
		{
			ID: "m07", Author: peerEve, SentAt: baseTime.Add(21 * time.Minute), Markdown: true,
			Body:      "Reminder that the `audit_events` table is ~40M rows now. Use `--batch-size 5000` or it will time out.",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "thinking", Count: 1536, Recent: []reaction.Peer{peerBob, peerCarol, peerFrank}},
			},
		},
		{
			ID: "m08", Author: peerFrank, SentAt: baseTime.Add(30 * time.Minute),
			Body:      "Frank joined the channel",
			Reactable: false,
		},
		{
			ID: "m09", Author: peerFrank, SentAt: baseTime.Add(31 * time.Minute),
			Body:      "Hi everyone 👋",
			Reactable: true,
			Reactions: []reaction.Count{
				{Value: "thumbs_up", Count: 1, Recent: []reaction.Peer{peerAlice}},
				{Value: "heart", Count: 1, Recent: []reaction.Peer{peerEve}},
				{Value: "party", Count: 1, Recent: []reaction.Peer{peerCarol}},
				{Value: "eyes", Count: 1, Recent: []reaction.Peer{peerBob}},
				{Value: "fire", Count: 1, Recent: []reaction.Peer{peerDave}},
			},
		},
		{
			ID: "m10", Author: peerAlice, SentAt: baseTime.Add(40 * time.Minute),
			Body:      "Lunch at the usual place? I'll book for six.",
			Reactable: true,
		},
	}
}
