package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shhac/reactea/internal/reaction"
)

func TestCloneDetachesReactions(t *testing.T) {
	alice := reaction.Peer{ID: "alice", Name: "Alice"}
	m := Message{
		ID:        "m1",
		Reactable: true,
		Reactions: []reaction.Count{{Value: "fire", Count: 1, Recent: []reaction.Peer{alice}}},
	}
	c := m.Clone()
	c.Reactions[0].Count = 5
	c.Reactions[0].Recent[0].Name = "Mallory"

	assert.Equal(t, 1, m.Reactions[0].Count)
	assert.Equal(t, "Alice", m.Reactions[0].Recent[0].Name)
}

func TestTotalAndSelected(t *testing.T) {
	m := Message{Reactions: []reaction.Count{
		{Value: "fire", Count: 3, Selected: true},
		{Value: "eyes", Count: 2},
		{Value: "joy", Count: 1, Selected: true},
	}}
	assert.Equal(t, 6, m.Total())
	assert.Equal(t, []string{"fire", "joy"}, m.Selected())
}
