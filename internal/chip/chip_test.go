package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/reaction"
)

func peers(n int) []reaction.Peer {
	out := make([]reaction.Peer, n)
	for i := range out {
		out[i] = reaction.Peer{ID: string(rune('a' + i)), Name: string(rune('A' + i))}
	}
	return out
}

func TestSizeFull(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		name  string
		count reaction.Count
		want  geom.Size
	}{
		// outer + icon + inner + text + outer
		{"counter", reaction.Count{Value: "a", Count: 12}, geom.Size{Width: 1 + 2 + 1 + 2 + 1, Height: 3}},
		{"compact counter", reaction.Count{Value: "a", Count: 1500}, geom.Size{Width: 1 + 2 + 1 + 4 + 1, Height: 3}},
		{"zero count", reaction.Count{Value: "a"}, geom.Size{Width: 1 + 2 + 1, Height: 3}},
		{"one avatar", reaction.Count{Value: "a", Count: 1, Recent: peers(1)}, geom.Size{Width: 1 + 2 + 1 + 2 + 1, Height: 3}},
		{"three avatars", reaction.Count{Value: "a", Count: 3, Recent: peers(3)}, geom.Size{Width: 1 + 2 + 1 + 3 + 1, Height: 3}},
		{"too many avatars", reaction.Count{Value: "a", Count: 4, Recent: peers(4)}, geom.Size{Width: 1 + 2 + 1 + 1 + 1, Height: 3}},
		{"unknown reactors", reaction.Count{Value: "a", Count: 3, Recent: peers(2)}, geom.Size{Width: 1 + 2 + 1 + 1 + 1, Height: 3}},
		{"placeholder", reaction.Placeholder(), geom.Size{Width: 5, Height: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Size(tt.count, ModeFull, theme))
		})
	}
}

func TestSizeShort(t *testing.T) {
	theme := DefaultTheme()
	assert.Equal(t, geom.Size{Width: 3, Height: 1}, Size(reaction.Count{Value: "a", Count: 1}, ModeShort, theme))
	assert.Equal(t, geom.Size{Width: 5, Height: 1}, Size(reaction.Count{Value: "a", Count: 42}, ModeShort, theme))
	// short mode never stacks avatars
	assert.Equal(t, geom.Size{Width: 4, Height: 1}, Size(reaction.Count{Value: "a", Count: 2, Recent: peers(2)}, ModeShort, theme))
}

func TestAvatarStackWidth(t *testing.T) {
	theme := DefaultTheme()
	theme.AvatarStride = 3
	assert.Equal(t, 0, AvatarStackWidth(0, theme))
	assert.Equal(t, theme.IconWidth, AvatarStackWidth(1, theme))
	assert.Equal(t, 6, AvatarStackWidth(2, theme))
	assert.Equal(t, 9, AvatarStackWidth(3, theme))
}

func TestAvatarsDisabled(t *testing.T) {
	theme := DefaultTheme()
	theme.ShowAvatars = false
	c := reaction.Count{Value: "a", Count: 2, Recent: peers(2)}
	assert.False(t, ShowsAvatars(c, theme))
	assert.Empty(t, New(c, reaction.Descriptor{}, ModeFull, theme).Avatars)
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1000:       "1K",
		1234:       "1.2K",
		12_345:     "12K",
		999_999:    "999K",
		3_400_000:  "3.4M",
		42_000_000: "42M",
	}
	for n, want := range tests {
		assert.Equal(t, want, FormatCount(n), "FormatCount(%d)", n)
	}
}

func TestNew(t *testing.T) {
	theme := DefaultTheme()
	desc := reaction.Descriptor{Value: "fire", Emoji: "🔥", Title: "Fire"}

	c := New(reaction.Count{Value: "fire", Count: 5, Selected: true}, desc, ModeFull, theme)
	assert.Equal(t, "fire", c.StableID)
	assert.Equal(t, "🔥", c.Icon)
	assert.True(t, c.Selected)
	assert.Equal(t, "5", c.CounterText())
	assert.Equal(t, Size(reaction.Count{Value: "fire", Count: 5}, ModeFull, theme), c.MinSize)

	p := New(reaction.Placeholder(), reaction.Descriptor{}, ModeFull, theme)
	assert.True(t, p.Placeholder)
	assert.Equal(t, reaction.PlaceholderValue, p.StableID)
	assert.Equal(t, "", p.CounterText())

	missing := New(reaction.Count{Value: "gone", Count: 1}, reaction.Descriptor{}, ModeShort, theme)
	assert.Equal(t, "gone", missing.Icon)
	assert.Equal(t, "", missing.CounterText())
}
