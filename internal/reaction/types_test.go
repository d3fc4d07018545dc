package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() Snapshot {
	return Snapshot{Reactions: []Descriptor{
		{Value: "a"},
		{Value: "p1", PremiumOnly: true},
		{Value: "b"},
		{Value: "p2", PremiumOnly: true},
		{Value: "p3", PremiumOnly: true},
	}}
}

func values(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Value
	}
	return out
}

func TestAllowed(t *testing.T) {
	s := testSnapshot()
	assert.Equal(t, []string{"a", "p1", "b", "p2", "p3"}, values(s.Allowed(true)))
	assert.Equal(t, []string{"a", "p1", "b"}, values(s.Allowed(false)), "first premium reaction stays as teaser")
}

func TestUsable(t *testing.T) {
	s := testSnapshot()
	assert.True(t, s.Usable("a", false))
	assert.False(t, s.Usable("p1", false))
	assert.True(t, s.Usable("p1", true))
	assert.False(t, s.Usable("missing", true))
}

func TestTop(t *testing.T) {
	s := testSnapshot()

	d, ok := s.Top("", false)
	assert.True(t, ok)
	assert.Equal(t, "a", d.Value)

	d, _ = s.Top("b", false)
	assert.Equal(t, "b", d.Value)

	d, _ = s.Top("p2", false)
	assert.Equal(t, "a", d.Value, "premium quick reaction falls back for free accounts")

	d, _ = s.Top("p2", true)
	assert.Equal(t, "p2", d.Value)

	_, ok = Snapshot{Reactions: []Descriptor{{Value: "x", PremiumOnly: true}}}.Top("", false)
	assert.False(t, ok)
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.True(t, p.IsPlaceholder())
	assert.False(t, Count{Value: "a", Count: 0}.IsPlaceholder())
}

func TestSelectedAndFind(t *testing.T) {
	counts := []Count{
		{Value: "a", Count: 2, Selected: true},
		{Value: "b", Count: 1},
		{Value: "c", Count: 4, Selected: true},
	}
	assert.Equal(t, []string{"a", "c"}, Selected(counts))

	c, ok := Find(counts, "b")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Count)
	_, ok = Find(counts, "z")
	assert.False(t, ok)
}

func TestPeerInitial(t *testing.T) {
	assert.Equal(t, "Ö", Peer{Name: "Özil"}.Initial())
	assert.Equal(t, "?", Peer{}.Initial())
}

func TestDescriptorIcon(t *testing.T) {
	assert.Equal(t, "🔥", Descriptor{Value: "fire", Emoji: "🔥"}.Icon())
	assert.Equal(t, "fire", Descriptor{Value: "fire"}.Icon())
}
