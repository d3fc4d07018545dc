package recycler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/flow"
	"github.com/shhac/reactea/internal/reaction"
)

var theme = chip.DefaultTheme()

func laidOut(counts ...reaction.Count) []chip.Chip {
	chips := make([]chip.Chip, len(counts))
	for i, c := range counts {
		chips[i] = chip.New(c, reaction.Descriptor{Value: c.Value, Emoji: "*"}, chip.ModeFull, theme)
	}
	return flow.Measure(chips, 80, theme.InnerInset).Chips()
}

func counts(ids ...string) []reaction.Count {
	out := make([]reaction.Count, len(ids))
	for i, id := range ids {
		out[i] = reaction.Count{Value: id, Count: 1}
	}
	return out
}

func settle(r *Recycler) {
	for i := 0; i < 100 && r.Advance(50*time.Millisecond); i++ {
	}
}

func TestApplyInsertsPopIn(t *testing.T) {
	r := New(Options{})
	next := laidOut(counts("a", "b", "c")...)
	script := r.Apply(next)

	assert.Len(t, script.Inserted, 3)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 3, r.Stats().Created)

	v, ok := r.View("a")
	require.True(t, ok)
	assert.Equal(t, 0.0, v.Frame().Opacity, "pop-in starts transparent")
	assert.True(t, r.Animating())

	settle(r)
	assert.False(t, r.Animating())
	assert.Equal(t, 1.0, v.Frame().Opacity)
	assert.Equal(t, next[0].Rect, v.Frame().Rect)
}

func TestApplyCountChangeReusesView(t *testing.T) {
	r := New(Options{})
	r.Apply(laidOut(reaction.Count{Value: "like", Count: 3, Selected: true}, reaction.Count{Value: "fire", Count: 1}))
	settle(r)
	before, _ := r.View("like")
	fireBefore, _ := r.View("fire")

	next := laidOut(reaction.Count{Value: "like", Count: 4, Selected: true}, reaction.Count{Value: "fire", Count: 1})
	script := r.Apply(next)

	assert.Empty(t, script.Removed)
	assert.Empty(t, script.Inserted)
	after, _ := r.View("like")
	assert.Same(t, before, after, "view must survive a count change")
	assert.Equal(t, 4, after.Chip().Count)
	assert.Equal(t, 2, r.Stats().Created, "no new views after the first pass")
	assert.Equal(t, 2, r.Stats().Reused)

	fireAfter, _ := r.View("fire")
	assert.Same(t, fireBefore, fireAfter)
}

func TestApplyMoveAnimatesPosition(t *testing.T) {
	r := New(Options{Duration: 100 * time.Millisecond})
	r.Apply(laidOut(counts("a", "b")...))
	settle(r)
	b, _ := r.View("b")
	from := b.Frame().Rect

	next := laidOut(counts("b", "a")...)
	r.Apply(next)
	assert.Equal(t, from, b.Frame().Rect, "move starts from the old rect")
	r.Advance(50 * time.Millisecond)
	mid := b.Frame().Rect
	assert.NotEqual(t, from, mid)
	settle(r)
	assert.Equal(t, next[0].Rect, b.Frame().Rect)
}

func TestApplyRemovalDefersDisposal(t *testing.T) {
	r := New(Options{Duration: 100 * time.Millisecond})
	r.Apply(laidOut(counts("a", "b", "c")...))
	settle(r)
	a, _ := r.View("a")
	b, _ := r.View("b")

	r.Apply(laidOut(counts("c")...))
	assert.True(t, r.Pending("a"))
	assert.True(t, r.Pending("b"))
	assert.False(t, a.Disposed())
	assert.Equal(t, 1, r.Len())

	views := r.Views()
	require.Len(t, views, 3)
	assert.Equal(t, -1, views[0].Frame().Z, "exiting views draw below live ones")

	settle(r)
	assert.True(t, a.Disposed())
	assert.True(t, b.Disposed())
	assert.False(t, r.Pending("a"))
	assert.Len(t, r.Views(), 1)
}

func TestApplyReinsertRevivesExitingView(t *testing.T) {
	r := New(Options{Duration: 100 * time.Millisecond})
	r.Apply(laidOut(counts("a", "b", "c")...))
	settle(r)
	b, _ := r.View("b")

	r.Apply(laidOut(counts("a", "c")...))
	r.Advance(30 * time.Millisecond)
	require.True(t, r.Pending("b"))

	r.Apply(laidOut(counts("a", "b", "c")...))
	revived, ok := r.View("b")
	require.True(t, ok)
	assert.Same(t, b, revived)
	assert.False(t, r.Pending("b"))
	assert.Equal(t, 1, r.Stats().Revived)

	settle(r)
	assert.False(t, b.Disposed())
	assert.Equal(t, 1.0, b.Frame().Opacity)
}

func TestApplySubstitutionMorphs(t *testing.T) {
	r := New(Options{})
	r.Apply(laidOut(counts("A", "B", "C")...))
	settle(r)
	a, _ := r.View("A")
	aRect := a.Frame().Rect

	script := r.Apply(laidOut(counts("B", "C", "D")...))
	require.True(t, script.Substituted())
	assert.True(t, a.Disposed(), "the substituted view is consumed, not exited")
	assert.False(t, r.Pending("A"))

	d, _ := r.View("D")
	assert.Equal(t, aRect, d.Frame().Rect, "D starts where A was")
	assert.Equal(t, 1.0, d.Frame().Opacity)
	assert.Equal(t, 1, r.Stats().Morphed)
}

func TestApplyZOrderFollowsSequence(t *testing.T) {
	r := New(Options{})
	r.Apply(laidOut(counts("a", "b", "c")...))
	r.Apply(laidOut(counts("c", "a", "b")...))
	for i, id := range []string{"c", "a", "b"} {
		v, _ := r.View(id)
		assert.Equal(t, i, v.Frame().Z, id)
	}
	var order []string
	for _, v := range r.Views() {
		order = append(order, v.ID())
	}
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestApplyModeSwitchReplacesVariant(t *testing.T) {
	r := New(Options{})
	r.Apply(laidOut(counts("a")...))
	full, _ := r.View("a")

	short := []chip.Chip{chip.New(reaction.Count{Value: "a", Count: 1}, reaction.Descriptor{}, chip.ModeShort, theme)}
	r.Apply(flow.Measure(short, 80, 1).Chips())
	v, _ := r.View("a")
	assert.NotSame(t, full, v)
	assert.True(t, full.Disposed())
	assert.IsType(t, &shortView{}, v)
}

func TestFlushDisposesEverything(t *testing.T) {
	r := New(Options{})
	r.Apply(laidOut(counts("a", "b")...))
	r.Apply(laidOut(counts("b")...))
	r.Flush()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Views())
	assert.Equal(t, 2, r.Stats().Disposed)
}

func TestRectForAndEffect(t *testing.T) {
	r := New(Options{})
	next := laidOut(counts("a", "b")...)
	r.Apply(next)
	settle(r)

	rect, ok := r.RectFor("b")
	require.True(t, ok)
	assert.Equal(t, next[1].Rect, rect)

	assert.True(t, r.PlayEffect("b"))
	assert.True(t, r.Animating())
	assert.False(t, r.PlayEffect("zzz"))
}

func TestNewViewVariants(t *testing.T) {
	p := DefaultPalette()
	assert.IsType(t, &fullView{}, NewView(chip.Chip{Mode: chip.ModeFull}, p))
	assert.IsType(t, &shortView{}, NewView(chip.Chip{Mode: chip.ModeShort}, p))
	assert.IsType(t, &placeholderView{}, NewView(chip.Chip{Placeholder: true}, p))
}

func TestRenderFullChip(t *testing.T) {
	r := New(Options{})
	c := chip.New(reaction.Count{Value: "fire", Count: 12}, reaction.Descriptor{Value: "fire", Emoji: "🔥"}, chip.ModeFull, theme)
	r.Apply(flow.Measure([]chip.Chip{c}, 80, 1).Chips())
	settle(r)

	v, _ := r.View("fire")
	out, at := v.Render()
	assert.Equal(t, 0, at.X)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "🔥")
	assert.Contains(t, out, "12")

	v.Dispose()
	out, _ = v.Render()
	assert.Empty(t, out)
}
