package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/flow"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
	"github.com/shhac/reactea/internal/reaction"
)

func testSession(id string, values ...string) hover.Session {
	th := chip.DefaultTheme()
	var chips []chip.Chip
	for _, v := range values {
		d, _ := reaction.DefaultSnapshot().Lookup(v)
		chips = append(chips, chip.New(reaction.Count{Value: v}, d, chip.ModeFull, th))
	}
	layout := flow.Measure(chips, 36, th.InnerInset)
	return hover.Session{
		ID:      id,
		Row:     "m1",
		Rect:    geom.R(4, 2, layout.Size.Width+2, layout.Size.Height+2),
		Layout:  layout,
		Padding: 1,
	}
}

func TestPopoverSurface_Lifecycle(t *testing.T) {
	p := newPopoverSurface(-1)
	if _, _, ok := p.Render(); ok {
		t.Fatal("nothing attached yet")
	}

	p.Attach(testSession("s1", "thumbs_up"))
	block, at, ok := p.Render()
	if !ok {
		t.Fatal("expected a popover")
	}
	if at != (geom.Point{X: 4, Y: 2}) {
		t.Errorf("origin = %+v, want (4,2)", at)
	}
	lines := strings.Split(ansi.Strip(block), "\n")
	if len(lines) != 5 {
		t.Fatalf("height = %d, want 5", len(lines))
	}
	if !strings.Contains(lines[2], "👍") {
		t.Errorf("chip row = %q, want the icon", lines[2])
	}
	if !strings.HasPrefix(lines[0], "╭") {
		t.Errorf("frame top = %q, want a rounded border", lines[0])
	}

	p.Update(testSession("s1", "thumbs_up", "heart", "joy"))
	if got := p.rec.Len(); got != 3 {
		t.Errorf("views = %d, want 3 after expanding", got)
	}
	if st := p.rec.Stats(); st.Created != 3 || st.Reused != 1 {
		t.Errorf("stats = %+v, want the quick chip reused", st)
	}

	p.Detach("other")
	if !p.Visible() {
		t.Error("detaching a different session must not close the popover")
	}
	p.Detach("s1")
	if p.Visible() {
		t.Error("popover should be closed")
	}
	if p.rec.Len() != 0 {
		t.Errorf("views = %d after detach, want 0", p.rec.Len())
	}
}

func TestPopoverSurface_AttachReplacesViews(t *testing.T) {
	p := newPopoverSurface(-1)
	p.Attach(testSession("s1", "thumbs_up", "heart"))
	p.Attach(testSession("s2", "fire"))
	if p.rec.Len() != 1 {
		t.Errorf("views = %d, want only the new session's chip", p.rec.Len())
	}
	if _, ok := p.rec.View("thumbs_up"); ok {
		t.Error("previous session's view survived")
	}
}
