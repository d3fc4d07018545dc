package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/shhac/reactea/internal/chat"
	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
	"github.com/shhac/reactea/internal/reaction"
)

var (
	testAlice = reaction.Peer{ID: "alice", Name: "Alice"}
	testBob   = reaction.Peer{ID: "bob", Name: "Bob"}
	testCarol = reaction.Peer{ID: "carol", Name: "Carol"}
)

// Layout at width 60, top 0:
//
//	a  rows 0-5   header, "hello", 3-line bar, blank; anchor (8,1)
//	s  rows 6-7   service line, blank
//	b  rows 8-10  header, "second", blank
func testMessages() []chat.Message {
	at := time.Date(2026, 2, 15, 9, 30, 0, 0, time.UTC)
	return []chat.Message{
		{
			ID: "a", Author: testAlice, Body: "hello", SentAt: at, Reactable: true,
			Reactions: []reaction.Count{{Value: "thumbs_up", Count: 2, Recent: []reaction.Peer{testBob, testCarol}}},
		},
		{ID: "s", Author: testBob, Body: "Bob joined", SentAt: at},
		{ID: "b", Author: testCarol, Body: "second", SentAt: at, Reactable: true},
	}
}

func newTestList(width, height, top int) *MessageListModel {
	l := NewMessageListModel(chip.DefaultTheme(), chip.ModeFull, -1)
	l.SetSize(width, height, top)
	l.SetMessages(testMessages())
	return l
}

func TestMessageList_Layout(t *testing.T) {
	l := newTestList(60, 20, 0)
	want := []struct {
		id        string
		y, height int
	}{
		{"a", 0, 6},
		{"s", 6, 2},
		{"b", 8, 3},
	}
	if len(l.rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(l.rows), len(want))
	}
	for i, w := range want {
		r := l.rows[i]
		if r.id != w.id || r.y != w.y || r.height != w.height {
			t.Errorf("row %d = {%s y=%d h=%d}, want {%s y=%d h=%d}", i, r.id, r.y, r.height, w.id, w.y, w.height)
		}
	}
	if l.total != 11 {
		t.Errorf("total = %d, want 11", l.total)
	}
	if id, _ := l.Cursor(); id != "b" {
		t.Errorf("cursor = %q, want newest message", id)
	}
}

func TestMessageList_RowAt(t *testing.T) {
	l := newTestList(60, 20, 0)
	tests := []struct {
		name   string
		p      geom.Point
		want   hover.RowID
		wantOK bool
	}{
		{"first row", geom.Point{X: 5, Y: 0}, "a", true},
		{"bar belongs to its row", geom.Point{X: 5, Y: 4}, "a", true},
		{"service row", geom.Point{X: 5, Y: 6}, "s", true},
		{"last row", geom.Point{X: 5, Y: 9}, "b", true},
		{"below content", geom.Point{X: 5, Y: 11}, "", false},
		{"scrollbar column", geom.Point{X: 59, Y: 0}, "", false},
		{"outside", geom.Point{X: -1, Y: 0}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.RowAt(tt.p)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RowAt(%+v) = %q, %v; want %q, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMessageList_Neighbours(t *testing.T) {
	l := newTestList(60, 20, 0)
	if _, ok := l.RowAbove("a"); ok {
		t.Error("RowAbove(a) should not exist")
	}
	if id, _ := l.RowBelow("a"); id != "s" {
		t.Errorf("RowBelow(a) = %q, want s", id)
	}
	if id, _ := l.RowAbove("b"); id != "s" {
		t.Errorf("RowAbove(b) = %q, want s", id)
	}
	if _, ok := l.RowBelow("b"); ok {
		t.Error("RowBelow(b) should not exist")
	}
	if _, ok := l.RowBelow("missing"); ok {
		t.Error("RowBelow(missing) should not exist")
	}
}

func TestMessageList_Geometry(t *testing.T) {
	tests := []struct {
		name string
		top  int
		want geom.Rect
	}{
		{"list at top", 0, geom.R(8, 1, anchorWidth, 1)},
		{"list below a header", 2, geom.R(8, 3, anchorWidth, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestList(60, 20, tt.top)
			got, ok := l.AnchorRect("a")
			if !ok || got != tt.want {
				t.Errorf("AnchorRect(a) = %+v, %v; want %+v", got, ok, tt.want)
			}
			if r, _ := l.RowRect("a"); r != geom.R(0, tt.top, 59, 6) {
				t.Errorf("RowRect(a) = %+v", r)
			}
			if vp := l.Viewport(); vp != geom.R(0, tt.top, 59, 20) {
				t.Errorf("Viewport() = %+v", vp)
			}
		})
	}
}

func TestMessageList_ServiceRows(t *testing.T) {
	l := newTestList(60, 20, 0)
	if l.AcceptsReactions("s") {
		t.Error("service message should not accept reactions")
	}
	if _, ok := l.AnchorRect("s"); ok {
		t.Error("service message should have no anchor")
	}
	if chips := l.PopoverChips("s", true); chips != nil {
		t.Errorf("PopoverChips(s) = %v, want nil", chip.IDs(chips))
	}
	if !l.AcceptsReactions("b") {
		t.Error("b should accept reactions")
	}
}

func TestMessageList_OffscreenRowsAreStale(t *testing.T) {
	l := newTestList(60, 4, 0)
	if l.Offset() != 7 {
		t.Fatalf("Offset() = %d, want 7 (scrolled to newest)", l.Offset())
	}
	if _, ok := l.RowRect("a"); ok {
		t.Error("row a is scrolled away and should report no rect")
	}
	if _, ok := l.AnchorRect("a"); ok {
		t.Error("row a is scrolled away and should report no anchor")
	}
	if r, ok := l.RowRect("s"); !ok || r.Y != -1 {
		t.Errorf("RowRect(s) = %+v, %v; want partly visible at y=-1", r, ok)
	}

	if !l.ScrollBy(-100) {
		t.Fatal("ScrollBy should move")
	}
	if l.Offset() != 0 {
		t.Errorf("Offset() = %d, want clamped to 0", l.Offset())
	}
	if l.ScrollBy(-1) {
		t.Error("ScrollBy past the top should report no movement")
	}
	if _, ok := l.RowRect("a"); !ok {
		t.Error("row a should be back in view")
	}
}

func TestMessageList_CursorScrollsIntoView(t *testing.T) {
	l := newTestList(60, 4, 0)
	if !l.CursorToTop() {
		t.Error("moving to the first message should scroll")
	}
	if l.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", l.Offset())
	}
	if l.MoveCursor(-1) {
		t.Error("cursor is already at the top")
	}
	l.MoveCursor(2)
	if id, _ := l.Cursor(); id != "b" {
		t.Errorf("cursor = %q, want b", id)
	}
	if l.Offset()+l.height < l.rows[2].y+l.rows[2].height {
		t.Errorf("offset %d leaves row b cut off", l.Offset())
	}
}

func barPoint(t *testing.T, l *MessageListModel, id, value string) geom.Point {
	t.Helper()
	r, ok := l.row(hover.RowID(id))
	if !ok {
		t.Fatalf("no row %s", id)
	}
	rect, ok := l.bars[id].layout.RectFor(value)
	if !ok {
		t.Fatalf("no chip %s in bar %s", value, id)
	}
	return geom.Point{X: gutterWidth + rect.X + 1, Y: l.rowScreenY(r) + r.barY + rect.Y + 1}
}

func TestMessageList_ChipAt(t *testing.T) {
	l := newTestList(60, 20, 0)

	id, c, ok := l.ChipAt(barPoint(t, l, "a", "thumbs_up"))
	if !ok || id != "a" || c.Value != "thumbs_up" {
		t.Errorf("ChipAt = %q, %q, %v; want a/thumbs_up", id, c.Value, ok)
	}
	if len(c.Avatars) != 2 {
		t.Errorf("avatars = %d, want 2 (every reactor is known)", len(c.Avatars))
	}

	_, c, ok = l.ChipAt(barPoint(t, l, "a", reaction.PlaceholderValue))
	if !ok || !c.Placeholder {
		t.Errorf("expected the placeholder chip, got %+v", c)
	}

	if _, _, ok := l.ChipAt(geom.Point{X: 3, Y: 0}); ok {
		t.Error("header line has no chips")
	}
	if _, _, ok := l.ChipAt(geom.Point{X: 3, Y: 9}); ok {
		t.Error("message without reactions has no bar")
	}
}

func TestMessageList_UpdateMessageReusesViews(t *testing.T) {
	l := newTestList(60, 20, 0)
	bar := l.bars["a"]
	if got := bar.rec.Stats().Created; got != 2 {
		t.Fatalf("Created = %d, want 2", got)
	}

	msg, _ := l.Message("a")
	msg.Reactions = []reaction.Count{
		{Value: "thumbs_up", Count: 3, Selected: true},
		{Value: "heart", Count: 1, Recent: []reaction.Peer{testAlice}},
	}
	if !l.UpdateMessage(msg) {
		t.Fatal("UpdateMessage returned false")
	}
	if l.bars["a"] != bar {
		t.Fatal("bar was rebuilt instead of reused")
	}
	st := bar.rec.Stats()
	if st.Created != 3 || st.Reused != 2 {
		t.Errorf("stats = %+v, want 1 new view and 2 reused", st)
	}
	if l.UpdateMessage(chat.Message{ID: "nope"}) {
		t.Error("UpdateMessage of unknown id should return false")
	}
}

func TestMessageList_LockedBarChips(t *testing.T) {
	l := newTestList(60, 20, 0)
	msg, _ := l.Message("b")
	msg.Reactions = []reaction.Count{
		{Value: "rocket", Count: 1, Recent: []reaction.Peer{testBob}},
		{Value: "crown", Count: 1, Selected: true},
	}
	l.UpdateMessage(msg)

	tests := []struct {
		premium bool
		value   string
		locked  bool
	}{
		{false, "rocket", true},
		{false, "crown", false}, // already held
		{true, "rocket", false},
	}
	for _, tt := range tests {
		l.SetPremium(tt.premium)
		_, c, ok := l.ChipAt(barPoint(t, l, "b", tt.value))
		if !ok {
			t.Fatalf("no chip %s", tt.value)
		}
		if c.Locked != tt.locked {
			t.Errorf("premium=%v %s locked = %v, want %v", tt.premium, tt.value, c.Locked, tt.locked)
		}
	}
}

func TestMessageList_PopoverChips(t *testing.T) {
	tests := []struct {
		name     string
		premium  bool
		quick    string
		expanded bool
		want     []string
		locked   []string
	}{
		{"collapsed shows the quick reaction", false, "fire", false, []string{"fire"}, nil},
		{"unusable quick falls back", false, "rocket", false, []string{"thumbs_up"}, nil},
		{"premium may use it", true, "rocket", false, []string{"rocket"}, nil},
		{
			"expanded keeps one teaser", false, "", true,
			[]string{"thumbs_up", "heart", "joy", "fire", "party", "eyes", "thinking", "thumbs_down", "rocket"},
			[]string{"rocket"},
		},
		{
			"expanded premium", true, "", true,
			[]string{"thumbs_up", "heart", "joy", "fire", "party", "eyes", "thinking", "thumbs_down", "rocket", "unicorn", "crown"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestList(60, 20, 0)
			l.SetPremium(tt.premium)
			l.SetQuick(tt.quick)
			chips := l.PopoverChips("a", tt.expanded)
			if got := chip.IDs(chips); strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("chips = %v, want %v", got, tt.want)
			}
			var locked []string
			for _, c := range chips {
				if c.Mode != chip.ModeFull || c.CounterText() != "" {
					t.Errorf("%s: popover chips are full-size without counters", c.Value)
				}
				if c.Locked {
					locked = append(locked, c.Value)
				}
			}
			if strings.Join(locked, ",") != strings.Join(tt.locked, ",") {
				t.Errorf("locked = %v, want %v", locked, tt.locked)
			}
		})
	}
}

func TestMessageList_PopoverShowsSelection(t *testing.T) {
	l := newTestList(60, 20, 0)
	l.SetChipMode(chip.ModeShort)
	msg, _ := l.Message("a")
	msg.Reactions[0].Selected = true
	l.UpdateMessage(msg)

	for _, c := range l.PopoverChips("a", true) {
		if c.Selected != (c.Value == "thumbs_up") {
			t.Errorf("%s selected = %v", c.Value, c.Selected)
		}
	}
}

func TestMessageList_SelectionMode(t *testing.T) {
	l := newTestList(60, 20, 0)
	l.ToggleSelected("a")
	if l.SelectedCount() != 0 {
		t.Error("selection outside selection mode should be ignored")
	}
	l.SetSelecting(true)
	if !l.InSelectionMode() {
		t.Fatal("expected selection mode")
	}
	l.ToggleSelected("a")
	l.ToggleSelected("b")
	l.ToggleSelected("b")
	if l.SelectedCount() != 1 {
		t.Errorf("SelectedCount() = %d, want 1", l.SelectedCount())
	}
	if !strings.Contains(l.View(), "●") {
		t.Error("selected row should show a filled marker")
	}
	l.SetSelecting(false)
	if l.SelectedCount() != 0 {
		t.Error("leaving selection mode should clear the selection")
	}
}

func TestMessageList_View(t *testing.T) {
	l := newTestList(60, 20, 0)
	out := ansi.Strip(l.View())
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("lines = %d, want 20", len(lines))
	}
	for _, want := range []string{"Alice", "09:30", "hello", "Bob joined", "second", anchorGlyph, "👍"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestMessageList_EmptyView(t *testing.T) {
	l := NewMessageListModel(chip.DefaultTheme(), chip.ModeFull, -1)
	l.SetSize(60, 10, 0)
	if !strings.Contains(l.View(), "No messages yet") {
		t.Error("expected empty state")
	}
	if _, ok := l.Cursor(); ok {
		t.Error("empty list has no cursor")
	}
}
