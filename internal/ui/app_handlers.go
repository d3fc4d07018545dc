package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
	"github.com/shhac/reactea/internal/notify"
	"github.com/shhac/reactea/internal/reaction"
)

const (
	flashDuration = 3 * time.Second
	wheelStep     = 3
)

// -- Conversation handlers --

// handleMessageMsg processes loading, reaction updates and live reactions.
func (m App) handleMessageMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MessagesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = formatUserError(msg.Err.Error())
			return m, nil
		}
		m.loadErr = ""
		m.list.SetMessages(msg.Messages)
		return m.after(m.hover.Relayout())

	case MessageUpdatedMsg:
		if msg.Err != nil {
			log.Printf("toggle reaction: %v", msg.Err)
			return m, m.flash(formatUserError(msg.Err.Error()))
		}
		m.list.UpdateMessage(msg.Message)
		if msg.Value != nil {
			if c, ok := reaction.Find(msg.Message.Reactions, *msg.Value); ok && c.Selected {
				m.list.PlayEffect(msg.Message.ID, *msg.Value)
			}
		}
		return m.after(m.hover.Refresh())

	case simulateTickMsg:
		if !m.simulating || msg.Seq != m.simSeq {
			return m, nil
		}
		return m, tea.Batch(
			simulateCmd(m.service),
			simulateTickCmd(m.cfg.SimulateIntervalDuration(), m.simSeq),
		)

	case simulatedReactionMsg:
		if msg.Err != nil {
			log.Printf("simulate: %v", msg.Err)
			return m, nil
		}
		m.list.UpdateMessage(msg.Message)
		return m.after(m.hover.Refresh())

	case QuickReactionSetMsg:
		if msg.Err != nil {
			return m, m.flash(formatUserError(msg.Err.Error()))
		}
		m.list.SetQuick(msg.Value)
		m.cfg.QuickReaction = msg.Value
		m.persist()
		icon := msg.Value
		if d, ok := m.list.Catalog().Lookup(msg.Value); ok {
			icon = d.Icon()
		}
		return m.after(m.hover.Refresh(), m.flash("Quick reaction: "+icon))
	}
	return m, nil
}

// -- Catalogue handlers --

// handleCatalogMsg applies catalogue snapshots from the initial load and
// the file watcher. A bad reload keeps the current snapshot.
func (m App) handleCatalogMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CatalogLoadedMsg:
		if msg.Err != nil {
			log.Printf("warning: %v; using built-in reactions", msg.Err)
			return m, m.flash(formatUserError(msg.Err.Error()))
		}
		return m.applyCatalog(msg.Snapshot)

	case catalogWatchStartedMsg:
		if msg.Err != nil {
			log.Printf("warning: not watching reactions file: %v", msg.Err)
			return m, nil
		}
		return m, waitForCatalogCmd(msg.ch)

	case catalogUpdateMsg:
		if msg.closed {
			return m, nil
		}
		if msg.Update.Err != nil {
			log.Printf("warning: reload reactions: %v", msg.Update.Err)
			return m, tea.Batch(m.flash(formatUserError(msg.Update.Err.Error())), waitForCatalogCmd(msg.ch))
		}
		next, cmd := m.applyCatalog(msg.Update.Snapshot)
		n := len(msg.Update.Snapshot.Reactions)
		return next, tea.Batch(cmd, m.flash(fmt.Sprintf("Reactions reloaded (%d)", n)), waitForCatalogCmd(msg.ch))
	}
	return m, nil
}

func (m App) applyCatalog(snap reaction.Snapshot) (tea.Model, tea.Cmd) {
	m.service.SetCatalog(snap)
	m.list.SetCatalog(snap)
	return m.after(m.hover.Refresh())
}

// -- Popover handlers --

// handleHoverMsg feeds controller timers back in and turns its intents into
// service calls.
func (m App) handleHoverMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hover.TimerMsg:
		return m.after(m.hover.Update(msg))

	case hover.ToggleIntent:
		return m, toggleReactionCmd(m.service, msg.MessageID, msg.Value)

	case hover.QuickReactionIntent:
		return m, setQuickReactionCmd(m.service, msg.Value)

	case hover.UpsellIntent:
		return m, m.upsell(msg.Value)
	}
	return m, nil
}

// upsell explains that a reaction needs premium, in the status bar and as
// an OS notification.
func (m *App) upsell(value string) tea.Cmd {
	d, ok := m.list.Catalog().Lookup(value)
	if !ok {
		d = reaction.Descriptor{Value: value}
	}
	_, body := notify.UpsellText(d.Title, d.Icon())
	return tea.Batch(m.flash(body), notifyUpsellCmd(d))
}

// -- Pointer handlers --

// handleMouseMsg routes pointer input: the popover gets first refusal on
// clicks, then the reaction bars.
func (m App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.helpOverlay.IsVisible() || m.loading {
		return m, nil
	}
	p := pointOf(msg)

	if msg.Action == tea.MouseActionMotion {
		return m.after(m.hover.PointerMoved(p))
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scroll(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.scroll(wheelStep)

	case tea.MouseButtonLeft:
		if m.list.Selecting() {
			if id, ok := m.list.RowAt(p); ok {
				m.list.SetCursor(string(id))
				m.list.ToggleSelected(string(id))
			}
			return m, nil
		}
		if cmd, ok := m.hover.Click(p); ok {
			return m.after(cmd)
		}
		return m.clickBar(p)

	case tea.MouseButtonRight:
		if m.hover.RightClick(p) {
			return m.after()
		}
		if id, ok := m.list.RowAt(p); ok && m.list.AcceptsReactions(id) && !m.list.Selecting() {
			return m.after(m.hover.Open(id))
		}

	case tea.MouseButtonMiddle:
		if cmd, ok := m.hover.ContextClick(p); ok {
			return m.after(cmd)
		}
		if _, c, ok := m.list.ChipAt(p); ok && !c.Placeholder && !c.Locked {
			return m, setQuickReactionCmd(m.service, c.Value)
		}
	}
	return m, nil
}

// clickBar handles a click on a chip in a message's reaction bar.
func (m App) clickBar(p geom.Point) (tea.Model, tea.Cmd) {
	id, c, ok := m.list.ChipAt(p)
	if !ok {
		if row, ok := m.list.RowAt(p); ok {
			m.list.SetCursor(string(row))
		}
		return m, nil
	}
	m.list.SetCursor(id)
	switch {
	case c.Placeholder:
		return m.after(m.hover.Open(hover.RowID(id)))
	case c.Locked:
		return m, m.upsell(c.Value)
	}
	v := c.Value
	return m, toggleReactionCmd(m.service, id, &v)
}

func (m App) scroll(n int) (tea.Model, tea.Cmd) {
	if !m.list.ScrollBy(n) {
		return m, nil
	}
	return m.after(m.hover.Scrolled())
}

// -- Key handlers --

// handleKeyMsg dispatches keyboard input.
func (m App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlay captures all keys
	if m.helpOverlay.IsVisible() {
		var cmd tea.Cmd
		m.helpOverlay, cmd = m.helpOverlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, GlobalKeys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, GlobalKeys.Help):
		hc := m.helpContext()
		m.hover.Dismiss()
		m.helpOverlay.SetSize(m.width, m.height)
		m.helpOverlay.Show(hc)
		return m, nil

	case key.Matches(msg, GlobalKeys.Dismiss):
		if _, open := m.hover.Session(); open || m.hover.State() == hover.Candidate {
			m.hover.Dismiss()
			return m, nil
		}
		if m.list.Selecting() {
			return m.setSelecting(false)
		}
		return m, nil

	case key.Matches(msg, GlobalKeys.SelectMode):
		return m.setSelecting(!m.list.Selecting())

	case key.Matches(msg, GlobalKeys.Premium):
		premium := !m.service.Premium()
		m.service.SetPremium(premium)
		m.list.SetPremium(premium)
		label := "Premium off"
		if premium {
			label = "Premium on"
		}
		return m.after(m.hover.Refresh(), m.flash(label))

	case key.Matches(msg, GlobalKeys.Simulate):
		m.simulating = !m.simulating
		m.simSeq++
		if !m.simulating {
			return m, m.flash("Live reactions paused")
		}
		return m, tea.Batch(
			m.flash("Live reactions on"),
			simulateTickCmd(m.cfg.SimulateIntervalDuration(), m.simSeq),
		)

	case key.Matches(msg, GlobalKeys.ChipMode):
		mode := chip.ModeShort
		if m.list.ChipMode() == chip.ModeShort {
			mode = chip.ModeFull
		}
		m.list.SetChipMode(mode)
		m.cfg.ChipMode = mode.String()
		m.persist()
		return m.after(m.hover.Relayout())
	}

	return m.handleListKey(msg)
}

func (m App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(m.list.height/2, 1)
	switch {
	case key.Matches(msg, ListKeys.Up):
		return m.moved(m.list.MoveCursor(-1))
	case key.Matches(msg, ListKeys.Down):
		return m.moved(m.list.MoveCursor(1))
	case key.Matches(msg, ListKeys.PageUp):
		return m.scroll(-page)
	case key.Matches(msg, ListKeys.PageDown):
		return m.scroll(page)
	case key.Matches(msg, ListKeys.Top):
		return m.moved(m.list.CursorToTop())
	case key.Matches(msg, ListKeys.Bottom):
		return m.moved(m.list.CursorToBottom())

	case key.Matches(msg, ListKeys.Select):
		if id, ok := m.list.Cursor(); ok {
			m.list.ToggleSelected(id)
		}
		return m, nil
	}

	if m.list.Selecting() {
		return m, nil
	}
	id, ok := m.list.Cursor()
	if !ok || !m.list.AcceptsReactions(hover.RowID(id)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, ListKeys.React):
		return m.after(m.hover.Open(hover.RowID(id)))

	case key.Matches(msg, ListKeys.QuickReact):
		d, ok := m.list.Catalog().Top(m.service.QuickReaction(), m.service.Premium())
		if !ok {
			return m, nil
		}
		v := d.Value
		return m, toggleReactionCmd(m.service, id, &v)

	case key.Matches(msg, ListKeys.Unreact):
		return m, toggleReactionCmd(m.service, id, nil)
	}
	return m, nil
}

// moved re-checks the popover after the cursor scrolled the list.
func (m App) moved(scrolled bool) (tea.Model, tea.Cmd) {
	if !scrolled {
		return m, nil
	}
	return m.after(m.hover.Scrolled())
}

func (m App) setSelecting(on bool) (tea.Model, tea.Cmd) {
	m.list.SetSelecting(on)
	m.hover.SetSelectionMode(on)
	return m, nil
}

func (m App) helpContext() helpContext {
	switch {
	case m.list.Selecting():
		return helpContextSelecting
	case m.hover.State() != hover.Idle:
		return helpContextPopover
	}
	return helpContextList
}
