package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/config"
	"github.com/shhac/reactea/internal/geom"
	"github.com/shhac/reactea/internal/hover"
)

const (
	minWidth  = 40
	minHeight = 10
)

// App is the root Bubbletea model for the conversation view.
type App struct {
	service ReactionService
	cfg     *config.Config
	// saveConfig persists preference changes; nil keeps them in memory.
	saveConfig func(*config.Config) error

	// The list and popover are shared with the hover controller, which
	// holds them as its Container, Source and Surface.
	list    *MessageListModel
	popover *popoverSurface
	hover   *hover.Controller

	statusBar   StatusBarModel
	helpOverlay HelpOverlayModel
	spinner     spinner.Model

	// Layout state
	width   int
	height  int
	loading bool
	loadErr string

	// Live reactions by other people. simSeq invalidates ticks scheduled
	// before the last toggle.
	simulating bool
	simSeq     int

	// framePending is set while an animation tick is in flight.
	framePending bool

	watchCtx    context.Context
	cancelWatch context.CancelFunc
}

// NewApp creates the root model. cfg must have defaults applied.
func NewApp(svc ReactionService, cfg *config.Config) App {
	theme := chip.DefaultTheme()
	theme.ShowAvatars = cfg.AvatarsEnabled()
	theme.MaxAvatars = cfg.MaxAvatars

	list := NewMessageListModel(theme, chip.ParseMode(cfg.ChipMode), cfg.AnimationDuration())
	list.SetMe(svc.Me().ID)
	list.SetPremium(svc.Premium())
	list.SetQuick(svc.QuickReaction())
	popover := newPopoverSurface(cfg.AnimationDuration())

	hcfg := hover.DefaultConfig()
	hcfg.SettleDelay = cfg.SettleDelayDuration()
	hcfg.RevealDelay = cfg.RevealDelayDuration()
	hcfg.ExpandDelay = cfg.ExpandDelayDuration()
	hcfg.LockCooldown = cfg.LockCooldownDuration()
	hcfg.Inset = theme.InnerInset

	ctx, cancel := context.WithCancel(context.Background())
	return App{
		service:     svc,
		cfg:         cfg,
		list:        list,
		popover:     popover,
		hover:       hover.New(hcfg, list, list, popover),
		statusBar:   NewStatusBarModel(),
		helpOverlay: NewHelpOverlayModel(),
		spinner:     newLoadingSpinner(),
		loading:     true,
		simulating:  cfg.Simulate,
		watchCtx:    ctx,
		cancelWatch: cancel,
	}
}

// WithConfigSaver makes preference changes (quick reaction, chip mode)
// persist through save.
func (m App) WithConfigSaver(save func(*config.Config) error) App {
	m.saveConfig = save
	return m
}

// Close stops background work. Safe to call more than once.
func (m App) Close() {
	if m.cancelWatch != nil {
		m.cancelWatch()
	}
}

func (m App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadMessagesCmd(m.service),
		loadCatalogCmd(m.service, m.cfg.ReactionsFile),
		m.spinner.Tick,
	}
	if m.cfg.ReactionsFile != "" {
		cmds = append(cmds, watchCatalogCmd(m.watchCtx, m.cfg.ReactionsFile))
	}
	if m.cfg.QuickReaction != "" {
		cmds = append(cmds, setQuickReactionCmd(m.service, m.cfg.QuickReaction))
	}
	if m.simulating {
		cmds = append(cmds, simulateTickCmd(m.cfg.SimulateIntervalDuration(), m.simSeq))
	}
	return tea.Batch(cmds...)
}

// Update dispatches messages to domain-specific sub-handlers.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Conversation domain: loading, toggles, live reactions
	case MessagesLoadedMsg, MessageUpdatedMsg,
		simulateTickMsg, simulatedReactionMsg,
		QuickReactionSetMsg:
		return m.handleMessageMsg(msg)

	// Catalogue domain: initial load and file watching
	case CatalogLoadedMsg, catalogWatchStartedMsg, catalogUpdateMsg:
		return m.handleCatalogMsg(msg)

	// Popover domain: hover timers and the intents the controller emits
	case hover.TimerMsg, hover.ToggleIntent, hover.QuickReactionIntent, hover.UpsellIntent:
		return m.handleHoverMsg(msg)

	// Pointer and focus
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case tea.FocusMsg:
		m.hover.FocusChanged(true)
		return m, nil
	case tea.BlurMsg:
		m.hover.FocusChanged(false)
		return m, nil

	// Infrastructure: animation frames, spinner ticks, status bar
	case animationFrameMsg:
		m.framePending = false
		m.list.Advance(frameInterval)
		m.popover.Advance(frameInterval)
		return m, m.scheduleFrame()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.Seq)
		return m, nil

	case HelpClosedMsg:
		return m, nil

	// Key input
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleWindowSize processes terminal resize events.
func (m App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(m.width, max(m.height-1, 0), 0)
	m.statusBar.SetWidth(m.width)
	m.helpOverlay.SetSize(m.width, m.height)
	return m.after(m.hover.Relayout())
}

// after finishes an update that may have moved chips: it keeps an animation
// frame scheduled while anything is in motion.
func (m App) after(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	cmds = append(cmds, m.scheduleFrame())
	return m, tea.Batch(cmds...)
}

func (m *App) scheduleFrame() tea.Cmd {
	if m.framePending {
		return nil
	}
	if !m.list.Animating() && !m.popover.Animating() {
		return nil
	}
	m.framePending = true
	return animationFrameCmd()
}

// flash shows a temporary status bar message.
func (m *App) flash(text string) tea.Cmd {
	return m.statusBar.SetTemporaryMessage(text, flashDuration)
}

func (m *App) persist() {
	if m.saveConfig == nil {
		return
	}
	if err := m.saveConfig(m.cfg); err != nil {
		log.Printf("warning: failed to save config: %v", err)
	}
}

func (m App) View() string {
	if m.width < minWidth || m.height < minHeight {
		msg := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render("Terminal too small. Please resize to at least 40×10.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	var body string
	switch {
	case m.loading:
		body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading conversation…")
	case m.loadErr != "":
		body = lipgloss.Place(m.width, m.height-1, lipgloss.Left, lipgloss.Top,
			renderErrorWithHint(m.loadErr, "Press q to quit"))
	default:
		m.list.SetHighlight(m.highlightedRow())
		body = m.list.View()
	}

	m.statusBar.SetState(m.service.Premium(), m.simulating, m.list.ChipMode(), m.hover.State())
	m.statusBar.SetSelection(m.list.Selecting(), m.list.SelectedCount())
	if d, ok := m.list.Catalog().Top(m.service.QuickReaction(), m.service.Premium()); ok {
		m.statusBar.SetQuick(d.Icon())
	}
	base := lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())

	block, at, ok := m.popover.Render()
	if !ok {
		return base
	}
	c := canvasFrom(base, m.width, m.height)
	c.place(at.X, at.Y, block)
	return c.String()
}

// highlightedRow is the row whose anchor the popover is attached to, or the
// candidate the pointer is settling on.
func (m App) highlightedRow() string {
	if s, ok := m.hover.Session(); ok {
		return string(s.Row)
	}
	if id, ok := m.hover.Candidate(); ok {
		return string(id)
	}
	return ""
}

func pointOf(msg tea.MouseMsg) geom.Point {
	return geom.Point{X: msg.X, Y: msg.Y}
}
