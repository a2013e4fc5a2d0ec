package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dheerajverma96/ReviewCodeApp/internal/config"
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// App is the root Bubbletea model for the review dashboard. All state
// mutation happens on the update goroutine; commands only carry data in
// and out through messages.
type App struct {
	// Panel models
	prList    PRListModel
	detail    DetailModel
	statusBar StatusBarModel

	// Overlays
	helpOverlay HelpOverlayModel
	composer    ComposerModel
	settings    SettingsModel
	commandMode CommandModeModel

	// Engine
	store       *review.Store
	aggregator  *review.Aggregator
	coordinator *review.Coordinator

	cfg *config.Config
	log *zap.SugaredLogger

	// Layout state
	focused        Panel
	width          int
	height         int
	panelVisible   [2]bool // which panels are currently visible
	zoomed         bool    // zoom mode: only focused panel shown
	preZoomVisible [2]bool // saved visibility before zoom
	initialized    bool    // whether first WindowSizeMsg has been processed

	// Mode
	mode AppMode

	// PR loaded in the detail panel (0 = none)
	selected int

	// Background polling
	pollInterval time.Duration

	initialLoadDone bool // true after first successful snapshot
}

// NewApp wires the panel models to an already-constructed engine. The
// caller owns provider selection and logging setup.
func NewApp(store *review.Store, agg *review.Aggregator, coord *review.Coordinator, cfg *config.Config, log *zap.SugaredLogger) App {
	defaultTab := TabToReview
	if cfg.DefaultTab == "all" {
		defaultTab = TabAllPRs
	}

	statusBar := NewStatusBarModel()
	statusBar.SetRepo(cfg.Owner + "/" + cfg.Repo)

	return App{
		prList:       NewPRListModel(defaultTab),
		detail:       NewDetailModel(),
		statusBar:    statusBar,
		helpOverlay:  NewHelpOverlayModel(),
		composer:     NewComposerModel(),
		settings:     NewSettingsModel(),
		commandMode:  NewCommandModeModel(),
		store:        store,
		aggregator:   agg,
		coordinator:  coord,
		cfg:          cfg,
		log:          log,
		focused:      PanelList,
		panelVisible: [2]bool{true, true},
		mode:         ModeNavigation,
		pollInterval: cfg.PollIntervalDuration(),
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(fetchSnapshotCmd(m.aggregator), m.prList.spinner.Tick)
}

// Update dispatches messages to domain-specific sub-handlers.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	// Window resize (handled inline, no grouping)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg.(tea.WindowSizeMsg))

	// Collection domain: loading, polling, selection
	case SnapshotLoadedMsg, SnapshotErrorMsg,
		pollTickMsg, pollSnapshotMsg, pollErrorMsg,
		PRSelectedMsg, PRSelectedAndAdvanceMsg,
		list.FilterMatchesMsg:
		return m.handleCollectionMsg(msg)

	// Mutation domain: staging, composer, confirmation and rollback
	case ReviewValidationMsg, ReviewSubmitMsg,
		ComposerOpenMsg, ComposerSubmitMsg, ComposerClosedMsg,
		MutationResultMsg:
		return m.handleMutationMsg(msg)

	// Overlays, command palette and mode changes
	case HelpClosedMsg, ModeChangedMsg,
		SettingsClosedMsg, ConfigChangedMsg,
		CommandExecuteMsg, CommandModeExitMsg, CommandNotFoundMsg:
		return m.handleOverlayMsg(msg)

	// Infrastructure: spinner ticks, status bar
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg.(spinner.TickMsg))

	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.(StatusBarClearMsg).Seq)
		return m, nil

	// Key input
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	// Cursor blink and similar component messages go to the active input
	if m.composer.IsVisible() {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}
	if m.commandMode.IsActive() {
		var cmd tea.Cmd
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleWindowSize processes terminal resize events.
func (m App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.helpOverlay.SetSize(m.width, m.height)
	m.composer.SetSize(m.width, m.height)
	m.settings.SetSize(m.width, m.height)
	m.commandMode.SetSize(m.width, m.height)
	if !m.initialized {
		m.initialized = true
	}
	m.recalcLayout()
	return m, nil
}

func (m App) View() string {
	sizes := CalculatePanelSizes(m.width, m.height, m.panelVisible)

	if sizes.TooSmall {
		msg := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render("Terminal too small. Please resize to at least 72×6.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	var panelViews []string
	if sizes.ListWidth > 0 {
		panelViews = append(panelViews, m.prList.View())
	}
	if sizes.DetailWidth > 0 {
		panelViews = append(panelViews, m.detail.View())
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, panelViews...)
	m.statusBar.SetFiltering(m.focused == PanelList && m.prList.IsFiltering())
	bar := m.statusBar.View()

	base := lipgloss.JoinVertical(lipgloss.Left, panels, bar)

	// The command palette composites over the bottom of the base view
	if m.commandMode.IsActive() {
		base = m.renderCommandOverlay(base)
	}

	// Render the composer on top if active
	if m.composer.IsVisible() {
		return m.composer.View()
	}

	// Render the settings overlay on top if active
	if m.settings.IsVisible() {
		return m.settings.View()
	}

	// Render help overlay on top if active
	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	return base
}

// renderCommandOverlay composites the command palette at the bottom of the
// base view.
func (m App) renderCommandOverlay(base string) string {
	overlay := m.commandMode.View()
	if overlay == "" {
		return base
	}

	overlayLines := strings.Split(overlay, "\n")
	baseLines := strings.Split(base, "\n")

	overlayH := len(overlayLines)
	if overlayH > len(baseLines) {
		overlayH = len(baseLines)
	}

	start := len(baseLines) - overlayH
	for i := 0; i < len(overlayLines) && start+i < len(baseLines); i++ {
		line := overlayLines[i]
		// Pad to full width to cover base content underneath
		lineWidth := lipgloss.Width(line)
		if lineWidth < m.width {
			line += strings.Repeat(" ", m.width-lineWidth)
		}
		baseLines[start+i] = line
	}

	return strings.Join(baseLines, "\n")
}

// selectPR loads a pull request from the store into the detail panel.
func (m App) selectPR(number int, advance bool) (tea.Model, tea.Cmd) {
	pr, ok := m.store.Get(number)
	if !ok {
		clearCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("PR #%d is no longer in the collection", number), 3*time.Second)
		return m, clearCmd
	}

	m.selected = number
	m.statusBar.SetSelectedPR(number)
	m.prList.SetSelectedPR(number)
	pending, _ := m.coordinator.Pending(number)
	m.detail.SetPR(pr, pending)
	if advance {
		m.showAndFocusPanel(PanelDetail)
	}
	return m, nil
}

// refreshDetail re-points the detail panel and the list at the store's
// current instance of the selected PR. Called after every store mutation
// so no view holds a replaced pointer.
func (m *App) refreshDetail() {
	viewer := m.store.User()
	toReview, all := convertPRItems(viewer, m.store.List())
	m.prList.SetItems(toReview, all)

	if m.selected == 0 {
		return
	}
	m.prList.SelectByNumber(m.selected)
	if pr, ok := m.store.Get(m.selected); ok {
		pending, _ := m.coordinator.Pending(m.selected)
		m.detail.SetPR(pr, pending)
	}
}

// refreshCollection triggers a foreground re-fetch of the whole collection.
func (m App) refreshCollection() (tea.Model, tea.Cmd) {
	if m.prList.state != stateLoaded {
		m.prList.SetLoading()
		return m, tea.Batch(fetchSnapshotCmd(m.aggregator), m.prList.spinner.Tick)
	}
	clearCmd := m.statusBar.SetTemporaryMessage("Refreshing collection...", 30*time.Second)
	return m, tea.Batch(clearCmd, fetchSnapshotCmd(m.aggregator))
}

// openSelectedInBrowser opens the cursor PR (list focused) or the loaded
// PR (detail focused) in the default browser.
func (m App) openSelectedInBrowser() (tea.Model, tea.Cmd) {
	number := m.selected
	if m.focused == PanelList {
		if n, ok := m.prList.CursorPR(); ok {
			number = n
		}
	}
	if number == 0 {
		return m, nil
	}
	url := pullRequestURL(m.cfg.Owner, m.cfg.Repo, number)
	return m, openBrowserCmd(url)
}

// openSettings shows the settings overlay over a copy of the live config.
func (m App) openSettings() (tea.Model, tea.Cmd) {
	m.setMode(ModeOverlay)
	m.settings.SetSize(m.width, m.height)
	m.settings.Show(m.cfg)
	return m, nil
}

// executeCommand dispatches a named command from the command palette.
func (m App) executeCommand(name string) (tea.Model, tea.Cmd) {
	switch name {
	case "open":
		return m.openSelectedInBrowser()
	case "comment":
		return m.openComposer()
	case "refresh":
		return m.refreshCollection()
	case "settings":
		return m.openSettings()
	case "zoom":
		m.toggleZoom()
		return m, nil
	case "help":
		m.setMode(ModeOverlay)
		m.helpOverlay.SetSize(m.width, m.height)
		m.helpOverlay.Show(m.focused)
		return m, nil
	case "quit":
		return m, tea.Quit
	case "toggle list":
		if m.zoomed {
			m.exitZoom()
		}
		m.togglePanel(PanelList)
		return m, nil
	case "review":
		m.showAndFocusPanel(PanelDetail)
		m.detail.SetActiveTab(TabReview)
		return m, nil
	case "prs":
		m.showAndFocusPanel(PanelList)
		return m, nil
	case "detail":
		m.showAndFocusPanel(PanelDetail)
		return m, nil
	default:
		input := name
		return m, func() tea.Msg { return CommandNotFoundMsg{Input: input} }
	}
}

// -- Layout & panel helpers --

// focusPanel sets focus to the given panel. If the panel is hidden,
// focuses the next visible panel instead.
func (m *App) focusPanel(p Panel) {
	if !m.panelVisible[p] {
		p = nextVisiblePanel(p, m.panelVisible)
	}
	m.focused = p
	m.prList.SetFocused(p == PanelList)
	m.detail.SetFocused(p == PanelDetail)
	m.statusBar.SetState(m.focused, m.mode)
}

func (m *App) recalcLayout() {
	sizes := CalculatePanelSizes(m.width, m.height, m.panelVisible)
	if sizes.TooSmall {
		return
	}

	if sizes.ListWidth > 0 {
		m.prList.SetSize(sizes.ListWidth, sizes.PanelHeight)
	}
	if sizes.DetailWidth > 0 {
		m.detail.SetSize(sizes.DetailWidth, sizes.PanelHeight)
	}
	m.statusBar.SetWidth(m.width)
	m.statusBar.SetState(m.focused, m.mode)
}

// togglePanel shows or hides a panel. Prevents hiding the last visible panel.
func (m *App) togglePanel(p Panel) {
	if m.panelVisible[p] && visibleCount(m.panelVisible) <= 1 {
		return // can't hide the last visible panel
	}
	m.panelVisible[p] = !m.panelVisible[p]
	if !m.panelVisible[m.focused] {
		m.focusPanel(nextVisiblePanel(m.focused, m.panelVisible))
	}
	m.recalcLayout()
}

// toggleZoom enters or exits zoom mode. When zoomed, only the focused panel
// is visible at full width.
func (m *App) toggleZoom() {
	if m.zoomed {
		m.exitZoom()
	} else {
		m.preZoomVisible = m.panelVisible
		m.panelVisible = [2]bool{}
		m.panelVisible[m.focused] = true
		m.zoomed = true
	}
	m.recalcLayout()
}

// exitZoom restores the pre-zoom panel visibility.
func (m *App) exitZoom() {
	if !m.zoomed {
		return
	}
	m.panelVisible = m.preZoomVisible
	m.zoomed = false
}

// showAndFocusPanel ensures a panel is visible, exits zoom if active,
// and focuses the panel.
func (m *App) showAndFocusPanel(p Panel) {
	if m.zoomed {
		m.exitZoom()
	}
	if !m.panelVisible[p] {
		m.panelVisible[p] = true
	}
	m.focusPanel(p)
	m.recalcLayout()
}

// setMode updates the app mode and syncs the status bar.
func (m *App) setMode(mode AppMode) {
	m.mode = mode
	m.statusBar.SetState(m.focused, m.mode)
}

func (m App) updateFocusedPanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case PanelList:
		m.prList, cmd = m.prList.Update(msg)
	case PanelDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}
