package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dheerajverma96/ReviewCodeApp/internal/config"
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// -- Collection domain handlers --

// handleCollectionMsg handles collection lifecycle: loading, polling, selection.
func (m App) handleCollectionMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotLoadedMsg:
		return m.applySnapshot(msg.Snapshot, true)

	case SnapshotErrorMsg:
		m.log.Errorw("collection load failed", "error", msg.Err)
		m.prList.SetError(formatUserError(msg.Err))
		return m, nil

	case pollTickMsg:
		if m.pollInterval <= 0 {
			return m, nil
		}
		if m.prList.state == stateLoaded {
			return m, tea.Batch(
				pollFetchCmd(m.aggregator),
				pollTickCmd(m.pollInterval),
			)
		}
		return m, pollTickCmd(m.pollInterval)

	case pollSnapshotMsg:
		return m.applySnapshot(msg.Snapshot, false)

	case pollErrorMsg:
		m.log.Warnw("background poll failed", "error", msg.Err)
		clearCmd := m.statusBar.SetTemporaryMessage(
			"Poll error: "+formatUserError(msg.Err), 5*time.Second)
		return m, clearCmd

	case PRSelectedMsg:
		return m.selectPR(msg.Number, false)

	case PRSelectedAndAdvanceMsg:
		return m.selectPR(msg.Number, true)

	case list.FilterMatchesMsg:
		var cmd tea.Cmd
		m.prList, cmd = m.prList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshot replaces the collection and re-points every view into it.
// Snapshots apply in arrival order: the last one to complete wins, whether
// it came from a manual refresh or a background poll.
func (m App) applySnapshot(snap *review.Snapshot, foreground bool) (tea.Model, tea.Cmd) {
	wasLoaded := m.initialLoadDone
	m.store.ReplaceAll(snap)

	viewer := m.store.User()
	m.statusBar.SetUser(viewer.Login)
	m.detail.SetViewer(viewer)

	toReview, all := convertPRItems(viewer, m.store.List())
	m.prList.SetItems(toReview, all)

	var cmds []tea.Cmd

	// Re-point the detail panel at the fresh instance
	if m.selected > 0 {
		m.prList.SelectByNumber(m.selected)
		if pr, ok := m.store.Get(m.selected); ok {
			pending, _ := m.coordinator.Pending(m.selected)
			m.detail.SetPR(pr, pending)
		} else {
			m.selected = 0
			m.statusBar.SetSelectedPR(0)
			m.prList.SetSelectedPR(0)
			m.detail.ClearPR()
			cmds = append(cmds, m.statusBar.SetTemporaryMessage(
				"Selected PR left the collection", 3*time.Second))
		}
	}

	if len(snap.Failed) > 0 {
		m.log.Warnw("partial snapshot", "failed", len(snap.Failed))
		cmds = append(cmds, m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("%d pull request(s) failed to load", len(snap.Failed)), 5*time.Second))
	} else if foreground && wasLoaded {
		cmds = append(cmds, m.statusBar.SetTemporaryMessage("Collection refreshed", 3*time.Second))
	}

	if !m.initialLoadDone {
		m.initialLoadDone = true
		if m.pollInterval > 0 {
			cmds = append(cmds, pollTickCmd(m.pollInterval))
		}
	}

	m.log.Infow("collection loaded", "prs", m.store.Len(), "failed", len(snap.Failed))
	return m, tea.Batch(cmds...)
}

// -- Mutation domain handlers --

// handleMutationMsg handles staging, the composer, and mutation outcomes.
func (m App) handleMutationMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReviewValidationMsg:
		clearCmd := m.statusBar.SetTemporaryMessage(msg.Message, 3*time.Second)
		return m, clearCmd

	case ReviewSubmitMsg:
		return m.handleReviewSubmit(msg)

	case ComposerOpenMsg:
		return m.openComposer()

	case ComposerClosedMsg:
		m.setMode(ModeNavigation)
		return m, nil

	case ComposerSubmitMsg:
		m.setMode(ModeNavigation)
		return m.handleCommentSubmit(msg.Body)

	case MutationResultMsg:
		return m.handleMutationResult(msg)
	}
	return m, nil
}

// handleReviewSubmit stages a review optimistically and starts the remote
// write. Staging failures surface immediately; the form keeps its body so
// the user can retry.
func (m App) handleReviewSubmit(msg ReviewSubmitMsg) (tea.Model, tea.Cmd) {
	if m.selected == 0 {
		m.detail.SetSubmitted(review.ErrUnknownPR)
		return m, nil
	}

	op, err := m.coordinator.StageReview(m.selected, msg.Decision, msg.Body)
	if err != nil {
		m.detail.SetSubmitted(err)
		m.refreshDetail()
		clearCmd := m.statusBar.SetTemporaryMessage(formatUserError(err), 4*time.Second)
		return m, clearCmd
	}

	m.log.Infow("review staged", "pr", m.selected, "decision", msg.Decision)
	m.refreshDetail()
	clearCmd := m.statusBar.SetTemporaryMessage(
		fmt.Sprintf("Submitting review on PR #%d...", m.selected), 30*time.Second)
	return m, tea.Batch(clearCmd, executeOpCmd(m.coordinator, op))
}

// openComposer validates permissions before showing the comment overlay.
func (m App) openComposer() (tea.Model, tea.Cmd) {
	if m.selected == 0 {
		clearCmd := m.statusBar.SetTemporaryMessage("Select a pull request first", 3*time.Second)
		return m, clearCmd
	}
	pr, ok := m.store.Get(m.selected)
	if !ok {
		return m, nil
	}
	perms := review.Evaluate(m.store.User(), pr)
	if !perms.CanComment {
		clearCmd := m.statusBar.SetTemporaryMessage("This pull request no longer accepts comments", 3*time.Second)
		return m, clearCmd
	}
	if _, busy := m.coordinator.Pending(m.selected); busy {
		clearCmd := m.statusBar.SetTemporaryMessage("A submission is already awaiting confirmation", 3*time.Second)
		return m, clearCmd
	}

	m.composer.SetSize(m.width, m.height)
	cmd := m.composer.Show(pr.Number, pr.Title)
	m.setMode(ModeOverlay)
	return m, cmd
}

// handleCommentSubmit stages a comment optimistically and starts the
// remote write.
func (m App) handleCommentSubmit(body string) (tea.Model, tea.Cmd) {
	if m.selected == 0 {
		return m, nil
	}

	op, err := m.coordinator.StageComment(m.selected, body)
	if err != nil {
		clearCmd := m.statusBar.SetTemporaryMessage(formatUserError(err), 4*time.Second)
		return m, clearCmd
	}

	m.log.Infow("comment staged", "pr", m.selected)
	m.detail.SetPosting(true)
	m.refreshDetail()
	clearCmd := m.statusBar.SetTemporaryMessage(
		fmt.Sprintf("Posting comment on PR #%d...", m.selected), 30*time.Second)
	return m, tea.Batch(clearCmd, executeOpCmd(m.coordinator, op))
}

// handleMutationResult confirms or rolls back a staged mutation once the
// remote write finishes. Confirmation is followed by a fresh snapshot so
// the optimistic state converges with the server's view.
func (m App) handleMutationResult(msg MutationResultMsg) (tea.Model, tea.Cmd) {
	op := msg.Op
	if msg.Err != nil {
		m.coordinator.Fail(op, msg.Err)
		m.log.Errorw("mutation failed", "pr", op.PRNumber, "kind", op.Kind, "error", msg.Err)
		m.detail.SetSubmitted(msg.Err)
		m.refreshDetail()
		clearCmd := m.statusBar.SetTemporaryMessage(formatUserError(msg.Err), 5*time.Second)
		return m, clearCmd
	}

	m.coordinator.Confirm(op)
	m.log.Infow("mutation confirmed", "pr", op.PRNumber, "kind", op.Kind)
	m.detail.SetSubmitted(nil)
	m.refreshDetail()

	label := "Comment posted"
	if op.Kind == review.OpReview {
		label = "Review submitted"
	}
	clearCmd := m.statusBar.SetTemporaryMessage(
		fmt.Sprintf("%s on PR #%d", label, op.PRNumber), 3*time.Second)
	return m, tea.Batch(clearCmd, fetchSnapshotCmd(m.aggregator))
}

// -- Overlay handlers --

func (m App) handleOverlayMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HelpClosedMsg:
		m.setMode(ModeNavigation)
		return m, nil

	case SettingsClosedMsg:
		m.setMode(ModeNavigation)
		return m, nil

	case ConfigChangedMsg:
		return m.applyConfigChange()

	case CommandExecuteMsg:
		m.setMode(ModeNavigation)
		return m.executeCommand(msg.Name)

	case CommandModeExitMsg:
		m.setMode(ModeNavigation)
		return m, nil

	case CommandNotFoundMsg:
		clearCmd := m.statusBar.SetTemporaryMessage(
			fmt.Sprintf("Unknown command: %s", msg.Input), 2*time.Second)
		return m, clearCmd

	case ModeChangedMsg:
		m.setMode(msg.Mode)
		return m, nil
	}
	return m, nil
}

// applyConfigChange persists edited settings and applies what can change at
// runtime. The poll interval is read at every tick, so a live change takes
// effect at the next one; a stopped poll loop restarts here.
func (m App) applyConfigChange() (tea.Model, tea.Cmd) {
	edited := m.settings.Config()
	if edited == nil {
		return m, nil
	}

	wasPolling := m.pollInterval > 0
	m.cfg.PollInterval = edited.PollInterval
	m.cfg.DefaultTab = edited.DefaultTab
	m.cfg.LogLevel = edited.LogLevel
	m.pollInterval = m.cfg.PollIntervalDuration()

	var cmds []tea.Cmd
	if !wasPolling && m.pollInterval > 0 && m.initialLoadDone {
		cmds = append(cmds, pollTickCmd(m.pollInterval))
	}

	if err := config.Save(m.cfg); err != nil {
		m.log.Errorw("config save failed", "error", err)
		cmds = append(cmds, m.statusBar.SetTemporaryMessage("Could not save settings", 4*time.Second))
		return m, tea.Batch(cmds...)
	}

	m.log.Infow("config saved",
		"poll_interval_ms", m.cfg.PollInterval,
		"default_tab", m.cfg.DefaultTab,
		"log_level", m.cfg.LogLevel)
	cmds = append(cmds, m.statusBar.SetTemporaryMessage("Settings saved", 3*time.Second))
	return m, tea.Batch(cmds...)
}

// -- Key handling --

// handleKeyMsg dispatches keyboard input by mode.
func (m App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlay mode captures all keys
	if m.mode == ModeOverlay {
		if m.composer.IsVisible() {
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			return m, cmd
		}
		if m.settings.IsVisible() {
			var cmd tea.Cmd
			m.settings, cmd = m.settings.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.helpOverlay, cmd = m.helpOverlay.Update(msg)
		return m, cmd
	}

	// In insert mode, all keys go to the review form (Esc exits there)
	if m.mode == ModeInsert {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	// Command mode captures all keys
	if m.mode == ModeCommand {
		var cmd tea.Cmd
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}

	// While filtering the PR list, route all keys to the list
	if m.focused == PanelList && m.prList.IsFiltering() {
		return m.updateFocusedPanel(msg)
	}

	// Global key handling in navigation mode
	switch {
	case key.Matches(msg, GlobalKeys.Help):
		m.setMode(ModeOverlay)
		m.helpOverlay.SetSize(m.width, m.height)
		m.helpOverlay.Show(m.focused)
		return m, nil

	case key.Matches(msg, GlobalKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, GlobalKeys.Tab), key.Matches(msg, GlobalKeys.ShiftTab):
		if m.zoomed {
			m.exitZoom()
			m.recalcLayout()
		}
		m.focusPanel(nextVisiblePanel(m.focused, m.panelVisible))
		return m, nil

	case key.Matches(msg, GlobalKeys.Panel1):
		m.showAndFocusPanel(PanelList)
		return m, nil

	case key.Matches(msg, GlobalKeys.Panel2):
		m.showAndFocusPanel(PanelDetail)
		return m, nil

	case key.Matches(msg, GlobalKeys.ToggleList):
		if m.zoomed {
			m.exitZoom()
		}
		m.togglePanel(PanelList)
		return m, nil

	case key.Matches(msg, GlobalKeys.Zoom):
		m.toggleZoom()
		return m, nil

	case key.Matches(msg, GlobalKeys.OpenBrowser):
		return m.openSelectedInBrowser()

	case key.Matches(msg, GlobalKeys.Refresh):
		return m.refreshCollection()

	case key.Matches(msg, GlobalKeys.Settings):
		return m.openSettings()

	case key.Matches(msg, GlobalKeys.CommandMode):
		m.setMode(ModeCommand)
		m.commandMode.SetSize(m.width, m.height)
		cmd := m.commandMode.Open(true)
		return m, cmd

	case key.Matches(msg, GlobalKeys.ExCommand):
		m.setMode(ModeCommand)
		m.commandMode.SetSize(m.width, m.height)
		cmd := m.commandMode.Open(false)
		return m, cmd
	}

	// Delegate to focused panel
	return m.updateFocusedPanel(msg)
}

// -- Infrastructure handlers --

// handleSpinnerTick routes spinner ticks to the list panel.
func (m App) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.prList, cmd = m.prList.Update(msg)
	return m, cmd
}
