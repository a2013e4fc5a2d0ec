package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width      int
	focused    Panel
	mode       AppMode
	selectedPR int
	filtering  bool // true when PR list filter input is active

	repoSlug string // owner/repo
	login    string // authenticated user

	// Temporary flash message (e.g. "Review submitted")
	statusMessage string
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetState(focused Panel, mode AppMode) {
	m.focused = focused
	m.mode = mode
}

// SetFiltering updates whether the PR list filter input is active.
func (m *StatusBarModel) SetFiltering(filtering bool) {
	m.filtering = filtering
}

func (m *StatusBarModel) SetSelectedPR(number int) {
	m.selectedPR = number
}

// SetRepo sets the owner/repo slug shown on the right.
func (m *StatusBarModel) SetRepo(slug string) {
	m.repoSlug = slug
}

// SetUser sets the authenticated login shown on the right.
func (m *StatusBarModel) SetUser(login string) {
	m.login = login
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given duration,
// which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearMessage explicitly clears the temporary message.
func (m *StatusBarModel) ClearMessage() {
	m.statusMessage = ""
}

// ClearIfSeqMatch clears the message only if the given seq matches the current one.
// Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var leftHints string
	if m.statusMessage != "" {
		leftHints = " " + m.statusMessage
	} else {
		leftHints = m.keyHints()
	}
	rightInfo := m.contextInfo()

	leftRendered := statusBarAccentStyle.Render(leftHints)
	rightRendered := statusBarStyle.Render(rightInfo)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	padding := m.width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) keyHints() string {
	if m.filtering {
		return " [Esc]cancel [Enter]apply [type]filter"
	}

	switch m.mode {
	case ModeInsert:
		return " [Esc]exit insert [Tab]next field"
	case ModeOverlay:
		return " [Esc]close"
	case ModeCommand:
		return " [Enter]run [Tab]complete [Esc]cancel"
	}

	switch m.focused {
	case PanelList:
		return " [h/l]tab [j/k]move [/]filter [Space]select [Enter]open [r]refresh [Tab]panel [z]zoom [?]help"
	case PanelDetail:
		return " [h/l]tab [j/k]scroll [c]comment [o]browser [r]refresh [Tab]panel [z]zoom [?]help"
	default:
		return " [Tab]panel [?]help [q]quit"
	}
}

func (m StatusBarModel) contextInfo() string {
	modeStr := ""
	switch m.mode {
	case ModeInsert:
		modeStr = " INSERT "
	case ModeOverlay:
		modeStr = " OVERLAY "
	case ModeCommand:
		modeStr = " CMD "
	default:
		modeStr = " NAV "
	}

	prInfo := ""
	if m.selectedPR > 0 {
		prInfo = fmt.Sprintf("PR #%d ", m.selectedPR)
	}

	session := ""
	if m.repoSlug != "" {
		session = m.repoSlug + " "
	}
	if m.login != "" {
		session += "@" + m.login + " "
	}

	return modeStr + prInfo + session
}
