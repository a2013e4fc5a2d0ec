package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// DetailTab identifies which detail sub-tab is active.
type DetailTab int

const (
	TabOverview DetailTab = iota
	TabComments
	TabReview
)

// DetailModel manages the pull request detail panel: an Overview tab with
// metadata and description, a Comments tab with threaded conversation, and
// a Review tab with the submission form. The panel holds a pointer into
// the shared collection; after every refresh the app re-points it so the
// panel never renders a stale instance.
type DetailModel struct {
	viewport  viewport.Model
	md        MarkdownRenderer
	comments  CommentsTabModel
	form      ReviewFormModel
	activeTab DetailTab

	width   int
	height  int
	focused bool

	pr      *review.PullRequest
	viewer  review.User
	perms   review.Permissions
	pending *review.PendingOp
}

func NewDetailModel() DetailModel {
	return DetailModel{
		viewport: viewport.New(0, 0),
		form:     NewReviewFormModel(),
	}
}

// SetViewer sets the authenticated user whose permissions gate the panel.
func (m *DetailModel) SetViewer(viewer review.User) {
	m.viewer = viewer
	if m.pr != nil {
		m.perms = review.Evaluate(m.viewer, m.pr)
	}
}

// SetPR points the panel at a pull request, along with any staged mutation
// still awaiting confirmation. Passing the same number preserves scroll
// position and form state; switching numbers resets both. A nil pr clears
// the panel.
func (m *DetailModel) SetPR(pr *review.PullRequest, pending *review.PendingOp) {
	samePR := m.pr != nil && pr != nil && m.pr.Number == pr.Number
	m.pr = pr
	m.pending = pending

	if pr == nil {
		m.perms = review.Permissions{}
		m.comments.Clear()
		m.form.Clear()
		m.refreshContent()
		m.viewport.GotoTop()
		return
	}

	m.perms = review.Evaluate(m.viewer, pr)
	m.comments.SetComments(pr.Comments)
	if !samePR {
		m.form.Clear()
		m.viewport.GotoTop()
	}
	m.refreshContent()
}

// ClearPR empties the panel.
func (m *DetailModel) ClearPR() {
	m.SetPR(nil, nil)
}

// PRNumber returns the loaded PR number, or 0 when the panel is empty.
func (m DetailModel) PRNumber() int {
	if m.pr == nil {
		return 0
	}
	return m.pr.Number
}

// Perms returns the viewer's permissions on the loaded pull request.
func (m DetailModel) Perms() review.Permissions {
	return m.perms
}

// ActiveTab returns the current sub-tab.
func (m DetailModel) ActiveTab() DetailTab {
	return m.activeTab
}

// SetActiveTab switches the sub-tab directly, blurring any form focus.
func (m *DetailModel) SetActiveTab(tab DetailTab) {
	m.activeTab = tab
	m.form.Blur()
	m.refreshContent()
}

// IsInsertMode reports whether the review form's textarea has focus.
func (m DetailModel) IsInsertMode() bool {
	return m.activeTab == TabReview && m.form.IsFocused()
}

// ExitInsertMode blurs the review form textarea.
func (m *DetailModel) ExitInsertMode() {
	m.form.Blur()
}

// SetSubmitted clears the in-flight state after a mutation attempt.
func (m *DetailModel) SetSubmitted(err error) {
	m.form.SetSubmitted(err)
	m.comments.SetPosting(false)
	m.refreshContent()
}

// SetPosting marks the comments tab while a comment is in flight.
func (m *DetailModel) SetPosting(posting bool) {
	m.comments.SetPosting(posting)
	m.refreshContent()
}

func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// Account for borders (2), header (2), padding, scrollbar column (2)
	innerWidth := width - 6
	innerHeight := height - 5
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}
	m.viewport.Width = innerWidth
	m.viewport.Height = innerHeight
	m.form.SetWidth(innerWidth)
	m.refreshContent()
}

func (m *DetailModel) SetFocused(focused bool) {
	m.focused = focused
}

// refreshContent re-renders the active scrollable tab into the viewport.
// The Review tab renders directly in View so the textarea cursor works.
func (m *DetailModel) refreshContent() {
	switch m.activeTab {
	case TabOverview:
		m.viewport.SetContent(m.renderOverview())
	case TabComments:
		m.viewport.SetContent(m.renderComments())
	}
}

func (m *DetailModel) switchTab(delta int) {
	next := int(m.activeTab) + delta
	if next < int(TabOverview) || next > int(TabReview) {
		return
	}
	m.activeTab = DetailTab(next)
	m.form.Blur()
	m.refreshContent()
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Mouse wheel and similar still scroll the viewport
		if m.activeTab != TabReview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Insert mode captures everything
	if m.IsInsertMode() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, DetailKeys.PrevTab):
		m.switchTab(-1)
		return m, nil
	case key.Matches(keyMsg, DetailKeys.NextTab):
		m.switchTab(1)
		return m, nil
	}

	if m.pr == nil {
		return m, nil
	}

	if m.activeTab == TabReview {
		if m.reviewBlocked() == "" {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(keyMsg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, DetailKeys.Comment):
		if m.perms.CanComment && m.pending == nil {
			return m, func() tea.Msg { return ComposerOpenMsg{} }
		}
		return m, nil
	case key.Matches(keyMsg, DetailKeys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(keyMsg, DetailKeys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// reviewBlocked returns the reason the review form is unavailable, or ""
// when the viewer may submit.
func (m DetailModel) reviewBlocked() string {
	if m.pr == nil {
		return "Select a pull request first"
	}
	if m.pr.Locked {
		switch m.pr.Status {
		case review.StatusMerged:
			return "This pull request has been merged"
		case review.StatusClosed:
			return "This pull request is closed"
		default:
			return "A final verdict has already been recorded"
		}
	}
	if m.pending != nil {
		return "A submission is already awaiting confirmation"
	}
	if !m.perms.CanReviewPR {
		if m.viewer.ID == m.pr.Author.ID {
			return "Authors cannot review their own pull request"
		}
		return "Your review was not requested on this pull request"
	}
	return ""
}

func (m DetailModel) View() string {
	header := m.renderTabs()

	var content string
	if m.activeTab == TabReview {
		content = m.renderReviewTab()
	} else {
		content = m.viewport.View()
		if bar := m.renderScrollbar(); bar != "" {
			padded := lipgloss.NewStyle().Width(m.viewport.Width + 1).Render(content)
			content = lipgloss.JoinHorizontal(lipgloss.Top, padded, bar)
		}
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, header, content)
	style := panelStyle(m.focused, m.IsInsertMode(), m.width-2, m.height-2)
	return style.Render(inner)
}

func (m DetailModel) renderTabs() string {
	labels := []string{"Overview", "Comments", "Review"}
	if m.pr != nil {
		labels[TabComments] = fmt.Sprintf("Comments (%d)", len(m.pr.Comments))
	}

	var tabs []string
	for i, label := range labels {
		if DetailTab(i) == m.activeTab {
			tabs = append(tabs, activeTabStyle().Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle().Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *DetailModel) renderComments() string {
	if m.pr == nil {
		return renderEmptyState("Select a pull request to read its conversation", "Use j/k to navigate, Enter to select")
	}
	return m.comments.Render(m.viewport.Width, &m.md)
}

func (m DetailModel) renderReviewTab() string {
	if reason := m.reviewBlocked(); reason != "" {
		hint := ""
		if m.perms.CanOnlyComment {
			hint = "You can still comment with c"
		}
		return renderEmptyState(reason, hint)
	}
	return m.form.Render(m.viewport.Width)
}
