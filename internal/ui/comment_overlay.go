package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	composerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	composerHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// ComposerModel renders a centered overlay for writing a top-level comment
// on the selected pull request. The textarea is focused the moment the
// overlay opens; submission hands the body back to the app, which stages
// it through the mutation path.
type ComposerModel struct {
	textarea textarea.Model
	visible  bool

	// Terminal dimensions (for centering)
	width  int
	height int

	prNumber int
	prTitle  string
}

func NewComposerModel() ComposerModel {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = 65535
	ta.SetHeight(6)
	ta.ShowLineNumbers = false
	ta.Blur()
	return ComposerModel{textarea: ta}
}

// Show opens the composer for the given pull request.
func (m *ComposerModel) Show(number int, title string) tea.Cmd {
	m.visible = true
	m.prNumber = number
	m.prTitle = title
	m.textarea.SetValue("")
	m.resizeTextarea()
	return m.textarea.Focus()
}

// Hide dismisses the composer.
func (m *ComposerModel) Hide() {
	m.visible = false
	m.textarea.Blur()
}

// IsVisible returns whether the composer is currently shown.
func (m ComposerModel) IsVisible() bool {
	return m.visible
}

// SetSize updates terminal dimensions for centering and textarea sizing.
func (m *ComposerModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
	m.resizeTextarea()
}

func (m *ComposerModel) resizeTextarea() {
	inner := m.overlayWidth() - 4
	if inner < 20 {
		inner = 20
	}
	m.textarea.SetWidth(inner)
}

func (m ComposerModel) Update(msg tea.Msg) (ComposerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, func() tea.Msg { return ComposerClosedMsg{} }
		case "ctrl+s":
			body := strings.TrimSpace(m.textarea.Value())
			if body == "" {
				return m, nil
			}
			m.Hide()
			return m, func() tea.Msg { return ComposerSubmitMsg{Body: body} }
		}
	}
	// Everything else goes to the textarea (typing, cursor blink)
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m ComposerModel) View() string {
	if !m.visible {
		return ""
	}

	overlayW := m.overlayWidth()
	innerW := overlayW - 4

	titleText := fmt.Sprintf(" Comment on #%d ", m.prNumber)
	title := composerTitleStyle.Render(titleText)
	subtitle := dimStyle.Render(ansi.Truncate(m.prTitle, innerW, "…"))

	footer := composerHintStyle.Render("[Ctrl+S]post  [Esc]cancel")

	box := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		m.textarea.View(),
		"",
		footer,
	)

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(overlayW - 2)

	rendered := overlayStyle.Render(box)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// overlayWidth returns the outer box width.
func (m ComposerModel) overlayWidth() int {
	w := int(float64(m.width) * 0.6)
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	if m.width > 0 && w > m.width-2 {
		w = m.width - 2
	}
	return w
}
