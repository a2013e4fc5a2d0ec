package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// ReviewFocus identifies which part of the review form has focus.
type ReviewFocus int

const (
	ReviewFocusTextArea ReviewFocus = iota
	ReviewFocusRadio
	ReviewFocusSubmit
)

// reviewDecisions lists the selectable verdicts in radio order.
var reviewDecisions = []review.Status{
	review.StatusApproved,
	review.StatusChangesRequested,
	review.StatusRejected,
}

// ReviewFormModel manages the review submission form state and rendering.
type ReviewFormModel struct {
	textArea   textarea.Model
	selected   int // index into reviewDecisions
	radioFocus int
	focus      ReviewFocus
	submitting bool
}

// NewReviewFormModel creates a ReviewFormModel with default state.
func NewReviewFormModel() ReviewFormModel {
	ta := textarea.New()
	ta.Placeholder = "Review body (optional for approve)..."
	ta.CharLimit = 65535
	ta.SetHeight(5)
	ta.ShowLineNumbers = false
	ta.Blur()

	return ReviewFormModel{
		textArea: ta,
	}
}

// SetWidth sets the textarea width.
func (t *ReviewFormModel) SetWidth(width int) {
	t.textArea.SetWidth(width)
}

// Clear resets the form for a new pull request.
func (t *ReviewFormModel) Clear() {
	t.textArea.Reset()
	t.selected = 0
	t.radioFocus = 0
	t.focus = ReviewFocusTextArea
	t.submitting = false
	t.textArea.Blur()
}

// Decision returns the currently selected verdict.
func (t ReviewFormModel) Decision() review.Status {
	return reviewDecisions[t.selected]
}

// IsSubmitting returns whether a submission is in flight.
func (t ReviewFormModel) IsSubmitting() bool {
	return t.submitting
}

// SetSubmitted clears the submitting state. On success, also resets the form.
func (t *ReviewFormModel) SetSubmitted(err error) {
	t.submitting = false
	if err == nil {
		t.textArea.Reset()
		t.selected = 0
		t.radioFocus = 0
		t.focus = ReviewFocusTextArea
		t.textArea.Blur()
	}
}

// IsFocused returns true when the textarea has focus (insert mode).
func (t ReviewFormModel) IsFocused() bool {
	return t.textArea.Focused()
}

// Blur removes focus from the textarea.
func (t *ReviewFormModel) Blur() {
	t.textArea.Blur()
}

// Update handles key events when the Review tab is active.
// Tab switching (h/l) is handled by the detail panel before delegation.
func (t ReviewFormModel) Update(msg tea.KeyMsg) (ReviewFormModel, tea.Cmd) {
	// When textarea is focused, it captures all keys except ESC and Tab
	if t.textArea.Focused() {
		switch msg.String() {
		case "esc":
			t.textArea.Blur()
			return t, func() tea.Msg { return ModeChangedMsg{Mode: ModeNavigation} }
		case "tab":
			t.textArea.Blur()
			t.focus = ReviewFocusRadio
			return t, func() tea.Msg { return ModeChangedMsg{Mode: ModeNavigation} }
		default:
			var cmd tea.Cmd
			t.textArea, cmd = t.textArea.Update(msg)
			return t, cmd
		}
	}

	// Normal mode within review form
	switch t.focus {
	case ReviewFocusTextArea:
		switch msg.String() {
		case "enter":
			t.textArea.Focus()
			return t, func() tea.Msg { return ModeChangedMsg{Mode: ModeInsert} }
		case "tab", "j", "down":
			t.focus = ReviewFocusRadio
			t.radioFocus = t.selected // start focus on current selection
			return t, nil
		}

	case ReviewFocusRadio:
		switch msg.String() {
		case "j", "down":
			if t.radioFocus < len(reviewDecisions)-1 {
				t.radioFocus++
			} else {
				t.focus = ReviewFocusSubmit
			}
			return t, nil
		case "k", "up":
			if t.radioFocus > 0 {
				t.radioFocus--
			} else {
				t.focus = ReviewFocusTextArea
			}
			return t, nil
		case "enter", " ":
			t.selected = t.radioFocus
			return t, nil
		case "tab":
			t.focus = ReviewFocusSubmit
			return t, nil
		case "shift+tab":
			t.focus = ReviewFocusTextArea
			return t, nil
		}

	case ReviewFocusSubmit:
		switch msg.String() {
		case "enter":
			if t.submitting {
				return t, nil
			}
			body := strings.TrimSpace(t.textArea.Value())
			decision := t.Decision()
			if decision != review.StatusApproved && body == "" {
				label := statusLabel(decision)
				return t, func() tea.Msg {
					return ReviewValidationMsg{Message: "Review body is required for " + label}
				}
			}
			t.submitting = true
			return t, func() tea.Msg {
				return ReviewSubmitMsg{Decision: decision, Body: body}
			}
		case "tab":
			t.focus = ReviewFocusTextArea
			return t, nil
		case "shift+tab":
			t.focus = ReviewFocusRadio
			t.radioFocus = len(reviewDecisions) - 1
			return t, nil
		case "k", "up":
			t.focus = ReviewFocusRadio
			t.radioFocus = len(reviewDecisions) - 1
			return t, nil
		}
	}

	return t, nil
}

// Render renders the review form (textarea, verdict radio group, submit button).
func (t ReviewFormModel) Render(width int) string {
	var b strings.Builder

	// 1. Review body textarea
	label := reviewLabelStyle.Render("Review Body")
	if t.focus == ReviewFocusTextArea && !t.textArea.Focused() {
		label += lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).Render("  press Enter to edit")
	}
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(t.textArea.View())
	b.WriteString("\n\n")

	// 2. Verdict radio group
	b.WriteString(reviewLabelStyle.Render("Verdict"))
	b.WriteString("\n")

	styles := []lipgloss.Style{reviewApproveStyle, reviewChangesStyle, reviewRejectStyle}
	for i, decision := range reviewDecisions {
		indicator := "  ( ) "
		if t.selected == i {
			indicator = "  (●) "
		}
		isFocused := t.focus == ReviewFocusRadio && t.radioFocus == i
		if isFocused {
			indicator = "▸ " + indicator[2:]
		}

		var line string
		if t.selected == i {
			line = indicator + styles[i].Render(statusLabel(decision))
		} else {
			line = indicator + reviewOptionDimStyle.Render(statusLabel(decision))
		}
		if isFocused {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// 3. Submit button
	buttonText := fmt.Sprintf("[ Submit: %s ]", statusLabel(t.Decision()))
	if t.submitting {
		buttonText = "[ Submitting... ]"
	}

	if t.focus == ReviewFocusSubmit && !t.submitting {
		var style lipgloss.Style
		switch t.Decision() {
		case review.StatusApproved:
			style = reviewSubmitFocusedStyle.
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("42"))
		case review.StatusRejected:
			style = reviewSubmitFocusedStyle.
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("196"))
		default:
			style = reviewSubmitFocusedStyle.
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("208"))
		}
		b.WriteString("  " + style.Render(buttonText))
	} else {
		b.WriteString("  " + reviewSubmitDimStyle.Render(buttonText))
	}

	return b.String()
}
