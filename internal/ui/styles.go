package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// Panel border colors
var (
	focusedBorderColor    = lipgloss.Color("62")  // bright purple/blue
	unfocusedBorderColor  = lipgloss.Color("240") // dim gray
	insertModeBorderColor = lipgloss.Color("42")  // green
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("62")).
				Bold(true)
)

// Detail view styles
var (
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	authorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	stagedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	lockedBadgeStyle  = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("240")).
				Padding(0, 1)
)

// Review form styles
var (
	reviewApproveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("42")).
				Bold(true).
				Padding(0, 1)
	reviewChangesStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("208")).
				Bold(true).
				Padding(0, 1)
	reviewRejectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("196")).
				Bold(true).
				Padding(0, 1)
	reviewOptionDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Padding(0, 1)
	reviewSubmitFocusedStyle = lipgloss.NewStyle().
					Bold(true).
					Padding(0, 2)
	reviewSubmitDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Padding(0, 2)
	reviewLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Bold(true)
)

// Panel style builders
func panelStyle(focused bool, insertMode bool, width, height int) lipgloss.Style {
	borderColor := unfocusedBorderColor
	if focused {
		borderColor = focusedBorderColor
		if insertMode {
			borderColor = insertModeBorderColor
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(height)
}

// Tab styles
func activeTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
}

func inactiveTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 1)
}

// statusIcon returns the glyph and lipgloss color for a review status.
func statusIcon(status review.Status) (string, string) {
	switch status {
	case review.StatusApproved:
		return "✓", "76"
	case review.StatusChangesRequested:
		return "±", "208"
	case review.StatusRejected:
		return "✗", "196"
	case review.StatusMerged:
		return "◆", "135"
	case review.StatusClosed:
		return "✕", "244"
	default: // pending
		return "○", "214"
	}
}

// statusLabel returns a display label for a review status.
func statusLabel(status review.Status) string {
	switch status {
	case review.StatusApproved:
		return "Approved"
	case review.StatusChangesRequested:
		return "Changes Requested"
	case review.StatusRejected:
		return "Rejected"
	case review.StatusMerged:
		return "Merged"
	case review.StatusClosed:
		return "Closed"
	default:
		return "Pending"
	}
}

// statusBadge renders the colored status glyph plus label.
func statusBadge(status review.Status) string {
	icon, color := statusIcon(status)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render(icon + " " + statusLabel(status))
}

// newLoadingSpinner creates a consistently styled spinner for loading states.
func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return s
}

// renderEmptyState renders a consistent empty state message with optional action hint.
func renderEmptyState(message, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(1, 2).
		Render("— " + message)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// renderErrorWithHint renders a consistent error message with retry hint.
func renderErrorWithHint(errMsg, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Padding(1, 2).
		Render(errMsg)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// formatUserError converts engine and provider errors into user-facing
// one-liners. Unknown errors pass through as-is.
func formatUserError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, github.ErrUnauthorized):
		return "GitHub rejected the token. Check GITHUB_TOKEN and restart."
	case errors.Is(err, github.ErrRateLimited):
		return "GitHub rate limit reached. Wait a moment and try again."
	case errors.Is(err, github.ErrNotFound):
		return "Not found on GitHub. Check the owner and repo in your config."
	case errors.Is(err, github.ErrDecode):
		return "GitHub sent a response this client could not read."
	case errors.Is(err, github.ErrNetwork):
		return "Network error talking to GitHub. Check your connection."
	case errors.Is(err, review.ErrLocked):
		return "This pull request is locked. No further review actions are possible."
	case errors.Is(err, review.ErrInFlight):
		return "Another action on this pull request is still in progress."
	case errors.Is(err, review.ErrUnknownPR):
		return "That pull request is no longer in the list. Refresh and try again."
	case errors.Is(err, review.ErrBadDecision):
		return "That review decision cannot be submitted."
	default:
		return err.Error()
	}
}

// Command palette styles
var (
	cmdPaletteTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("62"))
	cmdPaletteDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
	cmdPaletteKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)
	cmdPaletteDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
	cmdPaletteSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)
	cmdPaletteMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))
	cmdPaletteAliasStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)
	cmdPaletteHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
	cmdPaletteErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Italic(true)
	cmdPalettePromptStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))
	cmdPaletteInputTextStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252"))
)

// Scrollbar column styles
var (
	scrollbarTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	scrollbarThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
)

// Scroll indicator style
var scrollIndicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// scrollIndicator returns a scroll position line for a viewport.
// Returns "" if all content fits within the viewport (no scrolling needed).
func scrollIndicator(vp viewport.Model, width int) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	pct := int(vp.ScrollPercent() * 100)
	var label string
	switch {
	case vp.AtTop():
		label = fmt.Sprintf("%d%% ▼", pct)
	case vp.AtBottom():
		label = fmt.Sprintf("▲ %d%%", pct)
	default:
		label = fmt.Sprintf("▲ %d%% ▼", pct)
	}
	return scrollIndicatorStyle.Render(
		lipgloss.PlaceHorizontal(width, lipgloss.Right, label),
	)
}
