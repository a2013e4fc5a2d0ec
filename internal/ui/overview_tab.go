package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// renderOverview renders the Overview tab: identity, resolved status,
// branches, reviewer verdicts, the viewer's access level, and the
// description body.
func (m *DetailModel) renderOverview() string {
	if m.pr == nil {
		return renderEmptyState("Select a pull request to view its details", "Use j/k to navigate, Enter to select")
	}

	pr := m.pr
	innerWidth := m.viewport.Width
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render(fmt.Sprintf("PR #%d", pr.Number)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(pr.Title))
	b.WriteString("\n\n")

	b.WriteString(statusBadge(pr.Status))
	if pr.Locked {
		b.WriteString("  " + lockedBadgeStyle.Render("LOCKED"))
	}
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("Author:   ") + pr.Author.Login + "\n")
	b.WriteString(dimStyle.Render("Branches: ") + pr.HeadBranch + " → " + pr.BaseBranch + "\n")
	b.WriteString(dimStyle.Render("Opened:   ") + pr.CreatedAt.Format("Jan 2, 2006 15:04") + "\n")
	b.WriteString(dimStyle.Render("Updated:  ") + pr.UpdatedAt.Format("Jan 2, 2006 15:04") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Reviewers"))
	b.WriteString("\n")
	b.WriteString(m.renderReviewerLines())

	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Your Access"))
	b.WriteString("\n")
	b.WriteString(m.viewerAccessLine())
	b.WriteString("\n")

	if m.pending != nil {
		b.WriteString(stagedStyle.Render("● " + pendingOpLabel(m.pending) + " awaiting confirmation"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Description"))
	b.WriteString("\n")
	if pr.Body != "" {
		b.WriteString(m.md.RenderMarkdown(pr.Body, innerWidth))
	} else {
		b.WriteString(dimStyle.Render("No description provided."))
	}

	return b.String()
}

// renderReviewerLines lists each requested reviewer with their latest
// verdict, followed by anyone who reviewed without being requested.
func (m *DetailModel) renderReviewerLines() string {
	pr := m.pr
	var b strings.Builder

	requested := make(map[int64]bool, len(pr.Reviewers))
	for _, u := range pr.Reviewers {
		requested[u.ID] = true
		b.WriteString("  " + reviewerLine(u, pr))
		b.WriteString("\n")
	}

	volunteers := 0
	seen := make(map[int64]bool)
	for _, r := range pr.Reviews {
		if requested[r.Reviewer.ID] || seen[r.Reviewer.ID] {
			continue
		}
		seen[r.Reviewer.ID] = true
		volunteers++
		b.WriteString("  " + reviewerLine(r.Reviewer, pr))
		b.WriteString("\n")
	}

	if len(pr.Reviewers) == 0 && volunteers == 0 {
		b.WriteString(dimStyle.Render("  No reviewers assigned"))
		b.WriteString("\n")
	}
	return b.String()
}

// reviewerLine formats one reviewer with a glyph for their latest verdict.
// Verdicts staged locally but not yet acknowledged get a sending marker.
func reviewerLine(u review.User, pr *review.PullRequest) string {
	r, ok := pr.LatestReviewBy(u.ID)
	status := review.StatusPending
	if ok {
		status = r.Decision
	}
	icon, color := statusIcon(status)
	glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(icon)
	line := fmt.Sprintf("%s %s %s", glyph, u.Login, strings.ToLower(statusLabel(status)))
	if ok && r.ID < 0 {
		line += stagedStyle.Render(" ● sending")
	}
	return line
}

// viewerAccessLine describes what the authenticated user may do here.
func (m *DetailModel) viewerAccessLine() string {
	switch {
	case m.perms.CanReviewPR:
		return "Requested reviewer: you can submit a review or comment"
	case m.viewer.ID == m.pr.Author.ID && m.perms.CanComment:
		return "Author: you can comment but not review"
	case m.perms.CanOnlyComment:
		return "Observer: you can comment but not review"
	case m.pr.Locked:
		return dimStyle.Render("Read only: this pull request no longer accepts submissions")
	default:
		return dimStyle.Render("Read only")
	}
}

// pendingOpLabel names a staged mutation for display.
func pendingOpLabel(op *review.PendingOp) string {
	if op.Kind == review.OpReview {
		return "Review"
	}
	return "Comment"
}
