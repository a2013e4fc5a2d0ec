package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// CommentsTabModel manages the comments tab state and rendering. Comments
// arrive pre-grouped into reply trees; rendering indents each level and
// marks entries that have been staged locally but not yet acknowledged.
type CommentsTabModel struct {
	threads    []review.Thread
	count      int
	posting    bool
	cache      string
	cacheWidth int
}

// SetComments rebuilds the reply trees from a pull request's comments.
func (t *CommentsTabModel) SetComments(comments []review.Comment) {
	t.threads = review.BuildThreads(comments)
	t.count = len(comments)
	t.cache = ""
}

// Clear resets all comments state.
func (t *CommentsTabModel) Clear() {
	t.threads = nil
	t.count = 0
	t.posting = false
	t.cache = ""
}

// IsPosting returns whether a comment is currently being posted.
func (t CommentsTabModel) IsPosting() bool {
	return t.posting
}

// SetPosting sets the posting state.
func (t *CommentsTabModel) SetPosting(posting bool) {
	t.posting = posting
	t.cache = ""
}

// Render renders the comments tab content for the viewport.
func (t *CommentsTabModel) Render(width int, md *MarkdownRenderer) string {
	if t.count == 0 {
		return renderEmptyState("No comments on this pull request", "Press c to start the conversation")
	}

	// Return cached render if available and width hasn't changed
	if t.cache != "" && t.cacheWidth == width {
		return t.cache
	}

	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render(fmt.Sprintf("Conversation (%d)", t.count)))
	b.WriteString("\n")

	first := true
	review.Walk(t.threads, func(depth int, c review.Comment) {
		if !first {
			b.WriteString("\n")
		}
		first = false

		indent := strings.Repeat("  ", depth)
		bodyWidth := width - len(indent)
		if bodyWidth < 10 {
			bodyWidth = 10
		}

		header := authorStyle.Render(c.Author.Login)
		header += dimStyle.Render(" · " + c.CreatedAt.Format("Jan 2 15:04"))
		if c.ID < 0 {
			// Staged locally; the remote write has not been confirmed yet.
			header += stagedStyle.Render(" ● sending")
		}
		b.WriteString(indent + header)
		b.WriteString("\n")

		body := md.RenderMarkdown(c.Body, bodyWidth)
		for _, line := range strings.Split(body, "\n") {
			b.WriteString(indent + line)
			b.WriteString("\n")
		}
	})

	if t.posting {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Render("Posting comment..."))
		b.WriteString("\n")
	}

	result := b.String()
	t.cache = result
	t.cacheWidth = width
	return result
}
