package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// fetchSnapshotCmd runs one aggregation pass in a goroutine.
func fetchSnapshotCmd(agg *review.Aggregator) tea.Cmd {
	return func() tea.Msg {
		snap, err := agg.Snapshot(context.Background())
		if err != nil {
			return SnapshotErrorMsg{Err: err}
		}
		return SnapshotLoadedMsg{Snapshot: snap}
	}
}

// pollTickCmd fires after the given interval to trigger background polling.
func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// pollFetchCmd runs a background aggregation pass. Failures keep the
// current collection; the handler decides how loudly to surface them.
func pollFetchCmd(agg *review.Aggregator) tea.Cmd {
	return func() tea.Msg {
		snap, err := agg.Snapshot(context.Background())
		if err != nil {
			return pollErrorMsg{Err: err}
		}
		return pollSnapshotMsg{Snapshot: snap}
	}
}

// executeOpCmd performs the remote write for a staged mutation. The op's
// outcome comes back as a message; the store is only touched on the update
// goroutine when that message is handled.
func executeOpCmd(coord *review.Coordinator, op *review.PendingOp) tea.Cmd {
	return func() tea.Msg {
		err := coord.Execute(context.Background(), op)
		return MutationResultMsg{Op: op, Err: err}
	}
}

// convertPRItems converts engine pull requests to list items, splitting
// them into the reviewable set and the full set.
func convertPRItems(viewer review.User, prs []*review.PullRequest) (toReview, all []list.Item) {
	for _, pr := range prs {
		item := PRItem{
			number: pr.Number,
			title:  pr.Title,
			author: pr.Author.Login,
			status: pr.Status,
			locked: pr.Locked,
		}
		all = append(all, item)
		if review.Evaluate(viewer, pr).CanReviewPR {
			toReview = append(toReview, item)
		}
	}
	return toReview, all
}

// pullRequestURL builds the canonical web URL for a pull request.
func pullRequestURL(owner, repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number)
}

// openBrowserCmd opens a URL in the default browser.
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", url)
		}
		_ = cmd.Start()
		return nil
	}
}
