package ui

import (
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

// -- Collection lifecycle --

// SnapshotLoadedMsg is sent when a foreground aggregation pass completes.
type SnapshotLoadedMsg struct {
	Snapshot *review.Snapshot
}

// SnapshotErrorMsg is sent when a foreground aggregation pass fails.
type SnapshotErrorMsg struct {
	Err error
}

// pollTickMsg fires on the polling interval to trigger a background refresh.
type pollTickMsg struct{}

// pollSnapshotMsg carries the result of a background aggregation pass.
type pollSnapshotMsg struct {
	Snapshot *review.Snapshot
}

// pollErrorMsg is sent when a background aggregation pass fails. The current
// collection is kept.
type pollErrorMsg struct {
	Err error
}

// -- PR selection --

// PRSelectedMsg is sent when the user selects a PR in the list.
type PRSelectedMsg struct {
	Number int
}

// PRSelectedAndAdvanceMsg is sent when ENTER selects a PR and should advance
// focus to the detail panel.
type PRSelectedAndAdvanceMsg struct {
	Number int
}

// -- Mutations --

// ReviewSubmitMsg is emitted by the review form when the user submits a
// review decision.
type ReviewSubmitMsg struct {
	Decision review.Status
	Body     string
}

// ReviewValidationMsg reports a review form validation failure.
type ReviewValidationMsg struct {
	Message string
}

// ComposerOpenMsg asks the app to open the comment composer for the
// selected PR.
type ComposerOpenMsg struct{}

// ComposerSubmitMsg is emitted when the user submits a comment.
type ComposerSubmitMsg struct {
	Body string
}

// ComposerClosedMsg is sent when the composer overlay is dismissed.
type ComposerClosedMsg struct{}

// MutationResultMsg carries the remote outcome of a staged mutation.
type MutationResultMsg struct {
	Op  *review.PendingOp
	Err error
}

// -- Modes & infrastructure --

// ModeChangedMsg is sent when a component enters or leaves insert mode.
type ModeChangedMsg struct {
	Mode AppMode
}

// StatusBarClearMsg clears a temporary status bar message if its sequence
// number is still current.
type StatusBarClearMsg struct {
	Seq int
}
