// Package review implements the client-side review state engine: it derives
// canonical pull request status from raw provider data, evaluates viewer
// permissions, rebuilds comment threads, and reconciles optimistic local
// mutations with asynchronous remote writes.
package review

import "time"

// Status is the canonical review status of a pull request, derived from raw
// lifecycle state and review history. It is never stored remotely.
type Status string

const (
	StatusPending          Status = "pending"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusChangesRequested Status = "changesRequested"
	StatusMerged           Status = "merged"
	StatusClosed           Status = "closed"
)

// ValidDecision reports whether s is a status a reviewer can submit.
// Lifecycle statuses (merged, closed, pending) are derived, never submitted.
func ValidDecision(s Status) bool {
	switch s {
	case StatusApproved, StatusRejected, StatusChangesRequested:
		return true
	}
	return false
}

// Role is a user's role relative to one pull request. The same user can be
// author of one PR and reviewer of another, so roles live on the PR.
type Role string

const (
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
)

// User identifies a GitHub account. Identity comparisons use ID, not login.
type User struct {
	ID        int64
	Login     string
	AvatarURL string
}

// Review is a single submitted review. Reviews are immutable: a reviewer
// changing their mind submits a new review rather than editing an old one.
type Review struct {
	ID          int64
	Reviewer    User
	Decision    Status // approved, rejected or changesRequested; pending for unsubmitted
	Body        string
	SubmittedAt time.Time
}

// Comment is one PR comment. ParentID is zero for top-level comments and the
// parent's ID for replies. Locally staged comments carry negative IDs until
// the next refresh replaces them with server records.
type Comment struct {
	ID        int64
	Author    User
	Body      string
	CreatedAt time.Time
	ParentID  int64
}

// PullRequest is the engine's view of one PR. Instances are produced by the
// aggregation pipeline and afterwards mutated only through the Store and the
// mutation Coordinator; Locked is always recomputed from the lifecycle state
// and Status, never set on its own.
type PullRequest struct {
	Number     int
	Title      string
	Body       string
	Author     User
	Reviewers  []User // users whose review was requested
	BaseBranch string
	HeadBranch string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	State    string // raw lifecycle: "open" or "closed"
	Merged   bool
	Status   Status
	Locked   bool
	Reviews  []Review
	Comments []Comment

	// Roles maps user ID to that user's role on this PR: the author maps to
	// RoleAuthor, requested reviewers and past review submitters to RoleReviewer.
	Roles map[int64]Role
}

// LatestReviewBy returns the viewer-visible latest review submitted by the
// given user, or false if they have not reviewed this PR.
func (pr *PullRequest) LatestReviewBy(userID int64) (Review, bool) {
	var (
		latest Review
		found  bool
	)
	for _, r := range pr.Reviews {
		if r.Reviewer.ID != userID {
			continue
		}
		if !found || !laterReview(latest, r) {
			latest = r
			found = true
		}
	}
	return latest, found
}

// PRFailure records a pull request that was excluded from a snapshot because
// its base payload could not be interpreted.
type PRFailure struct {
	Number int
	Err    error
}
