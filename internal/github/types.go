package github

import "time"

// User represents a GitHub account.
type User struct {
	ID        int64
	Login     string
	AvatarURL string
}

// PullRequest is the raw shape of one pull request as GitHub reports it.
// State and Merged together describe the lifecycle; everything derived
// (review status, locking) is computed downstream.
type PullRequest struct {
	Number             int
	Title              string
	Body               string
	State              string // "open", "closed"
	Merged             bool
	Author             User
	RequestedReviewers []User
	Assignees          []User
	BaseBranch         string
	HeadBranch         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Review is a raw submitted review. SubmittedAt is the zero time for reviews
// GitHub reports without a submission timestamp (drafts, partial payloads).
type Review struct {
	ID          int64
	Reviewer    User
	State       string // "APPROVED", "CHANGES_REQUESTED", "DISMISSED", "PENDING", "COMMENTED"
	Body        string
	SubmittedAt time.Time
}

// IssueComment is a conversation-level PR comment. Issue comments have no
// reply structure on the wire.
type IssueComment struct {
	ID        int64
	Author    User
	Body      string
	CreatedAt time.Time
}

// ReviewComment is a review-attached comment. InReplyTo carries the parent
// comment ID for threaded replies, zero for thread starters.
type ReviewComment struct {
	ID        int64
	Author    User
	Body      string
	CreatedAt time.Time
	InReplyTo int64
}

// CommentSet bundles both comment sources of a PR as fetched in one pass.
type CommentSet struct {
	Issue  []IssueComment
	Review []ReviewComment
}
