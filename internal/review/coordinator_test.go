package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
	"go.uber.org/zap"
)

// scenarioProvider serves PR #42: open, no reviews, authored by alice with
// bob as requested reviewer, viewed by bob.
func scenarioProvider() *fakeProvider {
	pr := github.PullRequest{
		Number:             42,
		Title:              "Add webhook retries",
		State:              "open",
		Author:             github.User{ID: 1, Login: "alice"},
		RequestedReviewers: []github.User{{ID: 2, Login: "bob"}},
		CreatedAt:          testBase,
	}
	return &fakeProvider{
		user: github.User{ID: 2, Login: "bob"},
		prs:  []github.PullRequest{pr},
	}
}

func setupCoordinator(t *testing.T, p *fakeProvider) (*Store, *Coordinator) {
	t.Helper()
	store := NewStore()
	snap, err := newTestAggregator(p).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	store.ReplaceAll(snap)
	return store, NewCoordinator(store, p, "acme", "payments", zap.NewNop().Sugar())
}

func TestFreshPRPermissions(t *testing.T) {
	store, _ := setupCoordinator(t, scenarioProvider())

	pr, _ := store.Get(42)
	if pr.Status != StatusPending || pr.Locked {
		t.Fatalf("fresh PR = (%v, locked=%v), want (pending, unlocked)", pr.Status, pr.Locked)
	}

	bob := store.User()
	if perms := Evaluate(bob, pr); !perms.CanReviewPR {
		t.Errorf("bob permissions = %+v, want CanReviewPR", perms)
	}
	if perms := Evaluate(pr.Author, pr); !perms.CanComment || !perms.CanOnlyComment {
		t.Errorf("alice permissions = %+v, want comment-only", perms)
	}
}

func TestStageReviewApproveFlow(t *testing.T) {
	p := scenarioProvider()
	store, coord := setupCoordinator(t, p)

	op, err := coord.StageReview(42, StatusApproved, "ship it")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}
	if op.State != OpIssued {
		t.Errorf("op state = %v, want issued", op.State)
	}

	pr, _ := store.Get(42)
	if pr.Status != StatusApproved || !pr.Locked {
		t.Errorf("after staging = (%v, locked=%v), want (approved, locked)", pr.Status, pr.Locked)
	}
	if len(pr.Reviews) != 1 || pr.Reviews[0].ID >= 0 {
		t.Errorf("staged review = %+v, want one synthetic-ID review", pr.Reviews)
	}
	if pr.Reviews[0].Reviewer.Login != "bob" {
		t.Errorf("staged reviewer = %q, want bob", pr.Reviews[0].Reviewer.Login)
	}

	bob := store.User()
	if perms := Evaluate(bob, pr); perms.CanReviewPR {
		t.Error("bob can still review after staging an approval")
	}
	if perms := Evaluate(pr.Author, pr); perms.CanComment {
		t.Error("alice can still comment on a locked PR")
	}

	if err := coord.Execute(context.Background(), op); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(p.createdReviews) != 1 || !strings.Contains(p.createdReviews[0], "APPROVE") {
		t.Errorf("remote writes = %v, want one APPROVE", p.createdReviews)
	}

	coord.Confirm(op)
	if op.State != OpConfirmed {
		t.Errorf("op state = %v, want confirmed", op.State)
	}
	if pr.Status != StatusApproved || !pr.Locked {
		t.Errorf("after confirm = (%v, locked=%v), want unchanged (approved, locked)", pr.Status, pr.Locked)
	}
	if _, busy := coord.Pending(42); busy {
		t.Error("op still pending after confirm")
	}
}

func TestStageReviewChangesRequestedKeepsUnlocked(t *testing.T) {
	store, coord := setupCoordinator(t, scenarioProvider())

	if _, err := coord.StageReview(42, StatusChangesRequested, "needs tests"); err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}
	pr, _ := store.Get(42)
	if pr.Status != StatusChangesRequested {
		t.Errorf("status = %v, want changesRequested", pr.Status)
	}
	if pr.Locked {
		t.Error("changesRequested locked the PR; discussion must stay open")
	}
}

func TestStageReviewRejectedSubmitsRequestChanges(t *testing.T) {
	p := scenarioProvider()
	store, coord := setupCoordinator(t, p)

	op, err := coord.StageReview(42, StatusRejected, "fundamental problems")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}
	pr, _ := store.Get(42)
	if pr.Status != StatusRejected || !pr.Locked {
		t.Errorf("after staging = (%v, locked=%v), want (rejected, locked)", pr.Status, pr.Locked)
	}

	if err := coord.Execute(context.Background(), op); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(p.createdReviews) != 1 || !strings.Contains(p.createdReviews[0], "REQUEST_CHANGES") {
		t.Errorf("remote writes = %v, want REQUEST_CHANGES (no rejection event upstream)", p.createdReviews)
	}
}

func TestStageReviewRollback(t *testing.T) {
	store, coord := setupCoordinator(t, scenarioProvider())

	op, err := coord.StageReview(42, StatusApproved, "")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}

	coord.Fail(op, github.ErrNetwork)

	pr, _ := store.Get(42)
	if op.State != OpFailed {
		t.Errorf("op state = %v, want failed", op.State)
	}
	if len(pr.Reviews) != 0 {
		t.Errorf("reviews after rollback = %+v, want empty", pr.Reviews)
	}
	if pr.Status != StatusPending || pr.Locked {
		t.Errorf("after rollback = (%v, locked=%v), want (pending, unlocked)", pr.Status, pr.Locked)
	}
	if pr.Roles[2] != RoleReviewer {
		t.Error("bob's requested-reviewer role must survive the rollback")
	}
	if _, busy := coord.Pending(42); busy {
		t.Error("op still pending after failure")
	}

	// The PR is stageable again.
	if _, err := coord.StageReview(42, StatusApproved, ""); err != nil {
		t.Errorf("restage after rollback: %v", err)
	}
}

func TestStageReviewGrantsAndRevokesRole(t *testing.T) {
	// The viewer is not a requested reviewer; staging a review grants the
	// reviewer role and a rollback revokes it again.
	p := scenarioProvider()
	p.user = github.User{ID: 3, Login: "carol"}
	store, coord := setupCoordinator(t, p)

	op, err := coord.StageReview(42, StatusChangesRequested, "drive-by")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}
	pr, _ := store.Get(42)
	if pr.Roles[3] != RoleReviewer {
		t.Fatalf("roles = %+v, want carol granted reviewer", pr.Roles)
	}

	coord.Fail(op, github.ErrNetwork)
	if _, has := pr.Roles[3]; has {
		t.Error("granted role survived the rollback")
	}
}

func TestStageCommentFlow(t *testing.T) {
	p := scenarioProvider()
	store, coord := setupCoordinator(t, p)

	op, err := coord.StageComment(42, "what about rate limits?")
	if err != nil {
		t.Fatalf("StageComment() error = %v", err)
	}

	pr, _ := store.Get(42)
	if len(pr.Comments) != 1 || pr.Comments[0].ID >= 0 {
		t.Fatalf("comments = %+v, want one synthetic-ID comment", pr.Comments)
	}
	if pr.Comments[0].Author.Login != "bob" {
		t.Errorf("comment author = %q, want viewer", pr.Comments[0].Author.Login)
	}
	if pr.Status != StatusPending || pr.Locked {
		t.Errorf("comment changed status to (%v, locked=%v)", pr.Status, pr.Locked)
	}

	if err := coord.Execute(context.Background(), op); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	coord.Confirm(op)
	if len(p.createdComments) != 1 {
		t.Errorf("remote comments = %v, want 1", p.createdComments)
	}
}

func TestStageCommentRollback(t *testing.T) {
	store, coord := setupCoordinator(t, scenarioProvider())

	op, _ := coord.StageComment(42, "doomed")
	coord.Fail(op, github.ErrNetwork)

	pr, _ := store.Get(42)
	if len(pr.Comments) != 0 {
		t.Errorf("comments after rollback = %+v, want empty", pr.Comments)
	}
}

func TestLockedPRRejectsMutationBeforeRemoteCall(t *testing.T) {
	p := scenarioProvider()
	p.prs[0].State = "closed"
	p.prs[0].Merged = true
	_, coord := setupCoordinator(t, p)

	if _, err := coord.StageComment(42, "too late"); !errors.Is(err, ErrLocked) {
		t.Errorf("StageComment() error = %v, want ErrLocked", err)
	}
	if _, err := coord.StageReview(42, StatusApproved, ""); !errors.Is(err, ErrLocked) {
		t.Errorf("StageReview() error = %v, want ErrLocked", err)
	}
	if len(p.createdComments)+len(p.createdReviews) != 0 {
		t.Error("locked PR mutation reached the provider")
	}
}

func TestOneMutationInFlightPerPR(t *testing.T) {
	p := scenarioProvider()
	p.prs = append(p.prs, github.PullRequest{
		Number:             43,
		Title:              "Second PR",
		State:              "open",
		Author:             github.User{ID: 1, Login: "alice"},
		RequestedReviewers: []github.User{{ID: 2, Login: "bob"}},
		CreatedAt:          testBase,
	})
	_, coord := setupCoordinator(t, p)

	first, err := coord.StageComment(42, "first")
	if err != nil {
		t.Fatalf("StageComment() error = %v", err)
	}
	if _, err := coord.StageComment(42, "second"); !errors.Is(err, ErrInFlight) {
		t.Errorf("second stage error = %v, want ErrInFlight", err)
	}
	if _, err := coord.StageReview(42, StatusApproved, ""); !errors.Is(err, ErrInFlight) {
		t.Errorf("cross-kind stage error = %v, want ErrInFlight", err)
	}

	// A different PR is independent.
	if _, err := coord.StageComment(43, "unrelated"); err != nil {
		t.Errorf("stage on other PR error = %v, want none", err)
	}

	coord.Confirm(first)
	if _, err := coord.StageComment(42, "after confirm"); err != nil {
		t.Errorf("stage after confirm error = %v, want none", err)
	}
}

func TestStageRejectsUnknownPRAndBadDecision(t *testing.T) {
	_, coord := setupCoordinator(t, scenarioProvider())

	if _, err := coord.StageComment(99, "into the void"); !errors.Is(err, ErrUnknownPR) {
		t.Errorf("StageComment(99) error = %v, want ErrUnknownPR", err)
	}
	if _, err := coord.StageReview(42, StatusMerged, ""); !errors.Is(err, ErrBadDecision) {
		t.Errorf("StageReview(merged) error = %v, want ErrBadDecision", err)
	}
	if _, err := coord.StageReview(42, StatusPending, ""); !errors.Is(err, ErrBadDecision) {
		t.Errorf("StageReview(pending) error = %v, want ErrBadDecision", err)
	}
}

func TestFailAfterCollectionReplaceLeavesFreshStateAlone(t *testing.T) {
	p := scenarioProvider()
	store, coord := setupCoordinator(t, p)

	op, err := coord.StageReview(42, StatusApproved, "")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}

	// A refresh lands while the write is in flight: the server now reports
	// an approval by someone else.
	p.reviews = map[int][]github.Review{
		42: {{ID: 900, Reviewer: github.User{ID: 3, Login: "carol"}, State: "APPROVED", SubmittedAt: testBase}},
	}
	snap, err := newTestAggregator(p).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	store.ReplaceAll(snap)

	coord.Fail(op, github.ErrNetwork)

	pr, _ := store.Get(42)
	if len(pr.Reviews) != 1 || pr.Reviews[0].ID != 900 {
		t.Errorf("reviews = %+v, want carol's server review untouched", pr.Reviews)
	}
	if pr.Status != StatusApproved || !pr.Locked {
		t.Errorf("state = (%v, locked=%v), want fresh snapshot state kept", pr.Status, pr.Locked)
	}
}
