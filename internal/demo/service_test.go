package demo

import (
	"context"
	"errors"
	"testing"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
	"go.uber.org/zap"
)

func demoSnapshot(t *testing.T) (*review.Store, *review.Coordinator) {
	t.Helper()
	svc := NewService()
	owner, repo := Coordinates()
	log := zap.NewNop().Sugar()
	agg := review.NewAggregator(svc, owner, repo, log)
	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap.Failed) != 0 {
		t.Fatalf("Snapshot() failures = %v, want none", snap.Failed)
	}
	store := review.NewStore()
	store.ReplaceAll(snap)
	return store, review.NewCoordinator(store, svc, owner, repo, log)
}

func TestCurrentUser(t *testing.T) {
	s := NewService()
	u, err := s.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if u.Login != "demo-user" || u.ID == 0 {
		t.Errorf("CurrentUser() = %+v, want demo-user with an ID", u)
	}
}

func TestUnknownRepoNotFound(t *testing.T) {
	s := NewService()
	_, err := s.ListPullRequests(context.Background(), "acme", "payments")
	if !errors.Is(err, github.ErrNotFound) {
		t.Errorf("ListPullRequests(wrong repo) error = %v, want ErrNotFound", err)
	}
}

func TestStatusMatrix(t *testing.T) {
	store, _ := demoSnapshot(t)
	want := map[int]review.Status{
		101: review.StatusPending,
		102: review.StatusApproved,
		103: review.StatusChangesRequested,
		104: review.StatusMerged,
		105: review.StatusClosed,
		106: review.StatusPending,
	}
	if store.Len() != len(want) {
		t.Fatalf("store holds %d PRs, want %d", store.Len(), len(want))
	}
	for number, status := range want {
		pr, ok := store.Get(number)
		if !ok {
			t.Fatalf("PR #%d missing", number)
		}
		if pr.Status != status {
			t.Errorf("PR #%d status = %v, want %v", number, pr.Status, status)
		}
	}
	for _, number := range []int{102, 104, 105} {
		pr, _ := store.Get(number)
		if !pr.Locked {
			t.Errorf("PR #%d should be locked", number)
		}
	}
	for _, number := range []int{101, 103, 106} {
		pr, _ := store.Get(number)
		if pr.Locked {
			t.Errorf("PR #%d should not be locked", number)
		}
	}
}

func TestOrphanReplySurfacesTopLevel(t *testing.T) {
	store, _ := demoSnapshot(t)
	pr, _ := store.Get(103)
	threads := review.BuildThreads(pr.Comments)
	var found bool
	for _, th := range threads {
		if th.Comment.ID == 4004 {
			found = true
		}
	}
	if !found {
		t.Error("orphan reply 4004 should surface as a top-level thread")
	}
}

func TestViewerPermissions(t *testing.T) {
	store, _ := demoSnapshot(t)
	user := store.User()

	pr, _ := store.Get(101)
	if p := review.Evaluate(user, pr); !p.CanReviewPR || !p.CanComment {
		t.Errorf("PR #101 permissions = %+v, want reviewable and commentable", p)
	}
	pr, _ = store.Get(106)
	if p := review.Evaluate(user, pr); p.CanReviewPR || !p.CanOnlyComment {
		t.Errorf("PR #106 permissions = %+v, want author-only commenting", p)
	}
	pr, _ = store.Get(102)
	if p := review.Evaluate(user, pr); p.CanReviewPR || p.CanComment {
		t.Errorf("PR #102 permissions = %+v, want everything denied while locked", p)
	}
}

func TestWritesReturnErrDemoMode(t *testing.T) {
	s := NewService()
	owner, repo := Coordinates()
	ctx := context.Background()
	if err := s.CreateComment(ctx, owner, repo, 101, "hi"); !errors.Is(err, ErrDemoMode) {
		t.Errorf("CreateComment() error = %v, want ErrDemoMode", err)
	}
	if err := s.CreateReview(ctx, owner, repo, 101, "APPROVE", ""); !errors.Is(err, ErrDemoMode) {
		t.Errorf("CreateReview() error = %v, want ErrDemoMode", err)
	}
}

func TestMutationRollsBack(t *testing.T) {
	store, coord := demoSnapshot(t)

	op, err := coord.StageReview(101, review.StatusApproved, "")
	if err != nil {
		t.Fatalf("StageReview() error = %v", err)
	}
	pr, _ := store.Get(101)
	if pr.Status != review.StatusApproved || !pr.Locked {
		t.Fatalf("staged PR = %v locked=%v, want approved and locked", pr.Status, pr.Locked)
	}

	execErr := coord.Execute(context.Background(), op)
	if !errors.Is(execErr, ErrDemoMode) {
		t.Fatalf("Execute() error = %v, want ErrDemoMode", execErr)
	}
	coord.Fail(op, execErr)

	pr, _ = store.Get(101)
	if pr.Status != review.StatusPending || pr.Locked {
		t.Errorf("rolled back PR = %v locked=%v, want pending and unlocked", pr.Status, pr.Locked)
	}
	if len(pr.Reviews) != 0 {
		t.Errorf("rolled back PR holds %d reviews, want 0", len(pr.Reviews))
	}
}
