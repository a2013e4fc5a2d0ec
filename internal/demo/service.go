// Package demo provides a canned review.Provider so the app can run
// without a GitHub token. Reads serve a fixed repository; writes fail
// with ErrDemoMode, which also makes every optimistic mutation walk
// the rollback path.
package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
)

// ErrDemoMode is returned by every write operation.
var ErrDemoMode = errors.New("demo mode: submissions disabled")

// Coordinates returns the owner and repo the demo data belongs to.
func Coordinates() (owner, repo string) {
	return demoOwner, demoRepo
}

// Service serves the canned demo repository.
type Service struct{}

// NewService creates a demo provider.
func NewService() *Service {
	return &Service{}
}

// CurrentUser returns the demo viewer identity.
func (s *Service) CurrentUser(ctx context.Context) (github.User, error) {
	return userDemo, nil
}

// ListPullRequests returns the canned pull requests.
func (s *Service) ListPullRequests(ctx context.Context, owner, repo string) ([]github.PullRequest, error) {
	if err := s.checkRepo(owner, repo); err != nil {
		return nil, err
	}
	out := make([]github.PullRequest, len(pullRequests))
	copy(out, pullRequests)
	return out, nil
}

// ListReviews returns the canned reviews for a pull request.
func (s *Service) ListReviews(ctx context.Context, owner, repo string, number int) ([]github.Review, error) {
	if err := s.checkRepo(owner, repo); err != nil {
		return nil, err
	}
	out := make([]github.Review, len(reviews[number]))
	copy(out, reviews[number])
	return out, nil
}

// ListComments returns the canned comments for a pull request.
func (s *Service) ListComments(ctx context.Context, owner, repo string, number int) (github.CommentSet, error) {
	if err := s.checkRepo(owner, repo); err != nil {
		return github.CommentSet{}, err
	}
	set := comments[number]
	out := github.CommentSet{
		Issue:  make([]github.IssueComment, len(set.Issue)),
		Review: make([]github.ReviewComment, len(set.Review)),
	}
	copy(out.Issue, set.Issue)
	copy(out.Review, set.Review)
	return out, nil
}

// CreateComment always fails with ErrDemoMode.
func (s *Service) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	return ErrDemoMode
}

// CreateReview always fails with ErrDemoMode.
func (s *Service) CreateReview(ctx context.Context, owner, repo string, number int, event, body string) error {
	return ErrDemoMode
}

func (s *Service) checkRepo(owner, repo string) error {
	if owner != demoOwner || repo != demoRepo {
		return fmt.Errorf("%w: demo data has no repo %s/%s", github.ErrNotFound, owner, repo)
	}
	return nil
}
