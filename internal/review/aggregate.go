package review

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
	"go.uber.org/zap"
)

// Provider is the remote side the engine reads from and writes to.
// internal/github implements it against the REST API; internal/demo serves
// canned data offline.
type Provider interface {
	CurrentUser(ctx context.Context) (github.User, error)
	ListPullRequests(ctx context.Context, owner, repo string) ([]github.PullRequest, error)
	ListReviews(ctx context.Context, owner, repo string, number int) ([]github.Review, error)
	ListComments(ctx context.Context, owner, repo string, number int) (github.CommentSet, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CreateReview(ctx context.Context, owner, repo string, number int, event, body string) error
}

// Snapshot is one complete aggregation pass: the viewer identity, every PR
// that survived interpretation in provider order, and the PRs that did not.
type Snapshot struct {
	User   User
	PRs    []*PullRequest
	Failed []PRFailure
}

// Aggregator turns raw provider data into engine snapshots. The repository
// coordinates are fixed at construction; nothing here reads ambient state.
type Aggregator struct {
	provider Provider
	owner    string
	repo     string
	log      *zap.SugaredLogger
}

// NewAggregator builds an aggregator for one repository.
func NewAggregator(provider Provider, owner, repo string, log *zap.SugaredLogger) *Aggregator {
	return &Aggregator{provider: provider, owner: owner, repo: repo, log: log}
}

// Snapshot fetches and assembles the full PR collection. Identity or listing
// failure aborts the pass so callers can keep their previous collection.
// Per-PR review and comment fetches run concurrently across PRs; a PR's
// combine step waits for both of its own fetches. Fetch failures inside one
// PR degrade that PR to empty lists instead of failing the pass.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	rawUser, err := a.provider.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}
	rawPRs, err := a.provider.ListPullRequests(ctx, a.owner, a.repo)
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}

	type detail struct {
		reviews  []github.Review
		comments github.CommentSet
	}
	details := make([]detail, len(rawPRs))

	var wg sync.WaitGroup
	for i := range rawPRs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			number := rawPRs[i].Number

			var inner sync.WaitGroup
			inner.Add(2)
			go func() {
				defer inner.Done()
				reviews, err := a.provider.ListReviews(ctx, a.owner, a.repo, number)
				if err != nil {
					a.log.Warnw("review fetch degraded", "pr", number, "error", err)
					return
				}
				details[i].reviews = reviews
			}()
			go func() {
				defer inner.Done()
				comments, err := a.provider.ListComments(ctx, a.owner, a.repo, number)
				if err != nil {
					a.log.Warnw("comment fetch degraded", "pr", number, "error", err)
					return
				}
				details[i].comments = comments
			}()
			inner.Wait()
		}(i)
	}
	wg.Wait()

	snap := &Snapshot{User: userFromRaw(rawUser)}
	for i, raw := range rawPRs {
		pr, err := combinePR(raw, details[i].reviews, details[i].comments)
		if err != nil {
			a.log.Warnw("pull request excluded", "pr", raw.Number, "error", err)
			snap.Failed = append(snap.Failed, PRFailure{Number: raw.Number, Err: err})
			continue
		}
		snap.PRs = append(snap.PRs, pr)
	}
	return snap, nil
}

// combinePR assembles one PullRequest from its raw payload and fetched
// detail. The base payload must carry a positive number and an author
// identity; everything else tolerates gaps.
func combinePR(raw github.PullRequest, rawReviews []github.Review, rawComments github.CommentSet) (*PullRequest, error) {
	if raw.Number <= 0 {
		return nil, fmt.Errorf("malformed PR number %d", raw.Number)
	}
	if raw.Author.ID == 0 {
		return nil, fmt.Errorf("PR #%d has no author identity", raw.Number)
	}

	reviews := reviewsFromRaw(rawReviews)
	comments := commentsFromRaw(rawComments)
	status := ResolveStatus(raw.State, raw.Merged, reviews)

	pr := &PullRequest{
		Number:     raw.Number,
		Title:      raw.Title,
		Body:       raw.Body,
		Author:     userFromRaw(raw.Author),
		BaseBranch: raw.BaseBranch,
		HeadBranch: raw.HeadBranch,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
		State:      raw.State,
		Merged:     raw.Merged,
		Status:     status,
		Locked:     ResolveLocked(raw.State, status),
		Reviews:    reviews,
		Comments:   comments,
	}
	for _, u := range raw.RequestedReviewers {
		if u.ID == 0 {
			continue
		}
		pr.Reviewers = append(pr.Reviewers, userFromRaw(u))
	}
	pr.Roles = assignRoles(pr, raw.Assignees)
	return pr, nil
}

// assignRoles computes the PR-scoped role map: the author maps to RoleAuthor;
// every other participant appearing as assignee, requested reviewer or review
// submitter maps to RoleReviewer. Recomputed from scratch for every PR.
func assignRoles(pr *PullRequest, assignees []github.User) map[int64]Role {
	roles := map[int64]Role{pr.Author.ID: RoleAuthor}
	add := func(id int64) {
		if id == 0 {
			return
		}
		if _, taken := roles[id]; !taken {
			roles[id] = RoleReviewer
		}
	}
	for _, u := range pr.Reviewers {
		add(u.ID)
	}
	for _, u := range assignees {
		add(u.ID)
	}
	for _, r := range pr.Reviews {
		add(r.Reviewer.ID)
	}
	return roles
}

func userFromRaw(u github.User) User {
	return User{ID: u.ID, Login: u.Login, AvatarURL: u.AvatarURL}
}

// reviewsFromRaw converts raw reviews to engine reviews. COMMENTED reviews
// carry no decision and are skipped, as are reviews missing a submission
// timestamp or a reviewer identity.
func reviewsFromRaw(raw []github.Review) []Review {
	var out []Review
	for _, r := range raw {
		decision, ok := decisionFromState(r.State)
		if !ok {
			continue
		}
		if r.SubmittedAt.IsZero() || r.Reviewer.ID == 0 {
			continue
		}
		out = append(out, Review{
			ID:          r.ID,
			Reviewer:    userFromRaw(r.Reviewer),
			Decision:    decision,
			Body:        r.Body,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return out
}

// decisionFromState maps a raw review state to a decision. A dismissed
// review reads as rejection; COMMENTED and unknown states carry no decision.
func decisionFromState(state string) (Status, bool) {
	switch state {
	case "APPROVED":
		return StatusApproved, true
	case "CHANGES_REQUESTED":
		return StatusChangesRequested, true
	case "DISMISSED":
		return StatusRejected, true
	case "PENDING":
		return StatusPending, true
	}
	return "", false
}

// commentsFromRaw merges both comment sources into one chronological list.
// Issue comments are top-level; review comments thread through their reply
// link. Entries without a body or timestamp are dropped.
func commentsFromRaw(set github.CommentSet) []Comment {
	var out []Comment
	for _, c := range set.Issue {
		if c.Body == "" || c.CreatedAt.IsZero() {
			continue
		}
		out = append(out, Comment{
			ID:        c.ID,
			Author:    userFromRaw(c.Author),
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, c := range set.Review {
		if c.Body == "" || c.CreatedAt.IsZero() {
			continue
		}
		out = append(out, Comment{
			ID:        c.ID,
			Author:    userFromRaw(c.Author),
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			ParentID:  c.InReplyTo,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
