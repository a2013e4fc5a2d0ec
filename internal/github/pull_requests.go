package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// ListPullRequests fetches the repository's pull requests, newest first.
// Closed and merged PRs are included: the lifecycle state drives status
// derivation downstream.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	prs, _, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list PRs for %s/%s: %w", owner, repo, mapError(err))
	}

	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, prFromGH(pr))
	}
	return out, nil
}

// prFromGH converts a go-github pull request. The list endpoint leaves the
// merged flag unset and only fills merged_at, so either one counts.
func prFromGH(pr *gh.PullRequest) PullRequest {
	return PullRequest{
		Number:             pr.GetNumber(),
		Title:              pr.GetTitle(),
		Body:               pr.GetBody(),
		State:              pr.GetState(),
		Merged:             pr.GetMerged() || pr.MergedAt != nil,
		Author:             userFromGH(pr.GetUser()),
		RequestedReviewers: usersFromGH(pr.RequestedReviewers),
		Assignees:          usersFromGH(pr.Assignees),
		BaseBranch:         pr.GetBase().GetRef(),
		HeadBranch:         pr.GetHead().GetRef(),
		CreatedAt:          pr.GetCreatedAt().Time,
		UpdatedAt:          pr.GetUpdatedAt().Time,
	}
}
