package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// ListComments fetches both comment sources of a PR in one pass: the
// conversation-level issue comments and the review comments, which carry
// reply links. Either list can be empty; both arrive in creation order.
func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) (CommentSet, error) {
	issue, _, err := c.gh.Issues.ListComments(ctx, owner, repo, number, &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		return CommentSet{}, fmt.Errorf("failed to list comments for PR #%d: %w", number, mapError(err))
	}

	reviewComments, _, err := c.gh.PullRequests.ListComments(ctx, owner, repo, number, &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	})
	if err != nil {
		return CommentSet{}, fmt.Errorf("failed to list review comments for PR #%d: %w", number, mapError(err))
	}

	var set CommentSet
	for _, c := range issue {
		set.Issue = append(set.Issue, IssueComment{
			ID:        c.GetID(),
			Author:    userFromGH(c.GetUser()),
			Body:      c.GetBody(),
			CreatedAt: c.GetCreatedAt().Time,
		})
	}
	for _, c := range reviewComments {
		set.Review = append(set.Review, ReviewComment{
			ID:        c.GetID(),
			Author:    userFromGH(c.GetUser()),
			Body:      c.GetBody(),
			CreatedAt: c.GetCreatedAt().Time,
			InReplyTo: c.GetInReplyTo(),
		})
	}
	return set, nil
}
