package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// CreateComment posts an issue-level comment on a PR.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &gh.IssueComment{Body: gh.String(body)}
	if _, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("failed to post comment on PR #%d: %w", number, mapError(err))
	}
	return nil
}

// CreateReview submits a review on a PR. The event must be one of APPROVE,
// REQUEST_CHANGES or COMMENT; GitHub additionally requires a body for
// REQUEST_CHANGES, which callers validate before reaching the network.
func (c *Client) CreateReview(ctx context.Context, owner, repo string, number int, event, body string) error {
	switch event {
	case "APPROVE", "REQUEST_CHANGES", "COMMENT":
	default:
		return fmt.Errorf("invalid review event: %s", event)
	}

	req := &gh.PullRequestReviewRequest{Event: gh.String(event)}
	if body != "" {
		req.Body = gh.String(body)
	}
	if _, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, req); err != nil {
		return fmt.Errorf("failed to submit %s review on PR #%d: %w", event, number, mapError(err))
	}
	return nil
}
