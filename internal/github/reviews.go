package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// ListReviews fetches the full review history of a PR in submission order.
// All states come back raw, including COMMENTED and PENDING; interpreting
// them is the engine's job.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	opts := &gh.ListOptions{PerPage: 100}
	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for PR #%d: %w", number, mapError(err))
	}

	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, Review{
			ID:          r.GetID(),
			Reviewer:    userFromGH(r.GetUser()),
			State:       r.GetState(),
			Body:        r.GetBody(),
			SubmittedAt: r.GetSubmittedAt().Time,
		})
	}
	return out, nil
}
