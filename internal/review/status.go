package review

// ResolveStatus derives the canonical status from the raw lifecycle state,
// the merged flag and the full review history. Lifecycle outcomes dominate:
// a closed PR is merged or closed no matter what reviews it accumulated.
// For open PRs each reviewer counts once, through their latest review, and
// negative signals outrank positive ones.
func ResolveStatus(state string, merged bool, reviews []Review) Status {
	if state == "closed" {
		if merged {
			return StatusMerged
		}
		return StatusClosed
	}
	if len(reviews) == 0 {
		return StatusPending
	}

	latest := latestPerReviewer(reviews)
	var anyChanges, anyApproved bool
	for _, r := range latest {
		switch r.Decision {
		case StatusRejected:
			return StatusRejected
		case StatusChangesRequested:
			anyChanges = true
		case StatusApproved:
			anyApproved = true
		}
	}
	if anyChanges {
		return StatusChangesRequested
	}
	if anyApproved {
		return StatusApproved
	}
	return StatusPending
}

// ResolveLocked reports whether a PR accepts further reviews and comments.
// Terminal statuses lock the PR even while the raw state is still open, so
// an approved or rejected PR cannot collect post-decision mutations.
func ResolveLocked(state string, status Status) bool {
	if state == "closed" {
		return true
	}
	switch status {
	case StatusMerged, StatusClosed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// latestPerReviewer reduces a review history to one review per reviewer.
// Supersession order is total: later SubmittedAt wins, then larger ID, then
// later input position, so equal-timestamp histories resolve the same way on
// every pass.
func latestPerReviewer(reviews []Review) []Review {
	byReviewer := make(map[int64]int, len(reviews))
	kept := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		i, ok := byReviewer[r.Reviewer.ID]
		if !ok {
			byReviewer[r.Reviewer.ID] = len(kept)
			kept = append(kept, r)
			continue
		}
		if !laterReview(kept[i], r) {
			kept[i] = r
		}
	}
	return kept
}

// laterReview reports whether a strictly supersedes b.
func laterReview(a, b Review) bool {
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.After(b.SubmittedAt)
	}
	return a.ID > b.ID
}
