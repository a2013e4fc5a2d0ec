package review

// Permissions captures what one user may do on one PR at one instant.
type Permissions struct {
	// CanReviewPR: the user is a requested reviewer who has not yet
	// submitted a review, and the PR is open for mutation.
	CanReviewPR bool
	// CanComment: the PR is open for mutation and the user participates in
	// it as author, requested reviewer or past review submitter.
	CanComment bool
	// CanOnlyComment: the user authored the PR, so commenting is the only
	// action available to them while the PR is unlocked.
	CanOnlyComment bool
}

// Evaluate derives user's permissions on pr. Permissions are computed at
// access time and never cached: any mutation or refresh can change them.
func Evaluate(user User, pr *PullRequest) Permissions {
	isAuthor := pr.Author.ID == user.ID

	var isRequested bool
	for _, r := range pr.Reviewers {
		if r.ID == user.ID {
			isRequested = true
			break
		}
	}

	var hasReviewed bool
	for _, r := range pr.Reviews {
		if r.Reviewer.ID == user.ID {
			hasReviewed = true
			break
		}
	}

	if pr.Locked {
		return Permissions{}
	}
	return Permissions{
		CanReviewPR:    isRequested && !hasReviewed && !isAuthor,
		CanComment:     isAuthor || isRequested || hasReviewed,
		CanOnlyComment: isAuthor,
	}
}
