package review

import "testing"

func TestEvaluatePermissions(t *testing.T) {
	alice := User{ID: 1, Login: "alice"} // author
	bob := User{ID: 2, Login: "bob"}     // requested reviewer
	carol := User{ID: 3, Login: "carol"} // reviewed without being requested
	dave := User{ID: 4, Login: "dave"}   // uninvolved

	pr := &PullRequest{
		Number:    42,
		Author:    alice,
		Reviewers: []User{bob},
		Reviews:   []Review{rev(1, carol.ID, StatusChangesRequested, testBase)},
	}

	tests := []struct {
		name string
		user User
		want Permissions
	}{
		{"requested reviewer can review and comment", bob,
			Permissions{CanReviewPR: true, CanComment: true}},
		{"author can only comment", alice,
			Permissions{CanComment: true, CanOnlyComment: true}},
		{"past reviewer keeps commenting but not reviewing", carol,
			Permissions{CanComment: true}},
		{"uninvolved user can do nothing", dave,
			Permissions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.user, pr); got != tt.want {
				t.Errorf("Evaluate(%s) = %+v, want %+v", tt.user.Login, got, tt.want)
			}
		})
	}
}

func TestEvaluateRequestedReviewerAfterReviewing(t *testing.T) {
	bob := User{ID: 2, Login: "bob"}
	pr := &PullRequest{
		Number:    42,
		Author:    User{ID: 1, Login: "alice"},
		Reviewers: []User{bob},
		Reviews:   []Review{rev(1, bob.ID, StatusChangesRequested, testBase)},
	}

	got := Evaluate(bob, pr)
	if got.CanReviewPR {
		t.Error("CanReviewPR = true for a reviewer who already reviewed")
	}
	if !got.CanComment {
		t.Error("CanComment = false, want true: discussion stays open on changesRequested")
	}
}

func TestEvaluateLockedDeniesEveryone(t *testing.T) {
	alice := User{ID: 1, Login: "alice"}
	bob := User{ID: 2, Login: "bob"}
	pr := &PullRequest{
		Number:    42,
		Author:    alice,
		Reviewers: []User{bob},
		Locked:    true,
	}

	for _, u := range []User{alice, bob} {
		if got := Evaluate(u, pr); got != (Permissions{}) {
			t.Errorf("Evaluate(%s) on locked PR = %+v, want all false", u.Login, got)
		}
	}
}

func TestEvaluateMatchesByIDNotLogin(t *testing.T) {
	// Two accounts with the same login but different IDs must not be
	// conflated.
	pr := &PullRequest{
		Number:    42,
		Author:    User{ID: 1, Login: "alice"},
		Reviewers: []User{{ID: 2, Login: "alice"}},
	}

	got := Evaluate(User{ID: 2, Login: "alice"}, pr)
	if !got.CanReviewPR || got.CanOnlyComment {
		t.Errorf("Evaluate() = %+v, want reviewer permissions for ID 2", got)
	}
}
