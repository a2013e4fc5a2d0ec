package ui

import (
	"testing"

	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
)

var (
	detailViewer = review.User{ID: 1, Login: "me"}
	detailAuthor = review.User{ID: 2, Login: "alice"}
)

func openPRForViewer() *review.PullRequest {
	return &review.PullRequest{
		Number:    7,
		Title:     "Add pagination",
		Author:    detailAuthor,
		Reviewers: []review.User{detailViewer},
		State:     "open",
		Status:    review.StatusPending,
	}
}

func TestDetail_ReviewBlocked(t *testing.T) {
	tests := []struct {
		name    string
		pr      *review.PullRequest
		pending *review.PendingOp
		want    string
	}{
		{
			name: "no pull request",
			want: "Select a pull request first",
		},
		{
			name: "merged",
			pr: &review.PullRequest{
				Number: 1, Author: detailAuthor, State: "closed", Merged: true,
				Status: review.StatusMerged, Locked: true,
			},
			want: "This pull request has been merged",
		},
		{
			name: "closed",
			pr: &review.PullRequest{
				Number: 2, Author: detailAuthor, State: "closed",
				Status: review.StatusClosed, Locked: true,
			},
			want: "This pull request is closed",
		},
		{
			name: "final verdict recorded",
			pr: &review.PullRequest{
				Number: 3, Author: detailAuthor, State: "open",
				Status: review.StatusRejected, Locked: true,
			},
			want: "A final verdict has already been recorded",
		},
		{
			name:    "submission pending",
			pr:      openPRForViewer(),
			pending: &review.PendingOp{ID: 1, Kind: review.OpReview, PRNumber: 7},
			want:    "A submission is already awaiting confirmation",
		},
		{
			name: "viewer is the author",
			pr: &review.PullRequest{
				Number: 5, Author: detailViewer, State: "open",
				Status: review.StatusPending,
			},
			want: "Authors cannot review their own pull request",
		},
		{
			name: "review not requested",
			pr: &review.PullRequest{
				Number: 6, Author: detailAuthor, State: "open",
				Status: review.StatusPending,
			},
			want: "Your review was not requested on this pull request",
		},
		{
			name: "requested reviewer on open PR",
			pr:   openPRForViewer(),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDetailModel()
			m.SetViewer(detailViewer)
			if tt.pr != nil {
				m.SetPR(tt.pr, tt.pending)
			}
			if got := m.reviewBlocked(); got != tt.want {
				t.Errorf("reviewBlocked() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetail_TabSwitching(t *testing.T) {
	m := NewDetailModel()
	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), nil)

	if m.ActiveTab() != TabOverview {
		t.Fatalf("ActiveTab() = %d, want %d", m.ActiveTab(), TabOverview)
	}

	// l walks Overview → Comments → Review and stops
	m, _ = m.Update(keyMsg("l"))
	if m.ActiveTab() != TabComments {
		t.Errorf("ActiveTab() = %d, want %d", m.ActiveTab(), TabComments)
	}
	m, _ = m.Update(keyMsg("l"))
	if m.ActiveTab() != TabReview {
		t.Errorf("ActiveTab() = %d, want %d", m.ActiveTab(), TabReview)
	}

	// h walks back to Overview and stops
	m, _ = m.Update(keyMsg("h"))
	m, _ = m.Update(keyMsg("h"))
	if m.ActiveTab() != TabOverview {
		t.Errorf("ActiveTab() = %d, want %d", m.ActiveTab(), TabOverview)
	}
	m, _ = m.Update(keyMsg("h"))
	if m.ActiveTab() != TabOverview {
		t.Errorf("ActiveTab() = %d, want %d (clamped)", m.ActiveTab(), TabOverview)
	}
}

func TestDetail_SetActiveTab(t *testing.T) {
	m := NewDetailModel()
	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), nil)

	m.SetActiveTab(TabReview)
	if m.ActiveTab() != TabReview {
		t.Errorf("ActiveTab() = %d, want %d", m.ActiveTab(), TabReview)
	}
}

func TestDetail_SetPR_SwitchResetsForm(t *testing.T) {
	m := NewDetailModel()
	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), nil)
	m.form.textArea.SetValue("draft in progress")

	// Same number keeps the draft
	m.SetPR(openPRForViewer(), nil)
	if got := m.form.textArea.Value(); got != "draft in progress" {
		t.Errorf("textArea value = %q, want preserved draft", got)
	}

	// Different number clears it
	other := openPRForViewer()
	other.Number = 99
	m.SetPR(other, nil)
	if got := m.form.textArea.Value(); got != "" {
		t.Errorf("textArea value = %q, want empty after switching PRs", got)
	}
}

func TestDetail_PRNumber(t *testing.T) {
	m := NewDetailModel()
	if m.PRNumber() != 0 {
		t.Errorf("PRNumber() = %d, want 0", m.PRNumber())
	}

	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), nil)
	if m.PRNumber() != 7 {
		t.Errorf("PRNumber() = %d, want 7", m.PRNumber())
	}

	m.ClearPR()
	if m.PRNumber() != 0 {
		t.Errorf("PRNumber() = %d, want 0 after clear", m.PRNumber())
	}
}

func TestDetail_CommentKeyEmitsComposerOpen(t *testing.T) {
	m := NewDetailModel()
	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), nil)

	_, cmd := m.Update(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected cmd")
	}
	if _, ok := cmd().(ComposerOpenMsg); !ok {
		t.Errorf("expected ComposerOpenMsg, got %T", cmd())
	}
}

func TestDetail_CommentKeyBlockedWhilePending(t *testing.T) {
	m := NewDetailModel()
	m.SetViewer(detailViewer)
	m.SetPR(openPRForViewer(), &review.PendingOp{ID: 1, Kind: review.OpComment, PRNumber: 7})

	_, cmd := m.Update(keyMsg("c"))
	if cmd != nil {
		t.Error("expected nil cmd while a submission is pending")
	}
}
