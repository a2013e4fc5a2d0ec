package review

import (
	"testing"
)

func TestStoreReplaceAll(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(&Snapshot{
		User: User{ID: 2, Login: "bob"},
		PRs: []*PullRequest{
			{Number: 3, Title: "third"},
			{Number: 1, Title: "first"},
		},
	})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.User().Login != "bob" {
		t.Errorf("User() = %+v, want bob", s.User())
	}

	list := s.List()
	if list[0].Number != 3 || list[1].Number != 1 {
		t.Errorf("order = [%d %d], want snapshot order [3 1]", list[0].Number, list[1].Number)
	}

	// A later snapshot wins wholesale.
	s.ReplaceAll(&Snapshot{PRs: []*PullRequest{{Number: 7}}})
	if s.Len() != 1 {
		t.Fatalf("Len() after replace = %d, want 1", s.Len())
	}
	if _, ok := s.Get(3); ok {
		t.Error("Get(3) still present after replace")
	}
}

func TestStoreSharedInstances(t *testing.T) {
	s := NewStore()
	s.ReplaceAll(&Snapshot{PRs: []*PullRequest{{Number: 5, Status: StatusPending}}})

	pr, ok := s.Get(5)
	if !ok {
		t.Fatal("Get(5) missing")
	}
	pr.Status = StatusApproved

	if got := s.List()[0].Status; got != StatusApproved {
		t.Errorf("List()[0].Status = %v, want mutation visible through shared instance", got)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get(99); ok {
		t.Error("Get(99) on empty store reported ok")
	}
}
