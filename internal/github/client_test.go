package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newStubClient points a Client at a local server serving canned responses.
func newStubClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewTestClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewTestClient() error = %v", err)
	}
	return c
}

func TestCurrentUserCachesIdentity(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"id": 7, "login": "octocat", "avatar_url": "https://avatars.example/7"}`)
	})
	c := newStubClient(t, mux)

	for i := 0; i < 2; i++ {
		u, err := c.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if u.ID != 7 || u.Login != "octocat" {
			t.Errorf("CurrentUser() = %+v, want ID 7 login octocat", u)
		}
	}
	if calls != 1 {
		t.Errorf("user endpoint hit %d times, want 1", calls)
	}
}

func TestCurrentUserUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})
	c := newStubClient(t, mux)

	if _, err := c.CurrentUser(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("CurrentUser() error = %v, want ErrUnauthorized", err)
	}
}

func TestListPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/payments/pulls", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("state"); got != "all" {
			t.Errorf("state query = %q, want %q", got, "all")
		}
		fmt.Fprint(w, `[
			{"number": 12, "title": "Fix rounding", "state": "closed",
			 "merged_at": "2026-02-10T10:00:00Z",
			 "user": {"id": 2, "login": "alice"},
			 "base": {"ref": "main"}, "head": {"ref": "fix-rounding"},
			 "created_at": "2026-02-01T09:00:00Z"},
			{"number": 11, "title": "Add webhooks", "state": "open",
			 "user": {"id": 3, "login": "bob"},
			 "requested_reviewers": [{"id": 4, "login": "carol"}],
			 "base": {"ref": "main"}, "head": {"ref": "webhooks"},
			 "created_at": "2026-01-28T09:00:00Z"}
		]`)
	})
	c := newStubClient(t, mux)

	prs, err := c.ListPullRequests(context.Background(), "acme", "payments")
	if err != nil {
		t.Fatalf("ListPullRequests() error = %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("got %d PRs, want 2", len(prs))
	}
	if !prs[0].Merged {
		t.Errorf("PR #12 Merged = false, want true (merged_at set)")
	}
	if prs[1].Merged {
		t.Errorf("PR #11 Merged = true, want false")
	}
	if len(prs[1].RequestedReviewers) != 1 || prs[1].RequestedReviewers[0].Login != "carol" {
		t.Errorf("PR #11 reviewers = %+v, want [carol]", prs[1].RequestedReviewers)
	}
	if prs[0].Author.ID != 2 {
		t.Errorf("PR #12 author ID = %d, want 2", prs[0].Author.ID)
	}
}

func TestListPullRequestsUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/payments/pulls", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})
	c := newStubClient(t, mux)

	if _, err := c.ListPullRequests(context.Background(), "acme", "payments"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("ListPullRequests() error = %v, want ErrUnauthorized", err)
	}
}

func TestListComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/payments/issues/5/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 100, "user": {"id": 2, "login": "alice"}, "body": "Looks close",
			 "created_at": "2026-02-03T10:00:00Z"}
		]`)
	})
	mux.HandleFunc("/repos/acme/payments/pulls/5/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 200, "user": {"id": 3, "login": "bob"}, "body": "Rename this",
			 "created_at": "2026-02-03T11:00:00Z"},
			{"id": 201, "user": {"id": 2, "login": "alice"}, "body": "Done",
			 "created_at": "2026-02-03T12:00:00Z", "in_reply_to_id": 200}
		]`)
	})
	c := newStubClient(t, mux)

	set, err := c.ListComments(context.Background(), "acme", "payments", 5)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(set.Issue) != 1 || len(set.Review) != 2 {
		t.Fatalf("got %d issue + %d review comments, want 1 + 2", len(set.Issue), len(set.Review))
	}
	if set.Review[1].InReplyTo != 200 {
		t.Errorf("reply InReplyTo = %d, want 200", set.Review[1].InReplyTo)
	}
	if set.Issue[0].Author.Login != "alice" {
		t.Errorf("issue comment author = %q, want alice", set.Issue[0].Author.Login)
	}
}

func TestCreateReview(t *testing.T) {
	var body string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/payments/pulls/5/reviews", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		fmt.Fprint(w, `{"id": 900, "state": "CHANGES_REQUESTED"}`)
	})
	c := newStubClient(t, mux)

	err := c.CreateReview(context.Background(), "acme", "payments", 5, "REQUEST_CHANGES", "needs tests")
	if err != nil {
		t.Fatalf("CreateReview() error = %v", err)
	}
	if !strings.Contains(body, `"event":"REQUEST_CHANGES"`) {
		t.Errorf("request body %q missing event", body)
	}
	if !strings.Contains(body, `"needs tests"`) {
		t.Errorf("request body %q missing review body", body)
	}
}

func TestCreateReviewRejectsUnknownEvent(t *testing.T) {
	c := newStubClient(t, http.NewServeMux())

	err := c.CreateReview(context.Background(), "acme", "payments", 5, "SELF_DESTRUCT", "")
	if err == nil {
		t.Fatal("CreateReview() accepted an unknown event")
	}
}
