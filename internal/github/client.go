// Package github is the GitHub REST client for the review engine. It fetches
// pull requests, reviews and both comment sources, submits reviews and
// comments, and folds transport errors into a small taxonomy the rest of the
// application classifies with errors.Is.
package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	gh "github.com/google/go-github/v68/github"
)

// Client implements the provider operations on the GitHub REST API. One
// Client serves one token; owner and repo arrive per call.
type Client struct {
	gh *gh.Client

	mu   sync.Mutex
	user *User // authenticated identity, resolved once
}

// NewClient builds a client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{gh: gh.NewClient(nil).WithAuthToken(token)}
}

// NewTestClient builds a client against a custom API base URL so tests can
// serve canned responses from a local server.
func NewTestClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	c := gh.NewClient(httpClient)
	c.BaseURL = u
	return &Client{gh: c}, nil
}

// CurrentUser returns the authenticated account, resolving it on first use
// and caching it for the lifetime of the client.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user != nil {
		return *c.user, nil
	}

	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return User{}, mapError(err)
	}
	cu := userFromGH(u)
	c.user = &cu
	return cu, nil
}

// userFromGH converts a go-github user. GitHub sends null users for deleted
// accounts; those convert to the zero User, which downstream code treats as
// missing identity.
func userFromGH(u *gh.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
	}
}

// usersFromGH converts a user list, dropping null entries.
func usersFromGH(us []*gh.User) []User {
	if len(us) == 0 {
		return nil
	}
	out := make([]User, 0, len(us))
	for _, u := range us {
		if u == nil {
			continue
		}
		out = append(out, userFromGH(u))
	}
	return out
}
