package demo

import (
	"time"

	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
)

const (
	demoOwner = "acme"
	demoRepo  = "gateway"
)

// Fictional users. Identity is by ID everywhere, logins are display only.
var (
	userDemo  = github.User{ID: 1, Login: "demo-user", AvatarURL: "https://github.com/demo-user.png"}
	userAlice = github.User{ID: 2, Login: "alice", AvatarURL: "https://github.com/alice.png"}
	userBob   = github.User{ID: 3, Login: "bob", AvatarURL: "https://github.com/bob.png"}
	userCarol = github.User{ID: 4, Login: "carol", AvatarURL: "https://github.com/carol.png"}
	userDave  = github.User{ID: 5, Login: "dave", AvatarURL: "https://github.com/dave.png"}
	userEve   = github.User{ID: 6, Login: "eve", AvatarURL: "https://github.com/eve.png"}
)

var baseTime = time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

// -- Pull requests --
//
// The set walks the whole status matrix: fresh pending, approval after a
// superseded changes-request, open discussion under changes-requested,
// merged, closed without merge, and one PR authored by the demo viewer.

var pullRequests = []github.PullRequest{
	{
		Number: 101, Title: "Add rate limiting middleware",
		Body:               "## Summary\nAdds per-IP rate limiting middleware using a token bucket.\n\n## Changes\n- New `RateLimiter` with configurable RPS and burst\n- Thread-safe visitor tracking\n- Middleware wrapper returning 429 on limit exceeded",
		State:              "open",
		Author:             userAlice,
		RequestedReviewers: []github.User{userDemo},
		BaseBranch:         "main", HeadBranch: "alice/rate-limiting",
		CreatedAt: baseTime.Add(-2 * time.Hour),
		UpdatedAt: baseTime.Add(-time.Hour),
	},
	{
		Number: 102, Title: "Migrate session store to Redis",
		Body:               "## Summary\nMoves session storage from in-process maps to Redis so gateway replicas share sessions.\n\n## Notes\nTTL semantics match the old implementation; see the migration table in the design doc.",
		State:              "open",
		Author:             userBob,
		RequestedReviewers: []github.User{userCarol, userDemo},
		BaseBranch:         "main", HeadBranch: "bob/redis-sessions",
		CreatedAt: baseTime.Add(-30 * time.Hour),
		UpdatedAt: baseTime.Add(-4 * time.Hour),
	},
	{
		Number: 103, Title: "Implement async connection pool",
		Body:               "## Summary\nGeneric async connection pool with semaphore backpressure.\n\n## Design\n- `ConnectionPool` with configurable max size\n- Automatic return-to-pool on handle close\n- Lazy connection creation via factory",
		State:              "open",
		Author:             userCarol,
		RequestedReviewers: []github.User{userBob, userDemo},
		BaseBranch:         "main", HeadBranch: "carol/connection-pool",
		CreatedAt: baseTime.Add(-50 * time.Hour),
		UpdatedAt: baseTime.Add(-6 * time.Hour),
	},
	{
		Number: 104, Title: "Fix race in shutdown sequence",
		Body:               "## Summary\nDraining the listener before closing worker channels removes the shutdown race seen in #98.",
		State:              "closed",
		Merged:             true,
		Author:             userDave,
		RequestedReviewers: []github.User{userDemo},
		BaseBranch:         "main", HeadBranch: "dave/shutdown-race",
		CreatedAt: baseTime.Add(-9 * 24 * time.Hour),
		UpdatedAt: baseTime.Add(-7 * 24 * time.Hour),
	},
	{
		Number: 105, Title: "Experiment: zstd for response compression",
		Body:               "## Summary\nSpike replacing gzip with zstd. Abandoned: the CPU savings did not justify the client compatibility work.",
		State:              "closed",
		Author:             userEve,
		BaseBranch:         "main", HeadBranch: "eve/zstd-spike",
		CreatedAt: baseTime.Add(-14 * 24 * time.Hour),
		UpdatedAt: baseTime.Add(-12 * 24 * time.Hour),
	},
	{
		Number: 106, Title: "Optimize memory allocator",
		Body:               "## Summary\nExact-fit fast path and block splitting for the free-list allocator.\n\n## Benchmarks\n- 2.3x throughput for small allocations\n- 15% less fragmentation",
		State:              "open",
		Author:             userDemo,
		RequestedReviewers: []github.User{userAlice},
		BaseBranch:         "main", HeadBranch: "demo-user/optimize-allocator",
		CreatedAt: baseTime.Add(-26 * time.Hour),
		UpdatedAt: baseTime.Add(-26 * time.Hour),
	},
}

// -- Reviews --

var reviews = map[int][]github.Review{
	// Carol requested changes, then approved after the fixes: only her
	// latest review counts, so the PR reads approved and locks.
	102: {
		{ID: 2001, Reviewer: userCarol, State: "CHANGES_REQUESTED",
			Body:        "The TTL refresh happens on read, the old store refreshed on write. That changes logout behavior.",
			SubmittedAt: baseTime.Add(-20 * time.Hour)},
		{ID: 2002, Reviewer: userCarol, State: "APPROVED",
			Body:        "Write-path refresh restored, looks good.",
			SubmittedAt: baseTime.Add(-4 * time.Hour)},
	},
	// Bob wants changes; discussion stays open.
	103: {
		{ID: 2003, Reviewer: userBob, State: "CHANGES_REQUESTED",
			Body:        "Pool can deadlock when the factory fails while the semaphore is held.",
			SubmittedAt: baseTime.Add(-6 * time.Hour)},
	},
	104: {
		{ID: 2004, Reviewer: userDemo, State: "APPROVED",
			Body:        "Clean fix.",
			SubmittedAt: baseTime.Add(-8 * 24 * time.Hour)},
	},
	105: {
		{ID: 2005, Reviewer: userBob, State: "DISMISSED",
			Body:        "Not convinced the compatibility story works.",
			SubmittedAt: baseTime.Add(-13 * 24 * time.Hour)},
	},
}

// -- Comments --

var comments = map[int]github.CommentSet{
	101: {
		Issue: []github.IssueComment{
			{ID: 3001, Author: userAlice, Body: "Ready for review. The limiter defaults match what we run in staging.",
				CreatedAt: baseTime.Add(-90 * time.Minute)},
		},
	},
	103: {
		Issue: []github.IssueComment{
			{ID: 3002, Author: userDave, Body: "Is this meant to replace the per-handler pools too?",
				CreatedAt: baseTime.Add(-40 * time.Hour)},
		},
		Review: []github.ReviewComment{
			{ID: 4001, Author: userBob, Body: "If `factory()` returns an error here, the permit is never released.",
				CreatedAt: baseTime.Add(-6 * time.Hour)},
			{ID: 4002, Author: userCarol, Body: "Good catch, moving the release into a defer.",
				CreatedAt: baseTime.Add(-5 * time.Hour), InReplyTo: 4001},
			{ID: 4003, Author: userDemo, Body: "A test that fails the factory under load would pin this down.",
				CreatedAt: baseTime.Add(-4 * time.Hour), InReplyTo: 4001},
			// The parent of this reply was deleted upstream; the engine
			// surfaces it as top-level rather than dropping it.
			{ID: 4004, Author: userEve, Body: "Does the pool expose a size gauge?",
				CreatedAt: baseTime.Add(-3 * time.Hour), InReplyTo: 99999},
		},
	},
	106: {
		Issue: []github.IssueComment{
			{ID: 3003, Author: userAlice, Body: "What does the split threshold default to?",
				CreatedAt: baseTime.Add(-20 * time.Hour)},
			{ID: 3004, Author: userDemo, Body: "64 bytes; below that the remainder stays attached.",
				CreatedAt: baseTime.Add(-19 * time.Hour)},
		},
	},
}
