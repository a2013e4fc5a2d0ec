package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrLocked signals a mutation attempt on a locked PR.
	ErrLocked = errors.New("pull request is locked")
	// ErrInFlight signals a second mutation while one is pending on the PR.
	ErrInFlight = errors.New("mutation already in flight")
	// ErrUnknownPR signals a mutation against a PR not in the collection.
	ErrUnknownPR = errors.New("unknown pull request")
	// ErrBadDecision signals a review decision outside the submittable set.
	ErrBadDecision = errors.New("invalid review decision")
)

// OpState tracks a pending mutation through its lifecycle.
type OpState int

const (
	OpIssued OpState = iota
	OpConfirmed
	OpFailed
)

// OpKind says what a pending mutation stages.
type OpKind int

const (
	OpComment OpKind = iota
	OpReview
)

// PendingOp is one staged mutation awaiting its remote outcome. The staged
// record carries a synthetic negative ID so a rollback can find it and a
// refresh can never collide with it.
type PendingOp struct {
	ID       int64
	Kind     OpKind
	PRNumber int
	State    OpState
	Body     string
	Decision Status // reviews only

	stagedID   int64
	prevStatus Status
	prevLocked bool
	roleAdded  bool
}

// Coordinator applies optimistic mutations to the store and reconciles them
// with remote write outcomes. Stage, Confirm and Fail run on the update
// goroutine; Execute is the only method that leaves it, and it touches no
// shared state. One mutation may be in flight per PR; PRs are independent.
type Coordinator struct {
	store    *Store
	provider Provider
	owner    string
	repo     string
	log      *zap.SugaredLogger

	pending     map[int]*PendingOp
	nextOpID    int64
	nextLocalID int64
}

// NewCoordinator builds a coordinator over the given store and provider.
func NewCoordinator(store *Store, provider Provider, owner, repo string, log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{
		store:    store,
		provider: provider,
		owner:    owner,
		repo:     repo,
		log:      log,
		pending:  make(map[int]*PendingOp),
	}
}

// Pending returns the in-flight op for a PR, if any.
func (c *Coordinator) Pending(number int) (*PendingOp, bool) {
	op, ok := c.pending[number]
	return op, ok
}

// StageComment optimistically appends a comment by the viewer and returns
// the op to execute. Locked and busy PRs are rejected before any remote
// work.
func (c *Coordinator) StageComment(number int, body string) (*PendingOp, error) {
	pr, err := c.stageable(number)
	if err != nil {
		return nil, err
	}

	c.nextLocalID--
	staged := Comment{
		ID:        c.nextLocalID,
		Author:    c.store.User(),
		Body:      body,
		CreatedAt: time.Now(),
	}
	pr.Comments = append(pr.Comments, staged)

	op := c.newOp(OpComment, pr, staged.ID)
	op.Body = body
	return op, nil
}

// StageReview optimistically appends a review by the viewer, re-derives
// status and lock from the updated history, and returns the op to execute.
// The viewer gains the reviewer role on this PR if they had none.
func (c *Coordinator) StageReview(number int, decision Status, body string) (*PendingOp, error) {
	if !ValidDecision(decision) {
		return nil, fmt.Errorf("%w: %q", ErrBadDecision, decision)
	}
	pr, err := c.stageable(number)
	if err != nil {
		return nil, err
	}

	viewer := c.store.User()
	c.nextLocalID--
	staged := Review{
		ID:          c.nextLocalID,
		Reviewer:    viewer,
		Decision:    decision,
		Body:        body,
		SubmittedAt: time.Now(),
	}

	op := c.newOp(OpReview, pr, staged.ID)
	op.Body = body
	op.Decision = decision

	pr.Reviews = append(pr.Reviews, staged)
	// Status and lock are re-derived rather than flipped directly, so the
	// optimistic state is always one the resolver itself could produce.
	pr.Status = ResolveStatus(pr.State, pr.Merged, pr.Reviews)
	pr.Locked = ResolveLocked(pr.State, pr.Status)
	if _, has := pr.Roles[viewer.ID]; !has {
		pr.Roles[viewer.ID] = RoleReviewer
		op.roleAdded = true
	}
	return op, nil
}

// stageable gates a mutation: the PR must exist, be unlocked and have no op
// in flight.
func (c *Coordinator) stageable(number int) (*PullRequest, error) {
	pr, ok := c.store.Get(number)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrUnknownPR, number)
	}
	if pr.Locked {
		return nil, fmt.Errorf("%w: #%d", ErrLocked, number)
	}
	if _, busy := c.pending[number]; busy {
		return nil, fmt.Errorf("%w: #%d", ErrInFlight, number)
	}
	return pr, nil
}

func (c *Coordinator) newOp(kind OpKind, pr *PullRequest, stagedID int64) *PendingOp {
	c.nextOpID++
	op := &PendingOp{
		ID:         c.nextOpID,
		Kind:       kind,
		PRNumber:   pr.Number,
		State:      OpIssued,
		stagedID:   stagedID,
		prevStatus: pr.Status,
		prevLocked: pr.Locked,
	}
	c.pending[pr.Number] = op
	return op
}

// Execute performs the remote write for a staged op. Safe to call from a
// background goroutine; the result is fed back through Confirm or Fail on
// the update goroutine.
func (c *Coordinator) Execute(ctx context.Context, op *PendingOp) error {
	switch op.Kind {
	case OpComment:
		return c.provider.CreateComment(ctx, c.owner, c.repo, op.PRNumber, op.Body)
	case OpReview:
		return c.provider.CreateReview(ctx, c.owner, c.repo, op.PRNumber, reviewEvent(op.Decision), op.Body)
	}
	return fmt.Errorf("unknown op kind %d", op.Kind)
}

// reviewEvent maps a decision to the wire event. GitHub has no rejection
// event, so a rejection submits as REQUEST_CHANGES; the next refresh
// re-derives whatever the server reports.
func reviewEvent(d Status) string {
	switch d {
	case StatusApproved:
		return "APPROVE"
	case StatusRejected, StatusChangesRequested:
		return "REQUEST_CHANGES"
	}
	return ""
}

// Confirm settles a successful op. Local state already reflects the change;
// the op just leaves the pending set.
func (c *Coordinator) Confirm(op *PendingOp) {
	if c.pending[op.PRNumber] != op {
		return
	}
	op.State = OpConfirmed
	delete(c.pending, op.PRNumber)
}

// Fail rolls a failed op back: the staged record is removed and the status,
// lock and role captured at stage time are restored. If a refresh replaced
// the PR meanwhile, the staged record is gone with it and there is nothing
// to restore.
func (c *Coordinator) Fail(op *PendingOp, cause error) {
	if c.pending[op.PRNumber] != op {
		return
	}
	op.State = OpFailed
	delete(c.pending, op.PRNumber)

	pr, ok := c.store.Get(op.PRNumber)
	if !ok {
		c.log.Warnw("mutation failed after collection replace", "pr", op.PRNumber, "error", cause)
		return
	}

	var removed bool
	switch op.Kind {
	case OpComment:
		pr.Comments, removed = removeComment(pr.Comments, op.stagedID)
	case OpReview:
		pr.Reviews, removed = removeReview(pr.Reviews, op.stagedID)
		if removed {
			pr.Status = op.prevStatus
			pr.Locked = op.prevLocked
			if op.roleAdded {
				delete(pr.Roles, c.store.User().ID)
			}
		}
	}
	c.log.Errorw("mutation failed, rolled back",
		"pr", op.PRNumber, "op", op.ID, "rolled_back", removed, "error", cause)
}

func removeComment(comments []Comment, id int64) ([]Comment, bool) {
	for i, cm := range comments {
		if cm.ID == id {
			return append(comments[:i], comments[i+1:]...), true
		}
	}
	return comments, false
}

func removeReview(reviews []Review, id int64) ([]Review, bool) {
	for i, r := range reviews {
		if r.ID == id {
			return append(reviews[:i], reviews[i+1:]...), true
		}
	}
	return reviews, false
}
