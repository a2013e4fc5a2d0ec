package review

// Store owns the in-memory PR collection. It is written only by snapshot
// replacement and by the mutation Coordinator; presentation code reads it.
// All access happens on the UI's single update goroutine, so the store does
// not lock. Background work never touches it directly and instead reports
// results back as messages.
type Store struct {
	user  User
	order []int
	prs   map[int]*PullRequest
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{prs: make(map[int]*PullRequest)}
}

// ReplaceAll swaps in a full snapshot. Later snapshots win wholesale, which
// is how superseded refreshes resolve.
func (s *Store) ReplaceAll(snap *Snapshot) {
	s.user = snap.User
	s.order = s.order[:0]
	s.prs = make(map[int]*PullRequest, len(snap.PRs))
	for _, pr := range snap.PRs {
		if _, dup := s.prs[pr.Number]; dup {
			continue
		}
		s.order = append(s.order, pr.Number)
		s.prs[pr.Number] = pr
	}
}

// User returns the viewer identity of the current snapshot.
func (s *Store) User() User {
	return s.user
}

// Get returns the shared instance for one PR. Mutations through the
// Coordinator are visible to every holder of the pointer.
func (s *Store) Get(number int) (*PullRequest, bool) {
	pr, ok := s.prs[number]
	return pr, ok
}

// List returns the collection in snapshot order. The slice is fresh on every
// call; the elements are the shared instances.
func (s *Store) List() []*PullRequest {
	out := make([]*PullRequest, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.prs[n])
	}
	return out
}

// Len reports the number of PRs currently held.
func (s *Store) Len() int {
	return len(s.order)
}
