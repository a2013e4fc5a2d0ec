package review

import (
	"reflect"
	"testing"
	"time"
)

func cmt(id, parent int64, body string) Comment {
	return Comment{ID: id, ParentID: parent, Body: body, CreatedAt: testBase}
}

// shape flattens a forest into "id(depth)" pairs for compact comparison.
func shape(threads []Thread) []int64 {
	var out []int64
	Walk(threads, func(depth int, c Comment) {
		out = append(out, c.ID, int64(depth))
	})
	return out
}

func TestBuildThreadsBasicForest(t *testing.T) {
	comments := []Comment{
		cmt(1, 0, "c1"),
		cmt(2, 1, "reply to c1"),
		cmt(3, 0, "c3"),
	}
	threads := BuildThreads(comments)

	if len(threads) != 2 {
		t.Fatalf("got %d top-level threads, want 2", len(threads))
	}
	if threads[0].Comment.ID != 1 || threads[1].Comment.ID != 3 {
		t.Errorf("top-level order = [%d %d], want [1 3]", threads[0].Comment.ID, threads[1].Comment.ID)
	}
	if len(threads[0].Replies) != 1 || threads[0].Replies[0].Comment.ID != 2 {
		t.Errorf("thread 1 replies = %+v, want [2]", threads[0].Replies)
	}
}

func TestBuildThreadsOrphanIsTopLevel(t *testing.T) {
	comments := []Comment{
		cmt(1, 0, "c1"),
		cmt(2, 1, "reply"),
		cmt(3, 999, "orphan"),
	}
	threads := BuildThreads(comments)

	want := []int64{1, 0, 2, 1, 3, 0}
	if got := shape(threads); !reflect.DeepEqual(got, want) {
		t.Errorf("shape = %v, want %v (orphan must surface top-level)", got, want)
	}
}

func TestBuildThreadsSelfParentIsTopLevel(t *testing.T) {
	threads := BuildThreads([]Comment{cmt(7, 7, "self")})
	if len(threads) != 1 || threads[0].Comment.ID != 7 || len(threads[0].Replies) != 0 {
		t.Errorf("self-parented comment not surfaced as plain top-level: %+v", threads)
	}
}

func TestBuildThreadsDeepNesting(t *testing.T) {
	comments := []Comment{
		cmt(1, 0, ""),
		cmt(2, 1, ""),
		cmt(3, 2, ""),
		cmt(4, 3, ""),
	}
	threads := BuildThreads(comments)

	want := []int64{1, 0, 2, 1, 3, 2, 4, 3}
	if got := shape(threads); !reflect.DeepEqual(got, want) {
		t.Errorf("shape = %v, want %v", got, want)
	}
}

func TestBuildThreadsSiblingOrderPreserved(t *testing.T) {
	comments := []Comment{
		cmt(1, 0, ""),
		cmt(5, 1, "first reply"),
		cmt(3, 1, "second reply"),
		cmt(9, 1, "third reply"),
	}
	threads := BuildThreads(comments)

	var got []int64
	for _, r := range threads[0].Replies {
		got = append(got, r.Comment.ID)
	}
	if want := []int64{5, 3, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("sibling order = %v, want input order %v", got, want)
	}
}

func TestBuildThreadsIdempotent(t *testing.T) {
	comments := []Comment{
		cmt(1, 0, ""),
		cmt(2, 1, ""),
		cmt(3, 999, ""),
		cmt(4, 2, ""),
	}
	first := BuildThreads(comments)
	second := BuildThreads(comments)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two passes disagree:\n%+v\n%+v", first, second)
	}
}

func TestBuildThreadsDoesNotMutateInput(t *testing.T) {
	comments := []Comment{
		cmt(2, 1, "reply listed before parent"),
		cmt(1, 0, "parent"),
	}
	snapshot := make([]Comment, len(comments))
	copy(snapshot, comments)

	BuildThreads(comments)

	if !reflect.DeepEqual(comments, snapshot) {
		t.Errorf("input mutated: %+v, want %+v", comments, snapshot)
	}
}

func TestBuildThreadsCycleSurfaces(t *testing.T) {
	// 1 and 2 point at each other; neither is reachable from a root, but
	// both must still appear.
	comments := []Comment{
		cmt(1, 2, ""),
		cmt(2, 1, ""),
		cmt(3, 0, "honest root"),
	}
	threads := BuildThreads(comments)

	seen := map[int64]bool{}
	Walk(threads, func(depth int, c Comment) { seen[c.ID] = true })
	for _, id := range []int64{1, 2, 3} {
		if !seen[id] {
			t.Errorf("comment %d dropped from forest", id)
		}
	}
}

func TestBuildThreadsEmpty(t *testing.T) {
	if got := BuildThreads(nil); got != nil {
		t.Errorf("BuildThreads(nil) = %+v, want nil", got)
	}
}

func TestWalkDepths(t *testing.T) {
	created := testBase
	comments := []Comment{
		{ID: 1, CreatedAt: created},
		{ID: 2, ParentID: 1, CreatedAt: created.Add(time.Minute)},
		{ID: 3, CreatedAt: created.Add(2 * time.Minute)},
	}
	var depths []int
	Walk(BuildThreads(comments), func(depth int, c Comment) { depths = append(depths, depth) })
	if want := []int{0, 1, 0}; !reflect.DeepEqual(depths, want) {
		t.Errorf("depths = %v, want %v", depths, want)
	}
}
