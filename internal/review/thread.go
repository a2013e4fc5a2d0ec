package review

// Thread is one comment with its direct replies, forming a tree of
// unbounded depth.
type Thread struct {
	Comment Comment
	Replies []Thread
}

// BuildThreads reconstructs the reply forest from a flat comment list. The
// input is not modified and sibling order follows input order, so the same
// list always yields the same forest. A comment whose parent is missing, or
// that names itself as parent, is kept as a top-level thread rather than
// dropped.
func BuildThreads(comments []Comment) []Thread {
	if len(comments) == 0 {
		return nil
	}

	present := make(map[int64]bool, len(comments))
	for _, c := range comments {
		present[c.ID] = true
	}

	children := make(map[int64][]int)
	var roots []int
	for i, c := range comments {
		if c.ParentID == 0 || c.ParentID == c.ID || !present[c.ParentID] {
			roots = append(roots, i)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], i)
	}

	visited := make([]bool, len(comments))
	var build func(i int) Thread
	build = func(i int) Thread {
		visited[i] = true
		t := Thread{Comment: comments[i]}
		for _, ci := range children[comments[i].ID] {
			if visited[ci] {
				continue
			}
			t.Replies = append(t.Replies, build(ci))
		}
		return t
	}

	var threads []Thread
	for _, i := range roots {
		threads = append(threads, build(i))
	}
	// Parent cycles leave their members unreachable from every root. Surface
	// them as top-level threads in input order so nothing disappears.
	for i := range comments {
		if !visited[i] {
			threads = append(threads, build(i))
		}
	}
	return threads
}

// Walk visits every comment in the forest depth-first, parents before
// replies, with the nesting depth of each comment (0 for top-level).
func Walk(threads []Thread, fn func(depth int, c Comment)) {
	var walk func(depth int, ts []Thread)
	walk = func(depth int, ts []Thread) {
		for _, t := range ts {
			fn(depth, t.Comment)
			walk(depth+1, t.Replies)
		}
	}
	walk(0, threads)
}
