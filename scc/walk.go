package scc

import "github.com/coregx/omegalearn/dts"

// bfsStep is one node of a BFS parent-pointer tree used to reconstruct
// shortest paths in wordBetween and shortestWordToAny.
type bfsStep struct {
	state dts.StateID
	via   dts.Expression
	prev  int // index into the path slice, -1 for the root
}

func reconstructPath(path []bfsStep, idx int) []dts.Expression {
	var rev []dts.Expression
	for idx > 0 {
		rev = append(rev, path[idx].via)
		idx = path[idx].prev
	}
	out := make([]dts.Expression, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// wordBetween returns the shortest word taking the DTS from source to
// target, restricted to passing only through the given allowed
// states (typically a single component, so the path stays interior).
// Among equal-length paths, the lexicographically least is chosen: a
// state's outgoing edges are always expanded in ascending symbol
// order during the BFS, so the first path discovered at a given depth
// is lexicographically least at that depth.
func wordBetween(t *dts.DTS, source, target dts.StateID, allowed []dts.StateID) []dts.Expression {
	if source == target {
		return nil
	}
	allow := make(map[dts.StateID]bool, len(allowed))
	for _, s := range allowed {
		allow[s] = true
	}

	visited := map[dts.StateID]bool{source: true}
	path := []bfsStep{{state: source, prev: -1}}
	queue := []int{0}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		cur := path[idx]
		edges, _ := t.EdgesFrom(cur.state)
		for _, e := range edges {
			if !allow[e.Target] || visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			path = append(path, bfsStep{state: e.Target, via: e.Expr, prev: idx})
			newIdx := len(path) - 1
			if e.Target == target {
				return reconstructPath(path, newIdx)
			}
			queue = append(queue, newIdx)
		}
	}
	return nil
}

// shortestWordToAny returns the shortest word from source to any
// state in targets (ties broken lexicographically, as in
// wordBetween), and true, or (nil, false) if none are reachable.
func shortestWordToAny(t *dts.DTS, source dts.StateID, targets []dts.StateID) (dts.FiniteWord, bool) {
	want := make(map[dts.StateID]bool, len(targets))
	for _, s := range targets {
		want[s] = true
	}
	if want[source] {
		return dts.FiniteWord{}, true
	}

	visited := map[dts.StateID]bool{source: true}
	path := []bfsStep{{state: source, prev: -1}}
	queue := []int{0}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		cur := path[idx]
		edges, _ := t.EdgesFrom(cur.state)
		for _, e := range edges {
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			path = append(path, bfsStep{state: e.Target, via: e.Expr, prev: idx})
			newIdx := len(path) - 1
			if want[e.Target] {
				return dts.FiniteWord(reconstructPath(path, newIdx)), true
			}
			queue = append(queue, newIdx)
		}
	}
	return nil, false
}
