package scc

import "github.com/coregx/omegalearn/dts"

// Decompose computes the strongly connected components of t, returned
// in ascending order of each component's First() state id. Uses an
// iterative (explicit-stack) variant of Tarjan's algorithm so that
// decomposition depth is bounded only by heap memory, not goroutine
// stack size.
func Decompose(t *dts.DTS) []*Component {
	ids := t.StateIndices()
	index := make(map[dts.StateID]int, len(ids))
	low := make(map[dts.StateID]int, len(ids))
	onStack := make(map[dts.StateID]bool, len(ids))
	var tarjanStack []dts.StateID
	var components [][]dts.StateID
	counter := 0

	type frame struct {
		state   dts.StateID
		edges   []dts.Edge
		edgeIdx int
	}

	for _, start := range ids {
		if _, seen := index[start]; seen {
			continue
		}

		var callStack []*frame
		push := func(q dts.StateID) {
			index[q] = counter
			low[q] = counter
			counter++
			tarjanStack = append(tarjanStack, q)
			onStack[q] = true
			edges, _ := t.EdgesFrom(q)
			callStack = append(callStack, &frame{state: q, edges: edges})
		}

		push(start)
		for len(callStack) > 0 {
			top := callStack[len(callStack)-1]
			if top.edgeIdx < len(top.edges) {
				e := top.edges[top.edgeIdx]
				top.edgeIdx++
				w := e.Target
				if _, seen := index[w]; !seen {
					push(w)
					continue
				}
				if onStack[w] {
					if low[w] < low[top.state] {
						low[top.state] = low[w]
					}
				}
				continue
			}

			// All edges of top.state explored: pop frame, propagate
			// low-link to the caller (if any), and emit a component
			// when this state is its own root.
			callStack = callStack[:len(callStack)-1]
			v := top.state
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1]
				if low[v] < low[parent.state] {
					low[parent.state] = low[v]
				}
			}
			if low[v] == index[v] {
				var comp []dts.StateID
				for {
					n := len(tarjanStack) - 1
					w := tarjanStack[n]
					tarjanStack = tarjanStack[:n]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				components = append(components, comp)
			}
		}
	}

	out := make([]*Component, 0, len(components))
	for _, comp := range components {
		sortStateIDs(comp)
		out = append(out, &Component{ts: t, states: comp})
	}
	sortComponentsByFirst(out)
	return out
}

func sortStateIDs(ids []dts.StateID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

func sortComponentsByFirst(cs []*Component) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j].First() < cs[j-1].First(); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}
