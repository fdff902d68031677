// Package scc decomposes a dts.DTS into its strongly connected
// components and exposes the lazily-cached derived views (interior and
// border edge sets, minimal representatives, transience) that the
// conflict-relation and DPA-normalization algorithms build on.
//
// Decomposition uses an iterative, explicit-stack Tarjan's algorithm,
// so a long chain of states never risks blowing the call stack. Each
// Component's derived sets are computed on first access and cached
// behind a sync.Once.
package scc

import (
	"sync"

	"github.com/coregx/omegalearn/dts"
)

// Component is one strongly connected component of a decomposed DTS.
type Component struct {
	ts     *dts.DTS
	states []dts.StateID // sorted ascending

	interiorOnce sync.Once
	interior     []dts.Edge

	borderOnce sync.Once
	border     []dts.Edge

	colorsOnce sync.Once
	colors     map[dts.Color]struct{}

	repOnce sync.Once
	rep     dts.FiniteWord
	hasRep  bool
}

// States returns the component's state ids in ascending order. The
// returned slice must not be mutated.
func (c *Component) States() []dts.StateID { return c.states }

// Size returns the number of states in the component.
func (c *Component) Size() int { return len(c.states) }

// Contains reports whether q belongs to the component.
func (c *Component) Contains(q dts.StateID) bool {
	for _, s := range c.states {
		if s == q {
			return true
		}
	}
	return false
}

// First returns the component's smallest state id, its canonical
// representative for ordering and tie-breaking purposes.
func (c *Component) First() dts.StateID { return c.states[0] }

// InteriorEdges returns the edges whose source and target both lie in
// the component, sorted by (source, expression). Computed once and
// cached.
func (c *Component) InteriorEdges() []dts.Edge {
	c.interiorOnce.Do(func() {
		for _, q := range c.states {
			edges, _ := c.ts.EdgesFrom(q)
			for _, e := range edges {
				if c.Contains(e.Target) {
					c.interior = append(c.interior, e)
				}
			}
		}
	})
	return c.interior
}

// BorderEdges returns the edges whose source lies in the component and
// target lies outside it, sorted by (source, expression). Computed
// once and cached.
func (c *Component) BorderEdges() []dts.Edge {
	c.borderOnce.Do(func() {
		for _, q := range c.states {
			edges, _ := c.ts.EdgesFrom(q)
			for _, e := range edges {
				if !c.Contains(e.Target) {
					c.border = append(c.border, e)
				}
			}
		}
	})
	return c.border
}

// InteriorEdgeColors returns the set of colors appearing on interior
// edges. Computed once and cached.
func (c *Component) InteriorEdgeColors() map[dts.Color]struct{} {
	c.colorsOnce.Do(func() {
		c.colors = make(map[dts.Color]struct{})
		for _, e := range c.InteriorEdges() {
			c.colors[e.Color] = struct{}{}
		}
	})
	return c.colors
}

// MinInteriorEdgeColor returns the smallest color among interior
// edges and true, or (0, false) if the component is transient.
func (c *Component) MinInteriorEdgeColor() (dts.Color, bool) {
	colors := c.InteriorEdgeColors()
	if len(colors) == 0 {
		return 0, false
	}
	first := true
	var min dts.Color
	for col := range colors {
		if first || col < min {
			min = col
			first = false
		}
	}
	return min, true
}

// IsTransient reports whether the component has no interior
// transition (it is left on every step, i.e. no infinite run can stay
// inside it).
func (c *Component) IsTransient() bool {
	return len(c.InteriorEdges()) == 0
}

// IsTrivial reports whether the component is a single state.
func (c *Component) IsTrivial() bool { return len(c.states) == 1 }

// MinimalRepresentative returns the lexicographically-shortest word
// reaching this component from the DTS's initial state (shortest,
// then lex-least among ties), and true, or (nil, false) if the DTS is
// unpointed or the component is unreachable. Computed once and cached.
func (c *Component) MinimalRepresentative() (dts.FiniteWord, bool) {
	c.repOnce.Do(func() {
		init, ok := c.ts.Initial()
		if !ok {
			return
		}
		w, found := shortestWordToAny(c.ts, init, c.states)
		if found {
			c.rep = w
			c.hasRep = true
		}
	})
	return c.rep, c.hasRep
}

// MaximalLoopFrom returns a closed walk starting and ending at from
// that uses every interior transition of the component at least once,
// or nil if the component is transient. from must belong to the
// component.
//
// The walk is built greedily: for each state we track its remaining
// unused outgoing interior transitions, preferring a self-continuing
// choice (one that revisits the current state, if present) and
// otherwise taking the first remaining one in (symbol, target) order;
// whenever the current state has exhausted its transitions we jump, by
// the shortest intra-component path, to some state that still has
// work left. Correctness of the jumps rests on the component being
// strongly connected.
func (c *Component) MaximalLoopFrom(from dts.StateID) []dts.Expression {
	if !c.Contains(from) {
		panic("scc: MaximalLoopFrom called with a state outside the component")
	}
	remaining := map[dts.StateID][]pendingTransition{}
	for _, e := range c.InteriorEdges() {
		remaining[e.Source] = append(remaining[e.Source], pendingTransition{symbol: e.Expr, target: e.Target})
	}
	if len(remaining) == 0 {
		return nil
	}

	var word []dts.Expression
	current := from

	for len(remaining) > 0 {
		if list, ok := remaining[current]; ok {
			if len(list) == 0 {
				delete(remaining, current)
				continue
			}
			idx := 0
			for i, t := range list {
				if t.target == current {
					idx = i
					break
				}
			}
			chosen := list[idx]
			remaining[current] = append(list[:idx], list[idx+1:]...)
			if len(remaining[current]) == 0 {
				delete(remaining, current)
			}
			word = append(word, chosen.symbol)
			current = chosen.target
			continue
		}

		target := firstStateStillPending(c.ts, current, remaining)
		if len(remaining[target]) == 0 {
			delete(remaining, target)
			continue
		}
		path := wordBetween(c.ts, current, target, c.states)
		word = append(word, path...)
		current = target
	}

	if current != from {
		path := wordBetween(c.ts, current, from, c.states)
		word = append(word, path...)
	}

	return word
}

type pendingTransition struct {
	symbol dts.Expression
	target dts.StateID
}

func firstStateStillPending(t *dts.DTS, from dts.StateID, remaining map[dts.StateID][]pendingTransition) dts.StateID {
	edges, _ := t.EdgesFrom(from)
	for _, e := range edges {
		if _, ok := remaining[e.Target]; ok {
			return e.Target
		}
	}
	// No direct edge lands on a still-pending state; fall back to the
	// smallest pending state id so the choice is deterministic.
	best := dts.InvalidState
	for k := range remaining {
		if best == dts.InvalidState || k < best {
			best = k
		}
	}
	return best
}
