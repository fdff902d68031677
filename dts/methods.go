package dts

import "github.com/coregx/omegalearn/internal/sparse"

// AddState appends a new state with the given color and returns its
// id. The id is distinct from every prior id, including removed ones:
// the arena never reuses a slot index once handed out.
func (d *DTS) AddState(color Color) StateID {
	id := StateID(len(d.states))
	d.states = append(d.states, stateSlot{
		live:  true,
		color: color,
		out:   make(map[Expression]int),
	})
	return id
}

// StateColor returns the color of q and true, or (zero, false) if q
// is not a live state.
func (d *DTS) StateColor(q StateID) (Color, bool) {
	if !d.isLive(q) {
		return 0, false
	}
	return d.states[q].color, true
}

// SetStateColor recolors a live state in place. Returns false if q is
// not live.
func (d *DTS) SetStateColor(q StateID, color Color) bool {
	if !d.isLive(q) {
		return false
	}
	d.states[q].color = color
	return true
}

// Size returns the number of currently live states.
func (d *DTS) Size() int {
	n := 0
	for _, s := range d.states {
		if s.live {
			n++
		}
	}
	return n
}

// StateIndices returns the live state ids in ascending order.
func (d *DTS) StateIndices() []StateID {
	out := make([]StateID, 0, len(d.states))
	for i, s := range d.states {
		if s.live {
			out = append(out, StateID(i))
		}
	}
	return out
}

// AddEdge inserts an edge q --expr--> target with the given color,
// rejecting replacement: if an edge already exists from q on expr it
// is left untouched and returned as (prior, false). Sprout relies on
// this behavior, asserting absence before probing a candidate; use
// AddEdgeReplacing for the overwrite policy.
//
// Returns (Edge{}, false) and does nothing if q or target is not live.
func (d *DTS) AddEdge(q StateID, expr Expression, color Color, target StateID) (Edge, bool) {
	if !d.isLive(q) || !d.isLive(target) {
		return Edge{}, false
	}

	if idx, ok := d.states[q].out[expr]; ok {
		prior := d.edgeAsEdge(idx)
		return prior, false
	}

	idx := len(d.edges)
	d.edges = append(d.edges, edgeSlot{
		live:   true,
		source: q,
		expr:   expr,
		color:  color,
		target: target,
	})
	d.states[q].out[expr] = idx
	d.in[target] = append(d.in[target], idx)
	return Edge{}, true
}

// AddEdgeReplacing behaves like AddEdge except that any prior edge
// from q on expr is overwritten and returned.
func (d *DTS) AddEdgeReplacing(q StateID, expr Expression, color Color, target StateID) (Edge, bool) {
	if !d.isLive(q) || !d.isLive(target) {
		return Edge{}, false
	}
	var prior Edge
	hadPrior := false
	if idx, ok := d.states[q].out[expr]; ok {
		prior = d.edgeAsEdge(idx)
		hadPrior = true
		d.deadEdge(idx)
	}

	idx := len(d.edges)
	d.edges = append(d.edges, edgeSlot{
		live:   true,
		source: q,
		expr:   expr,
		color:  color,
		target: target,
	})
	d.states[q].out[expr] = idx
	d.in[target] = append(d.in[target], idx)
	return prior, hadPrior
}

func (d *DTS) edgeAsEdge(idx int) Edge {
	e := d.edges[idx]
	return Edge{Source: e.source, Expr: e.expr, Color: e.color, Target: e.target}
}

func (d *DTS) deadEdge(idx int) {
	e := &d.edges[idx]
	e.live = false
	delete(d.states[e.source].out, e.expr)
	d.removeFromIn(e.target, idx)
}

func (d *DTS) removeFromIn(target StateID, idx int) {
	list := d.in[target]
	for i, v := range list {
		if v == idx {
			list[i] = list[len(list)-1]
			d.in[target] = list[:len(list)-1]
			return
		}
	}
}

// RemoveState removes q and every edge incident on it (incoming or
// outgoing), returning its color and true. Returns (zero, false) if q
// is not live, failing softly rather than panicking.
func (d *DTS) RemoveState(q StateID) (Color, bool) {
	if !d.isLive(q) {
		return 0, false
	}
	color := d.states[q].color

	for _, idx := range append([]int(nil), valuesOf(d.states[q].out)...) {
		d.deadEdge(idx)
	}
	for _, idx := range append([]int(nil), d.in[q]...) {
		d.deadEdge(idx)
	}
	delete(d.in, q)

	d.states[q].live = false
	d.states[q].out = nil
	if d.pointed && d.initial == q {
		d.pointed = false
		d.initial = InvalidState
	}
	return color, true
}

func valuesOf(m map[Expression]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// EdgesFrom returns the live edges leaving q in ascending expression
// order, or (nil, false) if q is not live.
func (d *DTS) EdgesFrom(q StateID) ([]Edge, bool) {
	if !d.isLive(q) {
		return nil, false
	}
	out := make([]Edge, 0, len(d.states[q].out))
	for expr, idx := range d.states[q].out {
		_ = expr
		out = append(out, d.edgeAsEdge(idx))
	}
	sortEdgesByExpr(out)
	return out, true
}

// Predecessors returns the live edges arriving at q, sorted by
// (source, expression), or (nil, false) if q is not live.
func (d *DTS) Predecessors(q StateID) ([]Edge, bool) {
	if !d.isLive(q) {
		return nil, false
	}
	list := d.in[q]
	out := make([]Edge, 0, len(list))
	for _, idx := range list {
		out = append(out, d.edgeAsEdge(idx))
	}
	sortEdgesBySourceExpr(out)
	return out, true
}

func sortEdgesByExpr(es []Edge) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && es[j].Expr < es[j-1].Expr; j-- {
			es[j], es[j-1] = es[j-1], es[j]
		}
	}
}

func sortEdgesBySourceExpr(es []Edge) {
	for i := 1; i < len(es); i++ {
		for j := i; j > 0 && lessSourceExpr(es[j], es[j-1]); j-- {
			es[j], es[j-1] = es[j-1], es[j]
		}
	}
}

func lessSourceExpr(a, b Edge) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Expr < b.Expr
}

// HasEdge reports whether a live edge leaves q on expr, and returns
// its target.
func (d *DTS) HasEdge(q StateID, expr Expression) (StateID, bool) {
	if !d.isLive(q) {
		return InvalidState, false
	}
	idx, ok := d.states[q].out[expr]
	if !ok {
		return InvalidState, false
	}
	return d.edges[idx].target, true
}

// ReachedStateIndexFrom runs the finite word w from q and returns the
// reached state, or (InvalidState, false) if any step's transition is
// undefined.
func (d *DTS) ReachedStateIndexFrom(q StateID, w []Expression) (StateID, bool) {
	cur := q
	if !d.isLive(cur) {
		return InvalidState, false
	}
	for _, a := range w {
		next, ok := d.HasEdge(cur, a)
		if !ok {
			return InvalidState, false
		}
		cur = next
	}
	return cur, true
}

// ReachedStateIndex runs w from the initial state.
func (d *DTS) ReachedStateIndex(w []Expression) (StateID, bool) {
	init, ok := d.Initial()
	if !ok {
		return InvalidState, false
	}
	return d.ReachedStateIndexFrom(init, w)
}

// removeEdgeTuple removes the live edge at idx and returns its tuple.
func (d *DTS) removeEdgeTuple(idx int) Edge {
	e := d.edgeAsEdge(idx)
	d.deadEdge(idx)
	return e
}

// RemoveEdgesFromMatching removes every live edge leaving q whose
// expression equals expr, returning the removed tuples, or (nil,
// false) if q does not exist. Normally this removes at most one edge
// (DTS is deterministic) but the signature matches the more general
// "matching" family for symmetry with RemoveEdgesBetweenMatching.
func (d *DTS) RemoveEdgesFromMatching(q StateID, expr Expression) ([]Edge, bool) {
	if !d.isLive(q) {
		return nil, false
	}
	idx, ok := d.states[q].out[expr]
	if !ok {
		return []Edge{}, true
	}
	return []Edge{d.removeEdgeTuple(idx)}, true
}

// RemoveEdgesFrom removes every live edge leaving q, returning the
// removed tuples, or (nil, false) if q does not exist.
func (d *DTS) RemoveEdgesFrom(q StateID) ([]Edge, bool) {
	if !d.isLive(q) {
		return nil, false
	}
	idxs := valuesOf(d.states[q].out)
	out := make([]Edge, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, d.removeEdgeTuple(idx))
	}
	return out, true
}

// RemoveEdgesTo removes every live edge arriving at q, returning the
// removed tuples, or (nil, false) if q does not exist.
func (d *DTS) RemoveEdgesTo(q StateID) ([]Edge, bool) {
	if !d.isLive(q) {
		return nil, false
	}
	idxs := append([]int(nil), d.in[q]...)
	out := make([]Edge, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, d.removeEdgeTuple(idx))
	}
	return out, true
}

// RemoveEdgesBetween removes every live edge from q to p, returning
// the removed tuples, or (nil, false) if either endpoint is absent.
func (d *DTS) RemoveEdgesBetween(q, p StateID) ([]Edge, bool) {
	if !d.isLive(q) || !d.isLive(p) {
		return nil, false
	}
	var removed []Edge
	for _, idx := range valuesOf(d.states[q].out) {
		if d.edges[idx].target == p {
			removed = append(removed, d.removeEdgeTuple(idx))
		}
	}
	if removed == nil {
		removed = []Edge{}
	}
	return removed, true
}

// RemoveEdgesBetweenMatching removes the live edge from q to p whose
// expression equals expr (at most one, by determinism), returning the
// removed tuples, or (nil, false) if either endpoint is absent.
func (d *DTS) RemoveEdgesBetweenMatching(q, p StateID, expr Expression) ([]Edge, bool) {
	if !d.isLive(q) || !d.isLive(p) {
		return nil, false
	}
	idx, ok := d.states[q].out[expr]
	if !ok || d.edges[idx].target != p {
		return []Edge{}, true
	}
	return []Edge{d.removeEdgeTuple(idx)}, true
}

// Trim removes every state unreachable from the initial state, if
// pointed, returning the removed (id, color) pairs. Returns
// (nil, false) if the DTS is not pointed.
func (d *DTS) Trim() ([]RemovedState, bool) {
	init, ok := d.Initial()
	if !ok {
		return nil, false
	}
	removed := d.TrimFrom(init)
	return removed, true
}

// RemovedState pairs a removed id with the color it carried.
type RemovedState struct {
	ID    StateID
	Color Color
}

// TrimFrom removes every live state not reachable from q, returning
// the removed (id, color) pairs.
func (d *DTS) TrimFrom(q StateID) []RemovedState {
	reachable := d.reachableSet(q)
	var removed []RemovedState
	for _, id := range d.StateIndices() {
		if reachable.Contains(uint32(id)) {
			continue
		}
		color, _ := d.StateColor(id)
		d.RemoveState(id)
		removed = append(removed, RemovedState{ID: id, Color: color})
	}
	return removed
}

// reachableSet computes the states reachable from q using a
// sparse.Set for membership tracking.
func (d *DTS) reachableSet(q StateID) *sparse.Set {
	seen := sparse.New(uint32(len(d.states)))
	if !d.isLive(q) {
		return seen
	}
	stack := []StateID{q}
	seen.Insert(uint32(q))
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		edges, _ := d.EdgesFrom(cur)
		for _, e := range edges {
			if !seen.Contains(uint32(e.Target)) {
				seen.Insert(uint32(e.Target))
				stack = append(stack, e.Target)
			}
		}
	}
	return seen
}

// ReachableStateIndices returns the states reachable from q (q
// included), in ascending order.
func (d *DTS) ReachableStateIndices(q StateID) []StateID {
	seen := d.reachableSet(q)
	vals := seen.Sorted()
	out := make([]StateID, len(vals))
	for i, v := range vals {
		out[i] = StateID(v)
	}
	return out
}

// AllEdges returns every live edge in the DTS, sorted by (source,
// expression).
func (d *DTS) AllEdges() []Edge {
	out := make([]Edge, 0, len(d.edges))
	for i, e := range d.edges {
		if e.live {
			out = append(out, d.edgeAsEdge(i))
		}
	}
	sortEdgesBySourceExpr(out)
	return out
}

// Clone returns a deep copy of d, independent of further mutation.
func (d *DTS) Clone() *DTS {
	out := New()
	old2new := make(map[StateID]StateID, len(d.states))
	for _, id := range d.StateIndices() {
		color, _ := d.StateColor(id)
		old2new[id] = out.AddState(color)
	}
	for _, e := range d.AllEdges() {
		out.AddEdgeReplacing(old2new[e.Source], e.Expr, e.Color, old2new[e.Target])
	}
	if init, ok := d.Initial(); ok {
		out.SetInitial(old2new[init])
	}
	return out
}
