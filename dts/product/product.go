// Package product computes the synchronous product of two dts.DTS
// values over a shared alphabet, the construction the conflict
// relation and the DPA language-equivalence test both build on.
package product

import (
	"github.com/coregx/omegalearn/dts"
)

// Index pairs a left-hand and right-hand state id reached
// simultaneously by the same finite word.
type Index struct {
	Left, Right dts.StateID
}

// Product is the synchronous product T x U: its states are pairs of
// states of T and U, determinism is inherited from both operands, and
// a transition exists on a iff both operands define one. EdgeColor
// pairs the colors of the two underlying edges.
type Product struct {
	t, u *dts.DTS
}

// New builds the (lazily-explored) product of t and u.
func New(t, u *dts.DTS) *Product {
	return &Product{t: t, u: u}
}

// EdgeColorPair is the color of a product edge: the pair of colors
// carried by the underlying left and right edges.
type EdgeColorPair struct {
	Left, Right dts.Color
}

// Initial returns the product's initial index, if both operands are
// pointed.
func (p *Product) Initial() (Index, bool) {
	li, lok := p.t.Initial()
	ri, rok := p.u.Initial()
	if !lok || !rok {
		return Index{}, false
	}
	return Index{Left: li, Right: ri}, true
}

// Step runs one symbol from idx, returning the reached index and
// whether both operands define a transition on a from idx.
func (p *Product) Step(idx Index, a dts.Expression) (Index, EdgeColorPair, bool) {
	lt, lok := p.t.HasEdge(idx.Left, a)
	rt, rok := p.u.HasEdge(idx.Right, a)
	if !lok || !rok {
		return Index{}, EdgeColorPair{}, false
	}
	lc, _ := edgeColor(p.t, idx.Left, a)
	rc, _ := edgeColor(p.u, idx.Right, a)
	return Index{Left: lt, Right: rt}, EdgeColorPair{Left: lc, Right: rc}, true
}

func edgeColor(t *dts.DTS, q dts.StateID, a dts.Expression) (dts.Color, bool) {
	edges, ok := t.EdgesFrom(q)
	if !ok {
		return 0, false
	}
	for _, e := range edges {
		if e.Expr == a {
			return e.Color, true
		}
	}
	return 0, false
}

// candidateSymbols enumerates the symbols that appear as outgoing
// edges from idx in both operands (the only symbols Step can succeed
// on), in ascending order inherited from EdgesFrom.
func (p *Product) candidateSymbols(idx Index) []dts.Expression {
	ledges, _ := p.t.EdgesFrom(idx.Left)
	redges, _ := p.u.EdgesFrom(idx.Right)
	rset := make(map[dts.Expression]bool, len(redges))
	for _, e := range redges {
		rset[e.Expr] = true
	}
	var out []dts.Expression
	for _, e := range ledges {
		if rset[e.Expr] {
			out = append(out, e.Expr)
		}
	}
	return out
}

// ReachableIndices returns every Index reachable from the product's
// initial index, in a deterministic order (BFS, states expanded in
// ascending-symbol order), or nil if the product is unpointed.
func (p *Product) ReachableIndices() []Index {
	init, ok := p.Initial()
	if !ok {
		return nil
	}
	return p.ReachableIndicesFrom(init)
}

// ReachableIndicesFrom returns every Index reachable from start,
// start included, in a deterministic BFS order.
func (p *Product) ReachableIndicesFrom(start Index) []Index {
	seen := map[Index]bool{start: true}
	order := []Index{start}
	queue := []Index{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, a := range p.candidateSymbols(cur) {
			next, _, ok := p.Step(cur, a)
			if !ok || seen[next] {
				continue
			}
			seen[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}

// Collect materializes the reachable portion of the product as its
// own dts.DTS, pointed at the product's initial index if present. The
// returned map translates a product Index to its state id in the new
// DTS, for callers that need to relate states back to the operands.
func (p *Product) Collect() (*dts.DTS, map[Index]dts.StateID) {
	out := dts.New()
	ids := make(map[Index]dts.StateID)

	reachable := p.ReachableIndices()
	for _, idx := range reachable {
		ids[idx] = out.AddState(dts.Void)
	}
	for _, idx := range reachable {
		for _, a := range p.candidateSymbols(idx) {
			next, ec, ok := p.Step(idx, a)
			if !ok {
				continue
			}
			target, known := ids[next]
			if !known {
				continue
			}
			out.AddEdge(ids[idx], a, colorKey(ec), target)
		}
	}
	if init, ok := p.Initial(); ok {
		if id, known := ids[init]; known {
			out.SetInitial(id)
		}
	}
	return out, ids
}

// colorKey folds an EdgeColorPair down to a single dts.Color slot for
// Collect's callers (conflict.IterationConsistencyConflicts and
// dpa's equivalence check) that only need
// the product's transition structure, not its per-side colors; ties
// are resolved by packing both sides into one integer assuming each
// side's color space is small and non-negative, which holds for every
// color domain used in this package (Void, parity priorities, state
// indices used as colors in prefix trees).
func colorKey(ec EdgeColorPair) dts.Color {
	return ec.Left*31 + ec.Right
}
