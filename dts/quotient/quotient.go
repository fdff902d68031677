// Package quotient collapses a dts.DTS under a state partition,
// producing one state per class, built directly atop dts's arena
// primitives the same way dts/product is.
package quotient

import "github.com/coregx/omegalearn/dts"

// Partition is a set of disjoint, non-empty classes covering (a
// subset of) a DTS's live states. Class order is significant: it
// determines the new state ids in the quotient, smallest-first by
// convention of the caller (e.g. dpa.PrefixPartition builds classes
// in discovery order).
type Partition [][]dts.StateID

// IndexOf returns the class index containing q, or -1 if q appears in
// no class.
func (p Partition) IndexOf(q dts.StateID) int {
	for i, class := range p {
		for _, s := range class {
			if s == q {
				return i
			}
		}
	}
	return -1
}

// Quotient collapses t under partition: each class becomes a single
// state in the result, colored with the color of its class's first
// (smallest-id) member. An edge q --a--> p in t becomes, in the
// quotient, class(q) --a--> class(p); since t is deterministic and
// every state of a class agrees with every other reachable via the
// same symbol into the same class (the caller is responsible for that
// invariant -- see dpa.PrefixPartition), the quotient is itself
// deterministic. Returns the new DTS and a map from old state id to
// new state id.
func Quotient(t *dts.DTS, partition Partition) (*dts.DTS, map[dts.StateID]dts.StateID) {
	out := dts.New()
	classOf := make(map[dts.StateID]dts.StateID, len(partition))
	newState := make([]dts.StateID, len(partition))

	for i, class := range partition {
		rep := class[0]
		for _, s := range class {
			if s < rep {
				rep = s
			}
		}
		color, _ := t.StateColor(rep)
		newState[i] = out.AddState(color)
		for _, s := range class {
			classOf[s] = newState[i]
		}
	}

	for i, class := range partition {
		seen := make(map[dts.Expression]bool)
		for _, s := range class {
			edges, _ := t.EdgesFrom(s)
			for _, e := range edges {
				if seen[e.Expr] {
					continue
				}
				target, ok := classOf[e.Target]
				if !ok {
					continue
				}
				out.AddEdge(newState[i], e.Expr, e.Color, target)
				seen[e.Expr] = true
			}
		}
	}

	if init, ok := t.Initial(); ok {
		if id, known := classOf[init]; known {
			out.SetInitial(id)
		}
	}
	return out, classOf
}
