package dpa

import (
	"sort"

	"github.com/coregx/omegalearn/congruence"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/dts/product"
	"github.com/coregx/omegalearn/dts/quotient"
	"github.com/coregx/omegalearn/scc"
)

// PrefixPartition groups d's reachable states by language equivalence
// under sem: two states are in the same class iff pointing d at
// either one accepts exactly the same set of omega-words. States are
// considered in ascending id order, each joining the first existing
// class it is equivalent to or else starting a new one.
func (d *DPA) PrefixPartition(sem Semantics) quotient.Partition {
	ids := d.StateIndices()
	if len(ids) == 0 {
		return nil
	}
	init := ids[0]
	if i, ok := d.Initial(); ok {
		init = i
	}
	ids = d.ReachableStateIndices(init)

	partition := [][]dts.StateID{{init}}
	reps := []dts.StateID{init}

	for _, q := range ids {
		if q == init {
			continue
		}
		joined := false
		for i, p := range reps {
			if languageEquivalent(d.DTS, sem, p, q) {
				partition[i] = append(partition[i], q)
				joined = true
				break
			}
		}
		if !joined {
			partition = append(partition, []dts.StateID{q})
			reps = append(reps, q)
		}
	}

	return quotient.Partition(partition)
}

// PrefixCongruence builds the quotient of d under PrefixPartition(sem):
// the prefix congruence underlying the language d accepts.
func (d *DPA) PrefixCongruence(sem Semantics) *congruence.RightCongruence {
	partition := d.PrefixPartition(sem)
	quot, _ := quotient.Quotient(d.DTS, partition)
	return congruence.FromDTS(d.Alphabet, quot)
}

// IsInformativeRightCongruent reports whether every class of d's
// prefix partition under sem is a singleton: no two distinct states
// are language-equivalent, so d already is (isomorphic to) its own
// prefix congruence.
func (d *DPA) IsInformativeRightCongruent(sem Semantics) bool {
	for _, class := range d.PrefixPartition(sem) {
		if len(class) != 1 {
			return false
		}
	}
	return true
}

// languageEquivalent decides whether p and q, as initial states of t,
// accept the same omega-language under sem.
func languageEquivalent(t *dts.DTS, sem Semantics, p, q dts.StateID) bool {
	if p == q {
		return true
	}
	return crossLanguageEquivalent(t, p, t, q, sem)
}

// crossLanguageEquivalent is languageEquivalent generalized to two
// (possibly distinct) transition systems, used by NormalizedChecked
// to compare an automaton against its normalized form. Two sides are
// equivalent iff neither accepts a word the other rejects, checked by
// witnessNotSubsetOf in both directions.
func crossLanguageEquivalent(t *dts.DTS, p dts.StateID, u *dts.DTS, q dts.StateID, sem Semantics) bool {
	return !witnessNotSubsetOf(t, p, u, q, sem) && !witnessNotSubsetOf(u, q, t, p, sem)
}

// witnessNotSubsetOf reports whether some omega-word is accepted from
// p in t but rejected from q in u: for every accepted limit color i of
// t and rejected limit color j of u, it asks witnessColors whether a
// single word can realize limit i on the left and limit j on the
// right. The search reasons over least-recurring colors, which covers
// the min-limit semantics family this package's partitioning is used
// with (min-even parity and its Büchi restriction).
func witnessNotSubsetOf(t *dts.DTS, p dts.StateID, u *dts.DTS, q dts.StateID, sem Semantics) bool {
	for _, i := range edgeColorRange(t) {
		if !acceptsLimit(sem, i) {
			continue
		}
		for _, j := range edgeColorRange(u) {
			if acceptsLimit(sem, j) {
				continue
			}
			if witnessColors(t, p, i, u, q, j) {
				return true
			}
		}
	}
	return false
}

// witnessColors reports whether some omega-word has least recurring
// color k when run from p in t and least recurring color l when run
// from q in u. Both sides are restricted to edges of color at least
// k (resp. l); in a non-transient SCC of the restricted product, the
// lexicographically minimal interior color pair being exactly (k, l)
// exhibits a lasso realizing both limits at once.
func witnessColors(t *dts.DTS, p dts.StateID, k dts.Color, u *dts.DTS, q dts.StateID, l dts.Color) bool {
	left := restrictPointed(t, p, k)
	right := restrictPointed(u, q, l)
	prod := product.New(left, right)

	collected, ids := prod.Collect()
	idToIndex := make(map[dts.StateID]product.Index, len(ids))
	for idx, id := range ids {
		idToIndex[id] = idx
	}

	for _, comp := range scc.Decompose(collected) {
		if comp.IsTransient() {
			continue
		}
		first := true
		var min product.EdgeColorPair
		for _, e := range comp.InteriorEdges() {
			idx := idToIndex[e.Source]
			_, ec, ok := prod.Step(idx, e.Expr)
			if !ok {
				continue
			}
			if first || lessPair(ec, min) {
				min = ec
				first = false
			}
		}
		if !first && min.Left == k && min.Right == l {
			return true
		}
	}
	return false
}

func lessPair(a, b product.EdgeColorPair) bool {
	if a.Left != b.Left {
		return a.Left < b.Left
	}
	return a.Right < b.Right
}

// acceptsLimit reports sem's verdict on a run whose least (and only)
// recurring color is c.
func acceptsLimit(sem Semantics, c dts.Color) bool {
	return sem.evaluate(sem.aggregate([]dts.Color{c}))
}

// edgeColorRange returns the distinct colors on t's edges, ascending.
func edgeColorRange(t *dts.DTS) []dts.Color {
	seen := map[dts.Color]bool{}
	var out []dts.Color
	for _, e := range t.AllEdges() {
		if seen[e.Color] {
			continue
		}
		seen[e.Color] = true
		out = append(out, e.Color)
	}
	sort.Ints(out)
	return out
}

// restrictPointed copies t's states and the edges colored at least k,
// pointed at q. The copy translates q through the same old-to-new id
// map used for every other state rather than assuming the arena is
// contiguous (it need not be, once Trim has run).
func restrictPointed(t *dts.DTS, q dts.StateID, k dts.Color) *dts.DTS {
	out := dts.New()
	old2new := make(map[dts.StateID]dts.StateID, t.Size())
	for _, id := range t.StateIndices() {
		color, _ := t.StateColor(id)
		old2new[id] = out.AddState(color)
	}
	for _, e := range t.AllEdges() {
		if e.Color < k {
			continue
		}
		out.AddEdgeReplacing(old2new[e.Source], e.Expr, e.Color, old2new[e.Target])
	}
	out.SetInitial(old2new[q])
	return out
}
