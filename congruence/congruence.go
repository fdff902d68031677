// Package congruence wraps a dts.DTS as a RightCongruence: a
// deterministic transition system whose states are equivalence
// classes, each carrying a canonical minimal representative (the
// shortest, then lex-least finite word reaching it).
package congruence

import (
	"sort"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/dts"
)

// RightCongruence is a pointed DTS maintaining, for every class, its
// minimal representative word.
type RightCongruence struct {
	*dts.DTS
	alphabet alphabet.Alphabet
	reps     map[dts.StateID]dts.FiniteWord
}

// New creates a RightCongruence with a single initial class (the
// empty word's class, epsilon), colored Void.
func New(a alphabet.Alphabet) *RightCongruence {
	d := dts.NewPointed(dts.Void)
	init, _ := d.Initial()
	return &RightCongruence{
		DTS:      d,
		alphabet: a,
		reps:     map[dts.StateID]dts.FiniteWord{init: {}},
	}
}

// Alphabet returns the alphabet this congruence is defined over.
func (r *RightCongruence) Alphabet() alphabet.Alphabet { return r.alphabet }

// AddClass creates a new class reached by representative rep (the
// word that first discovered it) and records its minimal
// representative.
func (r *RightCongruence) AddClass(rep dts.FiniteWord) dts.StateID {
	id := r.DTS.AddState(dts.Void)
	r.reps[id] = append(dts.FiniteWord(nil), rep...)
	return id
}

// MinimalRepresentative returns the minimal representative word of
// class q, and true, or (nil, false) if q is not a known class.
func (r *RightCongruence) MinimalRepresentative(q dts.StateID) (dts.FiniteWord, bool) {
	w, ok := r.reps[q]
	return w, ok
}

// ReachedClass returns the class reached by running w from the
// initial class, or (InvalidState, false) if undefined.
func (r *RightCongruence) ReachedClass(w dts.FiniteWord) (dts.StateID, bool) {
	return r.DTS.ReachedStateIndex(w)
}

// Congruent reports whether u and w reach the same class.
func (r *RightCongruence) Congruent(u, w dts.FiniteWord) bool {
	a, aok := r.ReachedClass(u)
	b, bok := r.ReachedClass(w)
	return aok && bok && a == b
}

// Accept and Reject are the state-color convention every acceptor DTS
// built by this module uses: a state colored Accept marks a word that
// reached it as accepted, Reject marks it as rejected. sample.PrefixTree
// and LoopingWords both follow this convention so their product (via
// dts/product) can test acceptance by comparing colors.
const (
	Reject dts.Color = 0
	Accept dts.Color = 1
)

// LoopingWords returns the DFA of finite words that, read from class
// q, lead back to q: a clone of the full congruence's transition
// structure, pointed at q, with q itself colored Accept and every
// other state colored Reject. Intersecting a periodic-cycle prefix
// acceptor with this DFA restricts it to cycles that actually loop
// back to q in the leading congruence.
func (r *RightCongruence) LoopingWords(q dts.StateID) *dts.DTS {
	out := r.DTS.Clone()
	for _, id := range out.StateIndices() {
		if id == q {
			out.SetStateColor(id, Accept)
		} else {
			out.SetStateColor(id, Reject)
		}
	}
	out.SetInitial(q)
	return out
}

// FromDTS wraps an already-built pointed deterministic transition
// system as a RightCongruence, computing each class's minimal
// representative by BFS from the initial state (ties broken by the
// ascending edge order EdgesFrom already guarantees). Used by
// dpa.PrefixCongruence, whose classes come from a dts/quotient
// collapse rather than from sprout's incremental discovery.
func FromDTS(a alphabet.Alphabet, d *dts.DTS) *RightCongruence {
	reps := map[dts.StateID]dts.FiniteWord{}
	if init, ok := d.Initial(); ok {
		reps[init] = dts.FiniteWord{}
		queue := []dts.StateID{init}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			edges, _ := d.EdgesFrom(cur)
			for _, e := range edges {
				if _, seen := reps[e.Target]; seen {
					continue
				}
				reps[e.Target] = append(append(dts.FiniteWord(nil), reps[cur]...), e.Expr)
				queue = append(queue, e.Target)
			}
		}
	}
	return &RightCongruence{DTS: d, alphabet: a, reps: reps}
}

// SortedClasses returns the live class ids in ascending order.
func (r *RightCongruence) SortedClasses() []dts.StateID {
	ids := r.DTS.StateIndices()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
