// Package dpa implements deterministic parity (and Büchi) automata:
// a dts.DTS whose edge colors are integer priorities, the min-even
// acceptance semantics and its named variants, plus the
// Carton-Maceiras-style normalization and prefix-congruence
// procedures.
package dpa

import (
	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/word"
)

// DPA is a deterministic transition system whose edge colors are
// integer priorities, together with the alphabet it runs over.
type DPA struct {
	*dts.DTS
	Alphabet alphabet.Alphabet
}

// New wraps t as a DPA over a. t must already be pointed.
func New(a alphabet.Alphabet, t *dts.DTS) *DPA {
	return &DPA{DTS: t, Alphabet: a}
}

// LassoCycleColors runs w from the DPA's initial state and returns the
// edge colors of the cycle portion of its lasso: the spoke is run
// once to reach q_u, then the cycle is run repeatedly, checking after
// each full copy whether the reached state has been seen before at a
// copy boundary (it must recur, since the state space is finite); the
// colors of the copies between the first and second visit to that
// state are the cycle's edge colors. Returns
// (nil, false) if any step's transition is undefined.
func LassoCycleColors(t *dts.DTS, w word.ReducedOmegaWord) ([]dts.Color, bool) {
	cur, ok := t.ReachedStateIndex(w.Spoke)
	if !ok {
		return nil, false
	}

	seenAt := map[dts.StateID]int{cur: 0}
	var all []dts.Color
	copyNum := 0
	for {
		copyNum++
		for _, sym := range w.Cycle {
			edges, _ := t.EdgesFrom(cur)
			found := false
			for _, e := range edges {
				if e.Expr == sym {
					all = append(all, e.Color)
					cur = e.Target
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		}
		if startCopy, seen := seenAt[cur]; seen {
			cycleLen := (copyNum - startCopy) * len(w.Cycle)
			return all[len(all)-cycleLen:], true
		}
		seenAt[cur] = copyNum
	}
}

// Semantics pairs an observer (aggregate over the lasso's cycle
// colors) with an evaluator (aggregate -> accept/reject). The five
// tagged variants below suffice for the learning pipeline; further
// semantics slot in without touching the run machinery.
type Semantics struct {
	Name      string
	aggregate func([]dts.Color) int
	evaluate  func(int) bool
}

// Accepts runs w against t under s's semantics.
func (s Semantics) Accepts(t *dts.DTS, w word.ReducedOmegaWord) bool {
	colors, ok := LassoCycleColors(t, w)
	if !ok {
		panic("dpa: missing successor on a run; the automaton must be complete for acceptance queries")
	}
	return s.evaluate(s.aggregate(colors))
}

func minOf(colors []dts.Color) int {
	m := colors[0]
	for _, c := range colors[1:] {
		if c < m {
			m = c
		}
	}
	return m
}

func maxOf(colors []dts.Color) int {
	m := colors[0]
	for _, c := range colors[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

func buchiAggregate(colors []dts.Color) int {
	for _, c := range colors {
		if c == 0 {
			return 1
		}
	}
	return 0
}

// MinEven accepts iff the least color appearing infinitely often
// (the min color on the lasso cycle) is even.
var MinEven = Semantics{Name: "min-even", aggregate: minOf, evaluate: func(x int) bool { return x%2 == 0 }}

// MaxEven accepts iff the greatest recurring color is even.
var MaxEven = Semantics{Name: "max-even", aggregate: maxOf, evaluate: func(x int) bool { return x%2 == 0 }}

// MinOdd accepts iff the least recurring color is odd.
var MinOdd = Semantics{Name: "min-odd", aggregate: minOf, evaluate: func(x int) bool { return x%2 != 0 }}

// MaxOdd accepts iff the greatest recurring color is odd.
var MaxOdd = Semantics{Name: "max-odd", aggregate: maxOf, evaluate: func(x int) bool { return x%2 != 0 }}

// Buchi accepts iff some accepting edge occurs on the lasso cycle.
// Accepting edges carry priority 0, non-accepting edges priority 1,
// making the condition exactly MinEven restricted to two priorities;
// that alignment is what lets the normalization and prefix-congruence
// machinery, which reason in min-even terms, apply to Büchi automata
// unchanged.
var Buchi = Semantics{Name: "buchi", aggregate: buchiAggregate, evaluate: func(x int) bool { return x == 1 }}

// Accepts runs w against d under s.
func (d *DPA) Accepts(s Semantics, w word.ReducedOmegaWord) bool {
	return s.Accepts(d.DTS, w)
}

// SemanticsByName looks up one of the five tagged Semantics variants
// by its Name field (e.g. "min-even", "buchi"), for callers like the
// hoa package that recover a semantics tag from a parsed acc-name
// header rather than holding the Semantics value directly.
func SemanticsByName(name string) (Semantics, bool) {
	for _, s := range []Semantics{MinEven, MaxEven, MinOdd, MaxOdd, Buchi} {
		if s.Name == name {
			return s, true
		}
	}
	return Semantics{}, false
}

// LastEdgeColor runs the finite word w from the initial state and
// returns the color of the final edge taken, or (0, false) if w is
// empty or any step is undefined. Convenience for tests that probe a
// DPA's recoloring.
func (d *DPA) LastEdgeColor(w word.FiniteWord) (dts.Color, bool) {
	if len(w) == 0 {
		return 0, false
	}
	cur, ok := d.Initial()
	if !ok {
		return 0, false
	}
	var last dts.Color
	for _, sym := range w {
		edges, _ := d.EdgesFrom(cur)
		found := false
		for _, e := range edges {
			if e.Expr == sym {
				last = e.Color
				cur = e.Target
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return last, true
}
