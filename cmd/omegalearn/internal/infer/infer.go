// Package infer wires the core packages together: build a Sample,
// derive a ConflictRelation, sprout a RightCongruence, then refine
// that congruence into a colored automaton and normalize it.
//
// The congruence sprout returns carries no edge colors of its own
// (every edge is added with dts.Void); turning it into an accepting
// automaton requires deciding, for every edge, which lasso-cycle
// color best explains the sample. This driver walks every sample word
// around its lasso through the congruence and lets its classification
// (positive/negative) vote on the color of every edge the lasso
// crosses, then takes the majority color per edge. Both DBA and DPA
// tasks use this same two-color (0 = even/accept, 1 = odd/reject)
// scheme, since a Büchi condition is exactly a min-even parity
// condition restricted to two priorities.
package infer

import (
	"github.com/coregx/omegalearn/congruence"
	"github.com/coregx/omegalearn/dpa"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/sample"
	"github.com/coregx/omegalearn/sprout"
	"github.com/coregx/omegalearn/word"
)

// Result is the outcome of a successful Learn call: the normalized
// automaton plus the semantics it should be scored/emitted under.
type Result struct {
	Automaton *dpa.DPA
	Semantics dpa.Semantics
	Size      int
}

// Learn builds the leading right congruence for s via
// sprout.InferPrefixCongruence, colors its edges by majority
// lasso-vote, and returns the normalized automaton.
// sem selects which two-color evaluator the caller intends to score
// against (dpa.Buchi for "dba" tasks, dpa.MinEven for "dpa" tasks);
// both share the same 0/1 coloring scheme so either can be passed.
func Learn(s *sample.Sample, sem dpa.Semantics, cfg sprout.Config) (Result, error) {
	cong, err := sprout.InferPrefixCongruence(s, cfg)
	if err != nil {
		return partialResult(err, sem), err
	}

	colorEdges(s, cong)
	learned := dpa.New(s.Alphabet, cong.DTS)
	normalized := learned.Normalized()
	return Result{Automaton: normalized, Semantics: sem, Size: normalized.Size()}, nil
}

// partialResult wraps whatever partial congruence a sprout.ThresholdError
// or sprout.TimeoutError carried, uncolored and unnormalized, so the
// driver can still report its size on abort (result.csv's
// abort_automaton_size column).
func partialResult(err error, sem dpa.Semantics) Result {
	var cong *congruence.RightCongruence
	switch e := err.(type) {
	case *sprout.ThresholdError:
		cong = e.Cong
	case *sprout.TimeoutError:
		cong = e.Cong
	}
	if cong == nil {
		return Result{Semantics: sem}
	}
	return Result{Automaton: dpa.New(cong.Alphabet(), cong.DTS), Semantics: sem, Size: cong.Size()}
}

// PartialSize extracts the partial congruence size carried by a
// sprout.ThresholdError/TimeoutError, for the caller's abort reporting,
// without this package needing to know about taskio's CSV shape.
func PartialSize(err error) int {
	switch e := err.(type) {
	case *sprout.ThresholdError:
		if e.Cong != nil {
			return e.Cong.Size()
		}
	case *sprout.TimeoutError:
		if e.Cong != nil {
			return e.Cong.Size()
		}
	}
	return 0
}

type edgeKey struct {
	state dts.StateID
	sym   dts.Expression
}

type vote struct{ accept, reject int }

// colorEdges walks every sample word around its lasso through cong,
// tallying a vote for each edge it crosses (toward the word's
// classification), then recolors every voted edge to 0 (even/accept)
// if accept votes are at least reject votes, else 1 (odd/reject).
// Edges no sample word ever crosses keep their default color (0, via
// dts.Void), matching the convention that an automaton's untested
// transitions default to whichever parity is structurally cheapest.
func colorEdges(s *sample.Sample, cong *congruence.RightCongruence) {
	votes := map[edgeKey]*vote{}
	record := func(w word.ReducedOmegaWord, accept bool) {
		cur, ok := cong.ReachedClass(dts.FiniteWord(w.Spoke))
		if !ok {
			return
		}
		// Walking (|Q|+1) full copies of the cycle guarantees the walk
		// revisits a state at a copy boundary, i.e. traverses the
		// lasso's actual cycle at least once, regardless of where in
		// the congruence the spoke lands.
		steps := (cong.Size() + 1) * len(w.Cycle)
		for i := 0; i < steps; i++ {
			sym := w.Cycle[i%len(w.Cycle)]
			edges, _ := cong.EdgesFrom(cur)
			found := false
			for _, e := range edges {
				if e.Expr == sym {
					k := edgeKey{state: cur, sym: sym}
					v := votes[k]
					if v == nil {
						v = &vote{}
						votes[k] = v
					}
					if accept {
						v.accept++
					} else {
						v.reject++
					}
					cur = e.Target
					found = true
					break
				}
			}
			if !found {
				return
			}
		}
	}

	for _, w := range s.PositiveWords() {
		record(w, true)
	}
	for _, w := range s.NegativeWords() {
		record(w, false)
	}

	for k, v := range votes {
		color := 1
		if v.accept >= v.reject {
			color = 0
		}
		cong.AddEdgeReplacing(k.state, k.sym, color, mustTarget(cong, k))
	}
}

// mustTarget looks up the current target of edge k, which colorEdges
// is about to recolor in place; it must exist, since k was only
// recorded while walking an edge EdgesFrom actually returned.
func mustTarget(cong *congruence.RightCongruence, k edgeKey) dts.StateID {
	target, ok := cong.HasEdge(k.state, k.sym)
	if !ok {
		panic("infer: voted edge vanished before recoloring")
	}
	return target
}
