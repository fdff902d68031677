// Package sprout implements the omega-sprout algorithm: BFS synthesis
// of a right congruence consistent with a conflict relation (and any
// additional checks). A FIFO queue of missing transitions drives the
// search; candidate target classes are tried in creation order and
// symbols seeded in alphabet order, so two runs on identical inputs
// produce identical congruences.
package sprout

import (
	"time"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/conflict"
	"github.com/coregx/omegalearn/congruence"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/sample"
)

// Config controls sprout's behavior. The zero value is a usable
// default.
type Config struct {
	// AllowTransitionsIntoEpsilon, when false (the default), forbids
	// sprout from ever routing a transition back into the initial
	// (epsilon) class.
	AllowTransitionsIntoEpsilon bool
	// Timeout bounds sprout's wall-clock budget. Zero means no
	// timeout.
	Timeout time.Duration
}

// DefaultConfig returns the zero-value-safe default: no epsilon
// transitions allowed, no timeout.
func DefaultConfig() Config {
	return Config{}
}

// ThresholdError reports that the candidate space was exhausted:
// Cong holds the partial congruence built so far and Threshold the
// limit that was exceeded.
type ThresholdError struct {
	Cong      *congruence.RightCongruence
	Threshold int
}

func (e *ThresholdError) Error() string {
	return "sprout: exceeded threshold on number of classes"
}

// TimeoutError reports that the wall-clock budget was exceeded before
// sprout converged; Cong holds the partial congruence built so far.
type TimeoutError struct {
	Cong *congruence.RightCongruence
}

func (e *TimeoutError) Error() string {
	return "sprout: exceeded timeout"
}

type missingTransition struct {
	state dts.StateID
	sym   alphabet.Symbol
}

// Sprout runs the algorithm on primary (whose Threshold() governs the
// size bound) and any extra consistency checks, returning a right
// congruence consistent with all of them, or a ThresholdError /
// TimeoutError carrying the partial result.
func Sprout(primary conflict.ConsistencyCheck, extra []conflict.ConsistencyCheck, cfg Config) (*congruence.RightCongruence, error) {
	a := primary.Alphabet()
	cong := congruence.New(a)
	initial, _ := cong.Initial()
	threshold := primary.Threshold()

	universe := a.Universe()
	queue := make([]missingTransition, 0, len(universe))
	for _, sym := range universe {
		queue = append(queue, missingTransition{state: initial, sym: sym})
	}

	start := time.Now()

outer:
	for len(queue) > 0 {
		if cfg.Timeout > 0 && time.Since(start) >= cfg.Timeout {
			return nil, &TimeoutError{Cong: cong}
		}

		mt := queue[0]
		queue = queue[1:]

		for _, target := range cong.SortedClasses() {
			if !cfg.AllowTransitionsIntoEpsilon && target == initial {
				continue
			}

			if _, ok := cong.AddEdge(mt.state, mt.sym, dts.Void, target); !ok {
				panic("sprout: candidate probing must never find an existing edge")
			}

			if consistentWith(primary, extra, cong) {
				continue outer
			}

			cong.RemoveEdgesBetweenMatching(mt.state, target, mt.sym)
		}

		rep, _ := cong.MinimalRepresentative(mt.state)
		newRep := append(append(dts.FiniteWord(nil), rep...), mt.sym)
		newState := cong.AddClass(newRep)
		cong.AddEdge(mt.state, mt.sym, dts.Void, newState)
		for _, sym := range universe {
			queue = append(queue, missingTransition{state: newState, sym: sym})
		}

		if cong.Size() > threshold {
			return nil, &ThresholdError{Cong: cong, Threshold: threshold}
		}
	}

	return cong, nil
}

// InferPrefixCongruence computes the leading right congruence of s:
// Sprout over the prefix-consistency conflict relation, with
// transitions into the initial class allowed. The leading congruence
// legitimately routes symbols back to epsilon (a one-class congruence
// is the correct answer whenever the sample's prefixes never
// conflict); the stricter no-epsilon default exists for the per-class
// congruences of the iteration-consistency stage, where epsilon plays
// the distinguished role of the loop anchor.
func InferPrefixCongruence(s *sample.Sample, cfg Config) (*congruence.RightCongruence, error) {
	cfg.AllowTransitionsIntoEpsilon = true
	return Sprout(conflict.PrefixConsistencyConflicts(s), nil, cfg)
}

func consistentWith(primary conflict.ConsistencyCheck, extra []conflict.ConsistencyCheck, cong *congruence.RightCongruence) bool {
	if !primary.Consistent(cong) {
		return false
	}
	for _, c := range extra {
		if !c.Consistent(cong) {
			return false
		}
	}
	return true
}
