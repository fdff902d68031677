// Package conflict implements conflict relations: certificates of
// inconsistency used by sprout to reject candidate right congruences.
// A conflict relation pairs two acceptors with a set of state pairs
// that no consistent congruence may reach through a single class.
package conflict

import (
	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/congruence"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/dts/product"
	"github.com/coregx/omegalearn/sample"
	"github.com/coregx/omegalearn/scc"
	"github.com/coregx/omegalearn/word"
)

// ConsistencyCheck is the capability sprout consumes: something that
// can judge a candidate right congruence consistent or not, report a
// threshold on its size, and name its alphabet. Sprout takes a
// heterogeneous list of these, so degenerate always-true checks are
// legal as long as they are never the sole threshold source.
type ConsistencyCheck interface {
	Consistent(cong *congruence.RightCongruence) bool
	Threshold() int
	Alphabet() alphabet.Alphabet
}

// pair is a (left, right) conflict pair, keyed for set membership.
type pair struct {
	L, R dts.StateID
}

// ConflictRelation is a triple (L, R, X): two right-congruence-shaped
// DTSs and a set of conflict pairs. Any candidate congruence that
// produces a reachable pair (c, l) and (c, r) with (l, r) in X is
// inconsistent.
type ConflictRelation struct {
	a    alphabet.Alphabet
	L, R *dts.DTS
	X    map[pair]struct{}
}

// Alphabet implements ConsistencyCheck.
func (c *ConflictRelation) Alphabet() alphabet.Alphabet { return c.a }

// Threshold returns twice the product-state count of L and R, an
// upper bound on the classes a consistent congruence may need.
func (c *ConflictRelation) Threshold() int {
	return 2 * c.L.Size() * c.R.Size()
}

// Consistent evaluates cong by iterating the reachable indices of
// cong x L and cong x R; a conflict exists iff some congruence class c
// reaches (c, l) in cong x L and (c, r) in cong x R with (l, r) in X.
func (c *ConflictRelation) Consistent(cong *congruence.RightCongruence) bool {
	left := product.New(cong.DTS, c.L)
	right := product.New(cong.DTS, c.R)

	leftReach := left.ReachableIndices()
	rightReach := right.ReachableIndices()

	rightByCong := map[dts.StateID][]dts.StateID{}
	for _, idx := range rightReach {
		rightByCong[idx.Left] = append(rightByCong[idx.Left], idx.Right)
	}

	for _, lidx := range leftReach {
		for _, r := range rightByCong[lidx.Left] {
			if _, conflict := c.X[pair{L: lidx.Right, R: r}]; conflict {
				return false
			}
		}
	}
	return true
}

// PrefixConsistencyConflicts builds the conflict relation for the
// leading congruence: L is the lasso-shaped prefix acceptor of the
// positive omega-words, R of the negative ones. Inf is the set of
// L x R product states lying in a non-transient SCC (states through
// which an infinite run can pass); the conflict set is every pair
// from which some state in Inf is reachable.
//
// The pair space deliberately ranges over the full cartesian product
// of L's and R's states, not just the pairs jointly reachable by a
// single word: Consistent pairs up states reached through the same
// congruence class by possibly different words, so a conflict pair
// must be recorded even when no one word reaches both of its sides.
func PrefixConsistencyConflicts(s *sample.Sample) *ConflictRelation {
	left, _ := sample.PrefixTreeFromOmegaWords(s.Alphabet, s.PositiveWords())
	right, _ := sample.PrefixTreeFromOmegaWords(s.Alphabet, s.NegativeWords())

	full, ids := fullProduct(left, right)

	components := scc.Decompose(full)
	inf := map[dts.StateID]bool{}
	for _, comp := range components {
		if comp.IsTransient() {
			continue
		}
		for _, st := range comp.States() {
			inf[st] = true
		}
	}

	conflicts := map[pair]struct{}{}
	for p, id := range ids {
		for _, reach := range full.ReachableStateIndices(id) {
			if inf[reach] {
				conflicts[p] = struct{}{}
				break
			}
		}
	}

	return &ConflictRelation{a: s.Alphabet, L: left, R: right, X: conflicts}
}

// fullProduct materializes the synchronous product of left and right
// over their complete cartesian state space (every pair is a state,
// whether or not any single word reaches it), with an edge on a
// symbol exactly when both operands define one.
func fullProduct(left, right *dts.DTS) (*dts.DTS, map[pair]dts.StateID) {
	out := dts.New()
	ids := map[pair]dts.StateID{}
	lids := left.StateIndices()
	rids := right.StateIndices()
	for _, l := range lids {
		for _, r := range rids {
			ids[pair{L: l, R: r}] = out.AddState(dts.Void)
		}
	}
	for _, l := range lids {
		ledges, _ := left.EdgesFrom(l)
		for _, r := range rids {
			for _, le := range ledges {
				rt, ok := right.HasEdge(r, le.Expr)
				if !ok {
					continue
				}
				out.AddEdge(ids[pair{L: l, R: r}], le.Expr, dts.Void, ids[pair{L: le.Target, R: rt}])
			}
		}
	}
	return out, ids
}

// IterationConsistencyConflicts builds the conflict relation for a
// single class of the leading congruence cong, given the full sample
// s and the reached class idx. S is the sub-sample of s restricted to
// idx (per sample.Sample.Split); P is its periodic projection. L is
// the lasso-shaped prefix acceptor of P's positive words, its states
// marked accepting by omega-power classification, intersected with
// idx's looping-words DFA; R likewise for the negative side.
// Conflicts seed from the cartesian product of L's and R's accepting
// states and close backward over matching-expression predecessor
// pairs.
func IterationConsistencyConflicts(s *sample.Sample, cong *congruence.RightCongruence, idx dts.StateID) *ConflictRelation {
	split := s.Split(cong)
	sub, ok := split[idx]
	if !ok {
		sub = sample.New(s.Alphabet)
	}
	periodic := sub.ToPeriodicSample()
	looping := cong.LoopingWords(idx)

	leftTree, leftAccess := sample.PrefixTreeFromOmegaWords(s.Alphabet, periodic.PositiveWords())
	markOmegaPowerStates(leftTree, leftAccess, periodic, true)
	rightTree, rightAccess := sample.PrefixTreeFromOmegaWords(s.Alphabet, periodic.NegativeWords())
	markOmegaPowerStates(rightTree, rightAccess, periodic, false)

	left, leftAccepting := intersectWithLooping(leftTree, looping)
	right, rightAccepting := intersectWithLooping(rightTree, looping)

	conflicts := map[pair]struct{}{}
	queue := make([]pair, 0, len(leftAccepting)*len(rightAccepting))
	for _, l := range leftAccepting {
		for _, r := range rightAccepting {
			queue = append(queue, pair{L: l, R: r})
		}
	}

	leftPred := map[dts.StateID][]dts.Edge{}
	rightPred := map[dts.StateID][]dts.Edge{}
	predOf := func(t *dts.DTS, cache map[dts.StateID][]dts.Edge, q dts.StateID) []dts.Edge {
		if v, ok := cache[q]; ok {
			return v
		}
		v, _ := t.Predecessors(q)
		cache[q] = v
		return v
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if _, seen := conflicts[p]; seen {
			continue
		}
		conflicts[p] = struct{}{}

		lpreds := predOf(left, leftPred, p.L)
		rpreds := predOf(right, rightPred, p.R)
		for _, le := range lpreds {
			for _, re := range rpreds {
				if le.Expr == re.Expr {
					queue = append(queue, pair{L: le.Source, R: re.Source})
				}
			}
		}
	}

	return &ConflictRelation{a: s.Alphabet, L: left, R: right, X: conflicts}
}

// markOmegaPowerStates colors a prefix acceptor's states Accept when
// the omega-power of their access word carries the wanted
// classification in the periodic sample: a state reached by u stands
// for the periodic word u^w, canonicalized the same way
// ToPeriodicSample canonicalizes its cycles (minimal period, then
// lex-least rotation) so the two lookups agree. The empty access word
// has no omega-power and is always left unmarked.
func markOmegaPowerStates(t *dts.DTS, access map[dts.StateID]word.FiniteWord, periodic *sample.Sample, positive bool) {
	for id, u := range access {
		if len(u) == 0 {
			continue
		}
		p := word.Periodic(u)
		canon := word.Periodic(word.LeastRotation(p.Cycle))
		accept, known := periodic.Classify(canon)
		if known && accept == positive {
			t.SetStateColor(id, congruence.Accept)
		}
	}
}

// intersectWithLooping collects the product of tree (a prefix tree
// acceptor) and looping (a DFA pointed at a congruence class), and
// returns the product DTS together with the product states where
// both sides are accepting.
func intersectWithLooping(tree, looping *dts.DTS) (*dts.DTS, []dts.StateID) {
	prod := product.New(tree, looping)
	collected, ids := prod.Collect()

	var accepting []dts.StateID
	for idx, id := range ids {
		lc, _ := tree.StateColor(idx.Left)
		rc, _ := looping.StateColor(idx.Right)
		if lc == congruence.Accept && rc == congruence.Accept {
			accepting = append(accepting, id)
		}
	}
	return collected, accepting
}

// Trivial is the always-consistent check, used where sprout needs a
// consistency check but none is meaningful.
type Trivial struct {
	A alphabet.Alphabet
}

func (Trivial) Consistent(*congruence.RightCongruence) bool { return true }
func (Trivial) Threshold() int                              { return 0 }
func (t Trivial) Alphabet() alphabet.Alphabet                { return t.A }

// SeparatesIdempotents is a deliberately degenerate check: its
// Consistent always returns true and its Threshold panics whenever it
// is called (sprout never calls it -- the primary conflict relation
// always supplies Threshold).
type SeparatesIdempotents struct {
	A alphabet.Alphabet
}

func (SeparatesIdempotents) Consistent(*congruence.RightCongruence) bool { return true }

func (SeparatesIdempotents) Threshold() int {
	panic("conflict: SeparatesIdempotents.Threshold must never be used as the sole threshold source")
}

func (s SeparatesIdempotents) Alphabet() alphabet.Alphabet { return s.A }
