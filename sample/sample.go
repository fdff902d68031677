// Package sample implements the passive learning input: finite sets
// of positive/negative ultimately periodic omega-words, their
// periodic projection, and prefix-acceptor construction.
package sample

import (
	"errors"
	"sort"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/congruence"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/word"
)

// ErrOverlap is returned when a word is classified both positive and
// negative.
var ErrOverlap = errors.New("sample: word classified both positive and negative")

// Sample is a finite sample over Alphabet: two disjoint sets of
// canonically-reduced omega-words, classified positive or negative.
type Sample struct {
	Alphabet alphabet.Alphabet
	Pos      map[string]word.ReducedOmegaWord
	Neg      map[string]word.ReducedOmegaWord
}

// New creates an empty sample over a.
func New(a alphabet.Alphabet) *Sample {
	return &Sample{
		Alphabet: a,
		Pos:      map[string]word.ReducedOmegaWord{},
		Neg:      map[string]word.ReducedOmegaWord{},
	}
}

// Add classifies w as positive (accept=true) or negative (accept=false).
// Returns ErrOverlap if w was already classified the other way.
func (s *Sample) Add(w word.ReducedOmegaWord, accept bool) error {
	k := w.Key()
	if accept {
		if _, bad := s.Neg[k]; bad {
			return ErrOverlap
		}
		s.Pos[k] = w
	} else {
		if _, bad := s.Pos[k]; bad {
			return ErrOverlap
		}
		s.Neg[k] = w
	}
	return nil
}

// PositiveWords returns the positive words ordered by spoke (shorter
// first, then lexicographic), and among equal spokes by cycle in the
// same way, so every consumer iterates them in a reproducible order.
func (s *Sample) PositiveWords() []word.ReducedOmegaWord {
	return values(s.Pos)
}

// NegativeWords returns the negative words in the same deterministic
// order as PositiveWords.
func (s *Sample) NegativeWords() []word.ReducedOmegaWord {
	return values(s.Neg)
}

func values(m map[string]word.ReducedOmegaWord) []word.ReducedOmegaWord {
	out := make([]word.ReducedOmegaWord, 0, len(m))
	for _, w := range m {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Spoke.Equal(b.Spoke) {
			return a.Spoke.Less(b.Spoke)
		}
		return a.Cycle.Less(b.Cycle)
	})
	return out
}

// MaxWordLen returns the longest Spoke+Cycle length among all words
// in the sample; twice this value bounds the classes a finite sample
// can force.
func (s *Sample) MaxWordLen() int {
	max := 0
	for _, w := range s.Pos {
		if n := len(w.Spoke) + len(w.Cycle); n > max {
			max = n
		}
	}
	for _, w := range s.Neg {
		if n := len(w.Spoke) + len(w.Cycle); n > max {
			max = n
		}
	}
	return max
}

// BasePoint returns the finite word a prefix tree stores for an
// omega-word: its spoke followed by one copy of its cycle.
func BasePoint(w word.ReducedOmegaWord) word.FiniteWord {
	return w.Spoke.Concat(w.Cycle)
}

// Classify reports whether w (by canonical form) is classified
// positive, negative, or unclassified, as (accept, known).
func (s *Sample) Classify(w word.ReducedOmegaWord) (accept, known bool) {
	k := w.Key()
	if _, ok := s.Pos[k]; ok {
		return true, true
	}
	if _, ok := s.Neg[k]; ok {
		return false, true
	}
	return false, false
}

// ToPeriodicSample projects every word in s to its purely periodic
// form (empty spoke, lex-canonical cycle), keeping the same
// positive/negative classification.
func (s *Sample) ToPeriodicSample() *Sample {
	out := New(s.Alphabet)
	for _, w := range s.Pos {
		out.Add(word.Periodic(word.LeastRotation(w.Cycle)), true)
	}
	for _, w := range s.Neg {
		out.Add(word.Periodic(word.LeastRotation(w.Cycle)), false)
	}
	return out
}

// PrefixTree constructs a deterministic tree-shaped DTS over a whose
// states are labeled by the finite prefixes of words and whose
// accepting states (colored congruence.Accept) are exactly the given
// words' full endpoints; every other state is colored
// congruence.Reject.
func PrefixTree(a alphabet.Alphabet, words []word.FiniteWord) *dts.DTS {
	t := dts.New()
	root := t.AddState(congruence.Reject)
	t.SetInitial(root)

	for _, w := range words {
		cur := root
		for _, sym := range w {
			next, ok := t.HasEdge(cur, sym)
			if !ok {
				next = t.AddState(congruence.Reject)
				t.AddEdge(cur, sym, dts.Void, next)
			}
			cur = next
		}
		t.SetStateColor(cur, congruence.Accept)
	}
	return t
}

// Split partitions s by the class of a leading right congruence that
// each word's spoke reaches: word u*v^w is assigned to the sample of
// class cong.ReachedClass(u), since that is the state from which the
// periodic part v is read over and over. Words whose spoke runs off
// the congruence (shouldn't happen once cong is complete) are
// dropped. Returned samples share s's alphabet.
func (s *Sample) Split(cong *congruence.RightCongruence) map[dts.StateID]*Sample {
	out := map[dts.StateID]*Sample{}
	assign := func(w word.ReducedOmegaWord, accept bool) {
		class, ok := cong.ReachedClass(w.Spoke)
		if !ok {
			return
		}
		sub, ok := out[class]
		if !ok {
			sub = New(s.Alphabet)
			out[class] = sub
		}
		sub.Add(w, accept)
	}
	for _, w := range s.Pos {
		assign(w, true)
	}
	for _, w := range s.Neg {
		assign(w, false)
	}
	return out
}

// PrefixTreeFromOmegaWords builds the lasso-shaped prefix acceptor of
// the given omega-words: a BFS over tree nodes, each carrying the set
// of word suffixes whose run passes through it. A node holding two or
// more distinct suffixes branches, partitioning them by first symbol
// (in alphabet order, so state ids are reproducible); a node holding a
// single purely periodic suffix closes that word's loop instead, with
// fresh states for the cycle's proper prefixes and the last cycle
// symbol returning to the node. The loops are what give the product
// of two such acceptors its non-transient SCCs, which the
// prefix-consistency conflict construction feeds on.
//
// The returned map carries each state's access word (the unique
// finite word reaching it), which the iteration-consistency
// construction uses to classify states by their omega-power.
func PrefixTreeFromOmegaWords(a alphabet.Alphabet, words []word.ReducedOmegaWord) (*dts.DTS, map[dts.StateID]word.FiniteWord) {
	t := dts.NewPointed(congruence.Reject)
	root, _ := t.Initial()
	access := map[dts.StateID]word.FiniteWord{root: {}}

	type node struct {
		state dts.StateID
		words []word.ReducedOmegaWord
	}
	queue := []node{{state: root, words: dedupWords(words)}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if len(n.words) == 0 {
			continue
		}
		if len(n.words) == 1 && len(n.words[0].Spoke) == 0 {
			closeLoop(t, access, n.state, n.words[0].Cycle)
			continue
		}

		groups := map[alphabet.Symbol][]word.ReducedOmegaWord{}
		for _, w := range n.words {
			sym, rest := popFirst(w)
			groups[sym] = append(groups[sym], rest)
		}
		for _, sym := range a.Universe() {
			ws, ok := groups[sym]
			if !ok {
				continue
			}
			next := t.AddState(congruence.Reject)
			access[next] = append(append(word.FiniteWord(nil), access[n.state]...), sym)
			t.AddEdge(n.state, sym, dts.Void, next)
			queue = append(queue, node{state: next, words: dedupWords(ws)})
		}
	}
	return t, access
}

// closeLoop attaches the accepting loop of a purely periodic word to
// state: fresh states for every proper prefix of cycle, then the last
// symbol's edge back to state.
func closeLoop(t *dts.DTS, access map[dts.StateID]word.FiniteWord, state dts.StateID, cycle word.FiniteWord) {
	prev := state
	for _, sym := range cycle[:len(cycle)-1] {
		next := t.AddState(congruence.Reject)
		access[next] = append(append(word.FiniteWord(nil), access[prev]...), sym)
		t.AddEdge(prev, sym, dts.Void, next)
		prev = next
	}
	t.AddEdge(prev, cycle[len(cycle)-1], dts.Void, state)
}

// popFirst splits off w's first symbol. A non-empty spoke shortens; a
// purely periodic word rotates its cycle left, staying purely
// periodic. The field-literal construction is safe: dropping the
// spoke's head cannot make it end in the cycle's last symbol if it did
// not before, and rotation preserves the cycle's minimal period.
func popFirst(w word.ReducedOmegaWord) (alphabet.Symbol, word.ReducedOmegaWord) {
	if len(w.Spoke) > 0 {
		return w.Spoke[0], word.ReducedOmegaWord{Spoke: w.Spoke[1:], Cycle: w.Cycle}
	}
	sym := w.Cycle[0]
	rotated := append(append(word.FiniteWord(nil), w.Cycle[1:]...), w.Cycle[0])
	return sym, word.ReducedOmegaWord{Cycle: rotated}
}

func dedupWords(ws []word.ReducedOmegaWord) []word.ReducedOmegaWord {
	seen := map[string]bool{}
	out := ws[:0:0]
	for _, w := range ws {
		k := w.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, w)
	}
	return out
}
