package infer

import (
	"testing"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/conflict"
	"github.com/coregx/omegalearn/dpa"
	"github.com/coregx/omegalearn/sample"
	"github.com/coregx/omegalearn/sprout"
	"github.com/coregx/omegalearn/word"
)

// TestLearnClassifiesTrainingWordsCorrectly builds the two-word
// sample Pos={(eps,a)}, Neg={(eps,b)} and checks that the learned,
// normalized automaton correctly classifies both training words it
// was built from.
func TestLearnClassifiesTrainingWordsCorrectly(t *testing.T) {
	a := alphabet.FromString("ab")
	s := sample.New(a)
	pos := word.Periodic(word.FromString("a"))
	neg := word.Periodic(word.FromString("b"))
	if err := s.Add(pos, true); err != nil {
		t.Fatalf("Add positive: %v", err)
	}
	if err := s.Add(neg, false); err != nil {
		t.Fatalf("Add negative: %v", err)
	}

	res, err := Learn(s, dpa.Buchi, sprout.DefaultConfig())
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	if res.Automaton == nil {
		t.Fatalf("Learn returned a nil automaton on success")
	}

	if !res.Automaton.Accepts(res.Semantics, pos) {
		t.Errorf("learned automaton rejects positive training word %v", pos)
	}
	if res.Automaton.Accepts(res.Semantics, neg) {
		t.Errorf("learned automaton accepts negative training word %v", neg)
	}
}

// TestPartialSizeExtractsFromBothErrorKinds checks that PartialSize
// reads the partial congruence size out of both SproutError variants,
// used by the driver's abort-path result.csv export.
func TestPartialSizeExtractsFromBothErrorKinds(t *testing.T) {
	a := alphabet.FromString("ab")
	s := sample.New(a)
	s.Add(word.Periodic(word.FromString("a")), true)
	s.Add(word.Periodic(word.FromString("b")), false)

	cong, err := sprout.Sprout(conflict.PrefixConsistencyConflicts(s), nil, sprout.DefaultConfig())
	if err != nil {
		t.Fatalf("Sprout failed on a trivial sample: %v", err)
	}

	thresholdErr := &sprout.ThresholdError{Cong: cong, Threshold: 1}
	if got := PartialSize(thresholdErr); got != cong.Size() {
		t.Errorf("PartialSize(ThresholdError) = %d, want %d", got, cong.Size())
	}

	timeoutErr := &sprout.TimeoutError{Cong: cong}
	if got := PartialSize(timeoutErr); got != cong.Size() {
		t.Errorf("PartialSize(TimeoutError) = %d, want %d", got, cong.Size())
	}

	if got := PartialSize(nil); got != 0 {
		t.Errorf("PartialSize(nil) = %d, want 0", got)
	}
}
