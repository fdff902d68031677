package dpa

import (
	"testing"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/word"
)

func build(a alphabet.Alphabet, transitions [][4]interface{}, initial int) *DPA {
	d := dts.New()
	states := map[int]dts.StateID{}
	get := func(n int) dts.StateID {
		if id, ok := states[n]; ok {
			return id
		}
		id := d.AddState(dts.Void)
		states[n] = id
		return id
	}
	for _, tr := range transitions {
		src := get(tr[0].(int))
		sym := alphabet.Symbol(tr[1].(byte))
		color := tr[2].(int)
		dst := get(tr[3].(int))
		d.AddEdge(src, sym, color, dst)
	}
	d.SetInitial(get(initial))
	return New(a, d)
}

// TestNormalizedMinimizesPriorities: the two-state DPA below peels
// down to the minimal {0, 1} priority range.
func TestNormalizedMinimizesPriorities(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 2, 0},
		{0, byte('b'), 1, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 1, 1},
	}, 0)

	normalized := d.Normalized()

	cases := []struct {
		in       string
		expected dts.Color
	}{
		{"a", 0},
		{"b", 0},
		{"ba", 0},
		{"bb", 1},
	}
	for _, c := range cases {
		got, ok := normalized.LastEdgeColor(word.FromString(c.in))
		if !ok || got != c.expected {
			t.Fatalf("LastEdgeColor(%q) = (%v, %v), want %v", c.in, got, ok, c.expected)
		}
	}
}

// TestNormalizedHandlesInterleavedTransientPeels covers a shape
// where states turn transient mid-peel while a priority round is
// still open.
func TestNormalizedHandlesInterleavedTransientPeels(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 3, 2},
		{0, byte('b'), 3, 0},
		{1, byte('a'), 4, 0},
		{1, byte('b'), 3, 2},
		{2, byte('a'), 2, 1},
		{2, byte('b'), 0, 2},
	}, 0)

	normalized := d.Normalized()
	for _, in := range []string{"aaa", "aa", "aab"} {
		got, ok := normalized.LastEdgeColor(word.FromString(in))
		if !ok || got != 0 {
			t.Fatalf("LastEdgeColor(%q) = (%v, %v), want 0", in, got, ok)
		}
	}
}

// TestNormalizedKeepsMinimalColorsOnSelfLoops checks the one-state
// DPA with an even and an odd self-loop: normalization leaves the
// priorities at their minimal {0, 1} range.
func TestNormalizedKeepsMinimalColorsOnSelfLoops(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 0},
		{0, byte('b'), 1, 0},
	}, 0)

	normalized := d.Normalized()
	if normalized.Size() != 1 {
		t.Fatalf("normalization must not change the state count, got %d", normalized.Size())
	}
	if got, _ := normalized.LastEdgeColor(word.FromString("a")); got != 0 {
		t.Fatalf("a-loop should keep priority 0, got %d", got)
	}
	if got, _ := normalized.LastEdgeColor(word.FromString("b")); got != 1 {
		t.Fatalf("b-loop should keep priority 1, got %d", got)
	}
}

// TestStreamlinedCollapsesEquivalentStates: before streamlining the
// two-state DPA reads priority 3 on "ab"; afterwards it has a single
// state and reads the minimized priority 1.
func TestStreamlinedCollapsesEquivalentStates(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 1},
		{0, byte('b'), 1, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 3, 0},
	}, 0)

	if got, _ := d.LastEdgeColor(word.FromString("ab")); got != 3 {
		t.Fatalf("before streamlining, ab should read color 3, got %d", got)
	}

	streamlined := d.Streamlined(MinEven)
	if streamlined.Size() != 1 {
		t.Fatalf("streamlining should collapse the two equivalent states, got %d", streamlined.Size())
	}
	if got, _ := streamlined.LastEdgeColor(word.FromString("ab")); got != 1 {
		t.Fatalf("after streamlining, ab should read color 1, got %d", got)
	}
}

// TestPrefixCongruenceGroupsLanguageEquivalentStates checks the
// two-class partition of a DPA whose states differ on b^w, and the
// one-class partition of a DPA whose colors are uniform.
func TestPrefixCongruenceGroupsLanguageEquivalentStates(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 1},
		{0, byte('b'), 1, 0},
		{1, byte('a'), 2, 0},
		{1, byte('b'), 0, 1},
	}, 0)

	cong := d.PrefixCongruence(MinEven)
	if cong.Size() != 2 {
		t.Fatalf("expected a 2-class prefix congruence, got %d", cong.Size())
	}
	if !cong.Congruent(word.FromString(""), word.FromString("aa")) {
		t.Fatalf("epsilon and 'aa' should be congruent")
	}
	if !cong.Congruent(word.FromString("ab"), word.FromString("baaba")) {
		t.Fatalf("'ab' and 'baaba' should be congruent")
	}

	d2 := build(a, [][4]interface{}{
		{0, byte('a'), 0, 0},
		{0, byte('b'), 0, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 0, 0},
	}, 0)
	cong2 := d2.PrefixCongruence(MinEven)
	if cong2.Size() != 1 {
		t.Fatalf("expected a single-class prefix congruence, got %d", cong2.Size())
	}
}

// TestIsInformativeRightCongruent distinguishes a DPA with two
// language-equivalent states from one whose extra symbol separates
// them.
func TestIsInformativeRightCongruent(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 1},
		{0, byte('b'), 1, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 3, 0},
	}, 0)
	if d.IsInformativeRightCongruent(MinEven) {
		t.Fatalf("expected the two-state DPA to not be informative right congruent")
	}

	d2 := build(alphabet.FromString("abc"), [][4]interface{}{
		{0, byte('a'), 0, 1},
		{0, byte('b'), 1, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 3, 0},
		{0, byte('c'), 2, 0},
		{1, byte('c'), 1, 1},
	}, 0)
	if !d2.IsInformativeRightCongruent(MinEven) {
		t.Fatalf("expected the three-symbol DPA to be informative right congruent")
	}
}

// TestNormalizedCheckedReportsNoMismatch exercises the opt-in
// equivalence-checked variant of Normalized.
func TestNormalizedCheckedReportsNoMismatch(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 2, 0},
		{0, byte('b'), 1, 1},
		{1, byte('a'), 0, 0},
		{1, byte('b'), 1, 1},
	}, 0)

	if _, err := d.NormalizedChecked(MinEven); err != nil {
		t.Fatalf("NormalizedChecked reported a mismatch: %v", err)
	}
}

// TestBuchiCountsOnlyLassoCycleEdges builds a DBA whose sole
// accepting edge (priority 0) leaves the initial state on 'a': words
// whose cycle keeps crossing it are accepted, while a word that
// crosses it only on the spoke is rejected.
func TestBuchiCountsOnlyLassoCycleEdges(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 1},
		{0, byte('b'), 1, 0},
		{1, byte('a'), 1, 0},
		{1, byte('b'), 1, 0},
	}, 0)

	if d.Accepts(Buchi, word.Periodic(word.FromString("b"))) {
		t.Errorf("b^w never crosses the accepting edge, must be rejected")
	}
	if !d.Accepts(Buchi, word.Periodic(word.FromString("ab"))) {
		t.Errorf("(ab)^w crosses the accepting edge on every cycle, must be accepted")
	}
	if d.Accepts(Buchi, word.New(word.FromString("a"), word.FromString("b"))) {
		t.Errorf("a(b)^w crosses the accepting edge only on its spoke, must be rejected")
	}
}

// TestMinEvenAcceptsEvenLimitCycle checks MinEven's lasso evaluation
// directly, independent of normalization or partitioning.
func TestMinEvenAcceptsEvenLimitCycle(t *testing.T) {
	a := alphabet.FromString("ab")
	d := build(a, [][4]interface{}{
		{0, byte('a'), 0, 0},
		{0, byte('b'), 1, 0},
	}, 0)

	if !d.Accepts(MinEven, word.Periodic(word.FromString("a"))) {
		t.Fatalf("a^w should be accepted under min-even (color 0 recurs)")
	}
	if d.Accepts(MinEven, word.Periodic(word.FromString("b"))) {
		t.Fatalf("b^w should be rejected under min-even (color 1 recurs)")
	}
}
