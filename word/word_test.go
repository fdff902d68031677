package word

import "testing"

func TestNewShrinksCycleToMinimalPeriod(t *testing.T) {
	w := New(nil, FromString("abab"))
	if !w.Cycle.Equal(FromString("ab")) {
		t.Fatalf("cycle should reduce to its minimal period, got %q", w.Cycle)
	}
	if len(w.Spoke) != 0 {
		t.Fatalf("spoke should stay empty, got %q", w.Spoke)
	}
}

func TestNewAbsorbsSpokeIntoCycle(t *testing.T) {
	// a(ba)^w spells ababab... = (ab)^w, so the canonical form has an
	// empty spoke and the rotated cycle.
	w := New(FromString("a"), FromString("ba"))
	if len(w.Spoke) != 0 {
		t.Fatalf("spoke should be fully absorbed, got %q", w.Spoke)
	}
	if !w.Cycle.Equal(FromString("ab")) {
		t.Fatalf("cycle should rotate to ab, got %q", w.Cycle)
	}

	// ab(ab)^w is just (ab)^w.
	w = New(FromString("ab"), FromString("ab"))
	if len(w.Spoke) != 0 || !w.Cycle.Equal(FromString("ab")) {
		t.Fatalf("full trailing period should be absorbed, got %q (%q)^w", w.Spoke, w.Cycle)
	}
}

func TestNewKeepsGenuineSpoke(t *testing.T) {
	w := New(FromString("b"), FromString("a"))
	if !w.Spoke.Equal(FromString("b")) || !w.Cycle.Equal(FromString("a")) {
		t.Fatalf("b(a)^w is already canonical, got %q (%q)^w", w.Spoke, w.Cycle)
	}
}

func TestNewIsIdempotent(t *testing.T) {
	inputs := []struct{ spoke, cycle string }{
		{"", "a"},
		{"a", "ba"},
		{"abb", "ab"},
		{"", "abcabc"},
		{"ba", "aab"},
	}
	for _, in := range inputs {
		once := New(FromString(in.spoke), FromString(in.cycle))
		twice := New(once.Spoke, once.Cycle)
		if !once.Equal(twice) {
			t.Fatalf("reduction of %q(%q)^w is not idempotent: %v then %v", in.spoke, in.cycle, once, twice)
		}
	}
}

func TestNewPanicsOnEmptyCycle(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New with an empty cycle must panic")
		}
	}()
	New(FromString("a"), nil)
}

func TestLeastRotation(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a", "a"},
		{"ba", "ab"},
		{"bab", "abb"},
		{"cab", "abc"},
	}
	for _, c := range cases {
		if got := LeastRotation(FromString(c.in)); !got.Equal(FromString(c.want)) {
			t.Errorf("LeastRotation(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLessOrdersByLengthThenLex(t *testing.T) {
	if !FromString("b").Less(FromString("aa")) {
		t.Errorf("shorter words must come first")
	}
	if !FromString("ab").Less(FromString("ba")) {
		t.Errorf("equal lengths must order lexicographically")
	}
	if FromString("ab").Less(FromString("ab")) {
		t.Errorf("Less must be irreflexive")
	}
}

func TestKeyDistinguishesSpokeCycleBoundary(t *testing.T) {
	u := New(FromString("b"), FromString("a"))
	v := New(nil, FromString("ba"))
	if u.Key() == v.Key() {
		t.Fatalf("b(a)^w and (ba)^w are different words, keys must differ")
	}
}

func TestDecomposeUnrollsCycle(t *testing.T) {
	w := New(FromString("b"), FromString("a"))
	if got := w.Decompose(2); !got.Equal(FromString("baa")) {
		t.Fatalf("Decompose(2) = %q, want baa", got)
	}
}
