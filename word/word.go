// Package word implements finite words and canonically-reduced
// ultimately periodic omega-words over an alphabet.Alphabet.
package word

import (
	"strconv"
	"strings"

	"github.com/coregx/omegalearn/alphabet"
)

// FiniteWord is a finite sequence of symbols.
type FiniteWord []alphabet.Symbol

// FromString builds a FiniteWord from the bytes of s.
func FromString(s string) FiniteWord {
	w := make(FiniteWord, len(s))
	for i := 0; i < len(s); i++ {
		w[i] = alphabet.Symbol(s[i])
	}
	return w
}

// String renders w as a plain string of its symbols.
func (w FiniteWord) String() string {
	buf := make([]byte, len(w))
	for i, s := range w {
		buf[i] = byte(s)
	}
	return string(buf)
}

// Equal reports structural equality between two finite words.
func (w FiniteWord) Equal(o FiniteWord) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Less defines the length-then-lexicographic order used throughout
// the package to pick minimal representatives: shorter words first,
// then lexicographically smaller words of equal length.
func (w FiniteWord) Less(o FiniteWord) bool {
	if len(w) != len(o) {
		return len(w) < len(o)
	}
	for i := range w {
		if w[i] != o[i] {
			return w[i] < o[i]
		}
	}
	return false
}

// Concat returns a new word consisting of w followed by o.
func (w FiniteWord) Concat(o FiniteWord) FiniteWord {
	out := make(FiniteWord, 0, len(w)+len(o))
	out = append(out, w...)
	out = append(out, o...)
	return out
}

// Clone returns a copy of w, safe to mutate independently.
func (w FiniteWord) Clone() FiniteWord {
	out := make(FiniteWord, len(w))
	copy(out, w)
	return out
}

// ReducedOmegaWord is an ultimately periodic omega-word spoke*cycle^w,
// held in canonical reduced form: Cycle is non-empty, no proper
// rotation of Cycle yields a shorter equivalent cycle, and Spoke does
// not end with a full period of Cycle.
type ReducedOmegaWord struct {
	Spoke FiniteWord
	Cycle FiniteWord
}

// New builds the canonical reduction of spoke*cycle^w. Panics if cycle
// is empty: an omega-word must have a non-empty repeating part.
func New(spoke, cycle FiniteWord) ReducedOmegaWord {
	if len(cycle) == 0 {
		panic("word: cycle must be non-empty")
	}
	return reduce(spoke.Clone(), cycle.Clone())
}

// Periodic builds the canonical reduction of cycle^w (empty spoke).
func Periodic(cycle FiniteWord) ReducedOmegaWord {
	return New(nil, cycle)
}

// reduce computes the canonical form: shrink cycle to its minimal
// period, then rotate the spoke/cycle boundary backward as long as the
// spoke's last symbol equals the cycle's last symbol. Each such
// rotation rewrites u*x (w*x)^w as u (x*w)^w, leaving the omega-word
// unchanged while shortening the spoke; when it terminates the spoke
// is the shortest possible for this word, which makes the (spoke,
// cycle) pair unique.
func reduce(spoke, cycle FiniteWord) ReducedOmegaWord {
	cycle = minimalPeriod(cycle)

	for len(spoke) > 0 && spoke[len(spoke)-1] == cycle[len(cycle)-1] {
		rotated := make(FiniteWord, 0, len(cycle))
		rotated = append(rotated, cycle[len(cycle)-1])
		rotated = append(rotated, cycle[:len(cycle)-1]...)
		cycle = rotated
		spoke = spoke[:len(spoke)-1]
	}

	return ReducedOmegaWord{Spoke: spoke, Cycle: cycle}
}

// minimalPeriod finds the smallest period p of cycle (p | len(cycle),
// cycle == repeat(cycle[:p])) and returns cycle[:p].
func minimalPeriod(cycle FiniteWord) FiniteWord {
	n := len(cycle)
	for p := 1; p < n; p++ {
		if n%p != 0 {
			continue
		}
		if isPeriod(cycle, p) {
			return cycle[:p].Clone()
		}
	}
	return cycle
}

func isPeriod(w FiniteWord, p int) bool {
	for i := p; i < len(w); i++ {
		if w[i] != w[i%p] {
			return false
		}
	}
	return true
}

// LeastRotation returns the lexicographically smallest rotation of
// cycle. Rotating a cycle changes the omega-word it spells when the
// spoke cannot absorb the rotation, so this is not part of reduce;
// it exists for the periodic projection, which identifies cycles up
// to rotation and wants a canonical pick. The cycles involved are
// small, so an O(n^2) scan is appropriate and keeps this package free
// of an external string-algorithms dependency.
func LeastRotation(cycle FiniteWord) FiniteWord {
	n := len(cycle)
	if n <= 1 {
		return cycle
	}
	doubled := cycle.Concat(cycle)
	best := 0
	for i := 1; i < n; i++ {
		if less(doubled[i:i+n], doubled[best:best+n]) {
			best = i
		}
	}
	return doubled[best : best+n].Clone()
}

func less(a, b FiniteWord) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Equal reports structural equality of the canonical forms.
func (w ReducedOmegaWord) Equal(o ReducedOmegaWord) bool {
	return w.Spoke.Equal(o.Spoke) && w.Cycle.Equal(o.Cycle)
}

// Key returns a comparable string key suitable for map lookups,
// encoding spoke and cycle unambiguously: the spoke's length in
// decimal, a zero byte, then the spoke and the cycle, so a zero-byte
// symbol cannot move the spoke/cycle boundary.
func (w ReducedOmegaWord) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(w.Spoke)))
	b.WriteByte(0)
	b.WriteString(w.Spoke.String())
	b.WriteByte(0)
	b.WriteString(w.Cycle.String())
	return b.String()
}

// String renders w as "spoke(cycle)^w".
func (w ReducedOmegaWord) String() string {
	return w.Spoke.String() + "(" + w.Cycle.String() + ")^w"
}

// Decompose returns the finite prefix reached after n copies of the
// cycle following the spoke (n >= 0), i.e. Spoke followed by n copies
// of Cycle.
func (w ReducedOmegaWord) Decompose(n int) FiniteWord {
	out := w.Spoke.Clone()
	for i := 0; i < n; i++ {
		out = out.Concat(w.Cycle)
	}
	return out
}
