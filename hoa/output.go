package hoa

import (
	"fmt"
	"strings"

	"github.com/coregx/omegalearn/dpa"
)

// ToHOA renders aut as a HOA v1 document, interpreting its acceptance
// under sem: a sequence of header lines followed by "--BODY--", one
// block per state, then "--END--".
//
// The alphabet is encoded one-hot: each symbol in aut.Alphabet gets
// its own atomic proposition, named after the symbol itself so
// FromHOA can recover the exact original alphabet rather than just
// its size. Acceptance is transition-based with exactly one
// acceptance-set id per edge, equal to the edge's parity priority;
// this is the design decision recorded in this package's doc comment.
func ToHOA(aut *dpa.DPA, sem dpa.Semantics) string {
	universe := aut.Alphabet.Universe()
	k := len(universe)

	maxColor := 0
	for _, e := range aut.AllEdges() {
		if e.Color > maxColor {
			maxColor = e.Color
		}
	}
	numSets := maxColor + 1

	var b strings.Builder
	b.WriteString("HOA: v1\n")
	fmt.Fprintf(&b, "States: %d\n", aut.Size())
	if init, ok := aut.Initial(); ok {
		fmt.Fprintf(&b, "Start: %d\n", init)
	}
	fmt.Fprintf(&b, "AP: %d", k)
	for _, sym := range universe {
		fmt.Fprintf(&b, " \"%c\"", byte(sym))
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Acceptance: %d %s\n", numSets, parityCondition(numSets))
	fmt.Fprintf(&b, "acc-name: parity %s %d\n", sem.Name, numSets)
	b.WriteString("properties: trans-labels explicit-labels trans-acc deterministic\n")
	b.WriteString("--BODY--\n")

	for _, q := range aut.StateIndices() {
		fmt.Fprintf(&b, "State: %d\n", q)
		edges, _ := aut.EdgesFrom(q)
		for _, e := range edges {
			idx := aut.Alphabet.Index(e.Expr)
			fmt.Fprintf(&b, "[%s] %d {%d}\n", labelExpr(idx, k), e.Target, e.Color)
		}
	}
	b.WriteString("--END--")
	return b.String()
}

// labelExpr renders the one-hot label selecting symbol idx out of k,
// e.g. "!0 & 1" for idx=1, k=2. A single-symbol alphabet needs no
// proposition at all and is rendered as the literal true ("t").
func labelExpr(idx, k int) string {
	if k <= 1 {
		return "t"
	}
	parts := make([]string, k)
	for i := 0; i < k; i++ {
		if i == idx {
			parts[i] = fmt.Sprintf("%d", i)
		} else {
			parts[i] = fmt.Sprintf("!%d", i)
		}
	}
	return strings.Join(parts, " & ")
}

// parityCondition renders the HOA acceptance-condition expression for
// a generic n-priority parity condition: even priorities recur (Inf),
// odd priorities are eventually excluded (Fin), nested from the least
// priority upward.
// This describes the transition-set structure only; which of the five
// Semantics variants actually governs acceptance is recorded
// separately in the acc-name line, since HOA's parity acceptance
// grammar doesn't distinguish min/max the way this package's Semantics
// does.
func parityCondition(numSets int) string {
	return parityRec(0, numSets)
}

func parityRec(current, total int) string {
	if current+1 >= total {
		if current%2 == 0 {
			return fmt.Sprintf("Inf(%d)", current)
		}
		return fmt.Sprintf("Fin(%d)", current)
	}
	if current%2 == 0 {
		return fmt.Sprintf("(Inf(%d) | %s)", current, parityRec(current+1, total))
	}
	return fmt.Sprintf("(Fin(%d) & %s)", current, parityRec(current+1, total))
}
