package taskio

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/omegalearn/alphabet"
)

// candidateSymbols bounds the alphabet-detection search to the
// symbols generated tasks are ever drawn from; the learning core is
// only ever exercised on alphabets of a few symbols.
var candidateSymbols = []byte("abc")

// DetectAlphabet classifies which of candidateSymbols actually occur
// across a CSV task's spoke/cycle columns, using an Aho-Corasick
// automaton to scan every row's word text in one pass rather than a
// per-symbol per-row byte scan.
func DetectAlphabet(words []string) (alphabet.Alphabet, error) {
	builder := ahocorasick.NewBuilder()
	for _, sym := range candidateSymbols {
		builder.AddPattern([]byte{sym})
	}
	automaton, err := builder.Build()
	if err != nil {
		return alphabet.Alphabet{}, err
	}

	seen := make(map[byte]bool, len(candidateSymbols))
	for _, w := range words {
		haystack := []byte(w)
		at := 0
		for at <= len(haystack) {
			m := automaton.Find(haystack, at)
			if m == nil {
				break
			}
			seen[haystack[m.Start]] = true
			at = m.Start + 1
		}
	}

	var syms []alphabet.Symbol
	for _, sym := range candidateSymbols {
		if seen[sym] {
			syms = append(syms, alphabet.Symbol(sym))
		}
	}
	return alphabet.New(syms...), nil
}
