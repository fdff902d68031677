package hoa

import (
	"strconv"
	"strings"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/dpa"
	"github.com/coregx/omegalearn/dts"
)

// FromHOA parses a HOA v1 document produced by ToHOA (or any document
// following its transition-based, one-acceptance-set-per-edge
// convention) back into a DPA and the Semantics named by its acc-name
// line. An input containing the literal "--ABORT--" marker is
// rejected outright, without even attempting to lex it.
func FromHOA(input string) (*dpa.DPA, dpa.Semantics, error) {
	if strings.Contains(input, "--ABORT--") {
		return nil, dpa.Semantics{}, ErrAbort
	}

	toks, err := Lex(input)
	if err != nil {
		return nil, dpa.Semantics{}, err
	}

	p := &parser{toks: toks}
	return p.parseAutomaton()
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errf(msg string) error {
	return &ParseError{Pos: p.peek().Pos, Msg: msg}
}

// skipLine consumes tokens until the next header, body marker, or EOF,
// used for header fields this parser doesn't need to interpret
// (acceptance-condition expressions, name/tool strings, and unknown
// extension headers alike).
func (p *parser) skipLine() {
	for p.peek().Kind != TokHeader && p.peek().Kind != TokBodyStart && p.peek().Kind != TokEOF {
		p.next()
	}
}

func (p *parser) parseAutomaton() (*dpa.DPA, dpa.Semantics, error) {
	var apSymbols []alphabet.Symbol
	var initial int
	haveInitial := false
	semName := "min-even"

	for p.peek().Kind == TokHeader {
		h := p.next()
		switch h.Text {
		case "HOA":
			p.skipLine()
		case "States":
			if p.peek().Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected integer after States:")
			}
			p.next()
		case "Start":
			tok := p.next()
			if tok.Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected integer after Start:")
			}
			n, err := strconv.Atoi(tok.Text)
			if err != nil {
				return nil, dpa.Semantics{}, p.errf("malformed Start: value")
			}
			initial = n
			haveInitial = true
		case "AP":
			tok := p.next()
			if tok.Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected integer after AP:")
			}
			count, _ := strconv.Atoi(tok.Text)
			for i := 0; i < count; i++ {
				name := p.next()
				if name.Kind != TokText || len(name.Text) != 1 {
					return nil, dpa.Semantics{}, p.errf("expected a single-character AP name")
				}
				apSymbols = append(apSymbols, alphabet.Symbol(name.Text[0]))
			}
		case "Acceptance":
			p.skipLine()
		case "acc-name":
			if p.peek().Kind == TokIdentifier && p.peek().Text == "parity" {
				p.next()
				nameTok := p.next()
				semName = nameTok.Text
			}
			p.skipLine()
		default:
			p.skipLine()
		}
	}

	if p.peek().Kind != TokBodyStart {
		return nil, dpa.Semantics{}, p.errf("expected --BODY--")
	}
	p.next()

	a := alphabet.New(apSymbols...)
	d := dts.New()
	stateOf := map[int]dts.StateID{}
	getState := func(n int) dts.StateID {
		if id, ok := stateOf[n]; ok {
			return id
		}
		id := d.AddState(dts.Void)
		stateOf[n] = id
		return id
	}

	haveCurrent := false
	var currentState int
	for p.peek().Kind != TokBodyEnd {
		switch {
		case p.peek().Kind == TokHeader && p.peek().Text == "State":
			p.next()
			tok := p.next()
			if tok.Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected integer after State:")
			}
			currentState, _ = strconv.Atoi(tok.Text)
			haveCurrent = true
			getState(currentState)
			if p.peek().Kind == TokText {
				p.next()
			}
		case p.peek().Kind == TokParen && p.peek().Text == "[":
			if !haveCurrent {
				return nil, dpa.Semantics{}, p.errf("edge label before any State:")
			}
			p.next()
			symIdx, err := p.parseLabel(len(apSymbols))
			if err != nil {
				return nil, dpa.Semantics{}, err
			}
			if p.peek().Kind != TokParen || p.peek().Text != "]" {
				return nil, dpa.Semantics{}, p.errf("expected ']'")
			}
			p.next()

			targetTok := p.next()
			if targetTok.Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected target state id")
			}
			target, _ := strconv.Atoi(targetTok.Text)

			if p.peek().Kind != TokParen || p.peek().Text != "{" {
				return nil, dpa.Semantics{}, p.errf("expected '{' acceptance set")
			}
			p.next()
			colorTok := p.next()
			if colorTok.Kind != TokInt {
				return nil, dpa.Semantics{}, p.errf("expected acceptance set id")
			}
			color, _ := strconv.Atoi(colorTok.Text)
			if p.peek().Kind != TokParen || p.peek().Text != "}" {
				return nil, dpa.Semantics{}, p.errf("expected '}'")
			}
			p.next()

			sym := a.Universe()[symIdx]
			d.AddEdge(getState(currentState), sym, color, getState(target))
		default:
			return nil, dpa.Semantics{}, p.errf("unexpected token in body")
		}
	}
	p.next() // consume --END--

	if haveInitial {
		d.SetInitial(getState(initial))
	}

	sem, ok := dpa.SemanticsByName(semName)
	if !ok {
		sem = dpa.MinEven
	}
	return dpa.New(a, d), sem, nil
}

// parseLabel consumes a one-hot label expression ("t" for a
// single-symbol alphabet, or a conjunction like "!0 & 1") and returns
// the index of the one proposition it selects positively.
func (p *parser) parseLabel(apCount int) (int, error) {
	if apCount <= 1 {
		if p.peek().Kind == TokIdentifier && p.peek().Text == "t" {
			p.next()
			return 0, nil
		}
		return -1, p.errf("expected 't' label for a single-symbol alphabet")
	}

	found := -1
	for {
		neg := false
		if p.peek().Kind == TokOp && p.peek().Text == "!" {
			neg = true
			p.next()
		}
		if p.peek().Kind != TokInt {
			return -1, p.errf("expected an AP index in edge label")
		}
		idxTok := p.next()
		idx, err := strconv.Atoi(idxTok.Text)
		if err != nil {
			return -1, p.errf("malformed AP index")
		}
		if !neg {
			found = idx
		}
		if p.peek().Kind == TokOp && p.peek().Text == "&" {
			p.next()
			continue
		}
		break
	}
	if found < 0 {
		return -1, p.errf("one-hot label selects no proposition positively")
	}
	return found, nil
}
