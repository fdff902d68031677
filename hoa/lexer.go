package hoa

import "strings"

// Lex tokenizes a HOA document: integers, quoted text,
// the `!|&` operators, `(){}[]` parens, `--BODY--`/`--END--`, bare
// identifiers, and `header:`-style header names, skipping whitespace
// and `/* ... */` comments.
func Lex(input string) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(input)

	for i < n {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '/' && i+1 < n && input[i+1] == '*':
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				return nil, &LexError{Pos: i, Msg: "unterminated comment"}
			}
			i = i + 2 + end + 2
		case strings.HasPrefix(input[i:], "--BODY--"):
			toks = append(toks, Token{Kind: TokBodyStart, Text: "--BODY--", Pos: i})
			i += len("--BODY--")
		case strings.HasPrefix(input[i:], "--END--"):
			toks = append(toks, Token{Kind: TokBodyEnd, Text: "--END--", Pos: i})
			i += len("--END--")
		case strings.HasPrefix(input[i:], "--ABORT--"):
			toks = append(toks, Token{Kind: TokAbort, Text: "--ABORT--", Pos: i})
			i += len("--ABORT--")
		case c >= '0' && c <= '9':
			start := i
			for i < n && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			toks = append(toks, Token{Kind: TokInt, Text: input[start:i], Pos: start})
		case c == '"':
			start := i
			i++
			for i < n && input[i] != '"' {
				i++
			}
			if i >= n {
				return nil, &LexError{Pos: start, Msg: "unterminated string"}
			}
			toks = append(toks, Token{Kind: TokText, Text: input[start+1 : i], Pos: start})
			i++
		case c == '!' || c == '|' || c == '&':
			toks = append(toks, Token{Kind: TokOp, Text: string(c), Pos: i})
			i++
		case c == '(' || c == ')' || c == '{' || c == '}' || c == '[' || c == ']':
			toks = append(toks, Token{Kind: TokParen, Text: string(c), Pos: i})
			i++
		case isIdentStart(c):
			start := i
			i++
			for i < n && isIdentCont(input[i]) {
				i++
			}
			if i < n && input[i] == ':' {
				toks = append(toks, Token{Kind: TokHeader, Text: input[start:i], Pos: start})
				i++
				continue
			}
			toks = append(toks, Token{Kind: TokIdentifier, Text: input[start:i], Pos: start})
		default:
			return nil, &LexError{Pos: i, Msg: "unexpected character " + string(c)}
		}
	}

	toks = append(toks, Token{Kind: TokEOF, Pos: n})
	return toks, nil
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-'
}
