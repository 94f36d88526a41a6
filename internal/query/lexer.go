package query

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokNumber
	tokEq
	tokNe
	tokGt
	tokGe
	tokLt
	tokLe
	tokMatch
	tokNot
	tokAnd
	tokOr
)

type token struct {
	kind tokenKind
	text string
}

func (t token) String() string {
	switch t.kind {
	case tokWord:
		return t.text
	case tokString:
		return fmt.Sprintf("%q", t.text)
	case tokNumber:
		return t.text
	case tokEq:
		return "=="
	case tokNe:
		return "!="
	case tokGt:
		return ">"
	case tokGe:
		return ">="
	case tokLt:
		return "<"
	case tokLe:
		return "<="
	case tokMatch:
		return "~"
	case tokNot:
		return "!"
	case tokAnd:
		return "&&"
	case tokOr:
		return "||"
	}
	return "?"
}

// tokenize splits expression text into tokens. A single = is accepted for ==,
// single & and | for && and ||. An unterminated quote is implicitly closed at
// end of input.
func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9':
			start := i
			dot := false
			for i < len(input) && (isDigit(input[i]) || (input[i] == '.' && !dot)) {
				if input[i] == '.' {
					dot = true
				}
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: input[start:i]})
		case isWordStart(c):
			start := i
			for i < len(input) && isWordChar(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokWord, text: input[start:i]})
		case c == '"':
			i++
			end := strings.IndexByte(input[i:], '"')
			if end < 0 {
				tokens = append(tokens, token{kind: tokString, text: input[i:]})
				i = len(input)
			} else {
				tokens = append(tokens, token{kind: tokString, text: input[i : i+end]})
				i += end + 1
			}
		case c == '>':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokGe})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokGt})
				i++
			}
		case c == '<':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokLe})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokLt})
				i++
			}
		case c == '=':
			tokens = append(tokens, token{kind: tokEq})
			i++
			if i < len(input) && input[i] == '=' {
				i++
			}
		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokNe})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokNot})
				i++
			}
		case c == '~':
			tokens = append(tokens, token{kind: tokMatch})
			i++
		case c == '&':
			tokens = append(tokens, token{kind: tokAnd})
			i++
			if i < len(input) && input[i] == '&' {
				i++
			}
		case c == '|':
			tokens = append(tokens, token{kind: tokOr})
			i++
			if i < len(input) && input[i] == '|' {
				i++
			}
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	return tokens, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || isDigit(c)
}
