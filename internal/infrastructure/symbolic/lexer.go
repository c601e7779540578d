package symbolic

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q at position %d", t.text, t.pos)
}

func tokenize(input string) ([]token, error) {
	tokens := make([]token, 0, len(input))

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isDigit(c) || c == '.':
			start := i
			dots := 0
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				if input[i] == '.' {
					dots++
				}
				i++
			}
			text := input[start:i]
			if dots > 1 || text == "." {
				return nil, fmt.Errorf("malformed number %q at position %d", text, start)
			}
			if strings.HasPrefix(text, ".") {
				text = "0" + text
			}
			if strings.HasSuffix(text, ".") {
				text += "0"
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, pos: start})

		case isLetter(c):
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i]) || input[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: input[start:i], pos: start})

		case c == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				tokens = append(tokens, token{kind: tokPow, text: "**", pos: i})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
			i++

		case c == '^':
			tokens = append(tokens, token{kind: tokPow, text: "^", pos: i})
			i++

		case c == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++

		case c == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++

		case c == '/':
			tokens = append(tokens, token{kind: tokSlash, text: "/", pos: i})
			i++

		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++

		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++

		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(input)})
	return tokens, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
