package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"math-agent/internal/domain/entity"
)

const variableName = "x"

// parseEquation turns "lhs = rhs" into the single expression lhs - rhs.
// Input without '=' is parsed as is.
func parseEquation(equation string) (node, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(equation, "^", "**"))
	if normalized == "" {
		return nil, &entity.ParseError{Input: equation, Reason: "empty equation"}
	}

	sides := strings.Split(normalized, "=")
	if len(sides) > 2 {
		return nil, &entity.ParseError{Input: equation, Reason: "more than one '='"}
	}

	left, err := parseExpression(sides[0])
	if err != nil {
		return nil, &entity.ParseError{Input: equation, Reason: err.Error()}
	}
	if len(sides) == 1 {
		return left, nil
	}

	right, err := parseExpression(sides[1])
	if err != nil {
		return nil, &entity.ParseError{Input: equation, Reason: err.Error()}
	}
	return &binary{op: '-', left: left, right: right}, nil
}

type parser struct {
	tokens []token
	pos    int
}

func parseExpression(input string) (node, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("missing expression")
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s", t.describe())
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for {
		var op byte
		switch p.peek().kind {
		case tokPlus:
			op = '+'
		case tokMinus:
			op = '-'
		default:
			return left, nil
		}
		p.next()

		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &binary{op: op, left: left, right: right}
	}
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().kind {
		case tokStar, tokSlash:
			op := byte('*')
			if p.next().kind == tokSlash {
				op = '/'
			}
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &binary{op: op, left: left, right: right}

		case tokIdent, tokLParen:
			// implicit multiplication: 5x, 2(x + 1), x(x - 1)
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = &binary{op: '*', left: left, right: right}

		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negate{arg: operand}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	default:
		return p.parsePower()
	}
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()

	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &power{base: base, exp: exponent}, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		value, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, fmt.Errorf("malformed number %s", t.describe())
		}
		return &constant{value: value}, nil

	case tokIdent:
		switch t.text {
		case variableName:
			return &variable{}, nil
		case "sqrt":
			if p.next().kind != tokLParen {
				return nil, fmt.Errorf("expected '(' after sqrt at position %d", t.pos)
			}
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if closing := p.next(); closing.kind != tokRParen {
				return nil, fmt.Errorf("expected ')' but found %s", closing.describe())
			}
			return &sqrtCall{arg: arg}, nil
		default:
			return nil, fmt.Errorf("unknown symbol %s, only %s is supported", t.describe(), variableName)
		}

	case tokLParen:
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ')' but found %s", closing.describe())
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("unexpected %s", t.describe())
	}
}
