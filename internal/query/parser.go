package query

import (
	"fmt"
	"strconv"

	"github.com/tailspect/tailspect/internal/recache"
)

// Grammar, loosest binding first (no parenthesization):
//
//	expr       := or_expr
//	or_expr    := and_expr ("||" and_expr)*
//	and_expr   := unary ("&&" unary)*
//	unary      := "!" unary | comparison
//	comparison := operand (cmp_op operand)? | operand "~" operand | "~" operand
//	operand    := quoted_string | bare_word | number
//
// A bare word standalone is free text; as a comparison operand it is a field
// name.

type parser struct {
	tokens []token
	pos    int
	cache  *recache.Cache
}

func parse(input string, cache *recache.Cache) (*Node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Node{Kind: NodeAll}, nil
	}
	p := &parser{tokens: tokens, cache: cache}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %s", p.tokens[p.pos])
	}
	return node, nil
}

func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peekIs(tokOr) {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peekIs(tokAnd) {
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (*Node, error) {
	if p.peekIs(tokNot) {
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeNot, Left: child}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (*Node, error) {
	// Leading ~ matches the raw line against a regex operand.
	if p.peekIs(tokMatch) {
		p.pos++
		return p.parseRegexOperand()
	}

	left, err := p.operand(false)
	if err != nil {
		return nil, err
	}

	if op, ok := p.peekCmpOp(); ok {
		p.pos++
		// The bare token is a field name once it sits left of an
		// operator.
		if left.Kind == NodeString && left.isBare {
			left.Node.Kind = NodeIdent
		}
		if op == OpMatch {
			right, err := p.parseRegexOperand()
			if err != nil {
				return nil, err
			}
			return &Node{Kind: NodeCmp, Op: op, Left: left.Node, Right: right}, nil
		}
		right, err := p.operand(true)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeCmp, Op: op, Left: left.Node, Right: right.Node}, nil
	}
	return left.Node, nil
}

// operand parses one term. cmpSide marks a comparison right-hand side, where
// a bare word resolves as a field name instead of free text.
type operandNode struct {
	*Node
	isBare bool
}

func (p *parser) operand(cmpSide bool) (operandNode, error) {
	if p.pos >= len(p.tokens) {
		return operandNode{}, fmt.Errorf("unexpected end of expression, want operand")
	}
	t := p.tokens[p.pos]
	p.pos++
	switch t.kind {
	case tokString:
		return operandNode{Node: &Node{Kind: NodeString, Str: t.text}}, nil
	case tokWord:
		if cmpSide {
			return operandNode{Node: &Node{Kind: NodeIdent, Str: t.text}}, nil
		}
		return operandNode{Node: &Node{Kind: NodeString, Str: t.text}, isBare: true}, nil
	case tokNumber:
		n, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return operandNode{}, fmt.Errorf("bad number %q", t.text)
		}
		return operandNode{Node: &Node{Kind: NodeNumber, Str: t.text, Num: n}}, nil
	default:
		return operandNode{}, fmt.Errorf("unexpected token %s, want operand", t)
	}
}

// parseRegexOperand consumes a quoted or bare operand and compiles it through
// the shared cache. An invalid regex fails the whole expression at compile
// time.
func (p *parser) parseRegexOperand() (*Node, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("unexpected end of expression, want regex after ~")
	}
	t := p.tokens[p.pos]
	if t.kind != tokString && t.kind != tokWord && t.kind != tokNumber {
		return nil, fmt.Errorf("unexpected token %s, want regex after ~", t)
	}
	p.pos++
	re, err := p.cache.Get(t.text)
	if err != nil {
		return nil, fmt.Errorf("bad regex %q: %w", t.text, err)
	}
	return &Node{Kind: NodeRegex, Str: t.text, Re: re}, nil
}

func (p *parser) peekIs(kind tokenKind) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind
}

func (p *parser) peekCmpOp() (CmpOp, bool) {
	if p.pos >= len(p.tokens) {
		return 0, false
	}
	switch p.tokens[p.pos].kind {
	case tokEq:
		return OpEq, true
	case tokNe:
		return OpNe, true
	case tokGt:
		return OpGt, true
	case tokGe:
		return OpGe, true
	case tokLt:
		return OpLt, true
	case tokLe:
		return OpLe, true
	case tokMatch:
		return OpMatch, true
	}
	return 0, false
}
