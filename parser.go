package arithgen

import (
	"strings"
	"unicode"
)

// ============================================================
// Parser — infix text back into an expression tree
// ============================================================
//
//	expr   := term (('+' | '-') term)*
//	term   := atom (('×' | '÷' | '*' | '/') atom)*
//	atom   := '(' expr ')' | number
//	number := integer | integer '/' integer | integer "'" integer '/' integer
//
// The first '/' directly between two digits belongs to the number; every
// other '/' is the division operator. Both chains are left-associative.

type parser struct {
	input string
	src   []rune
	pos   int
}

// Parse builds an expression tree from infix text. Errors are *ParseError.
func Parse(text string) (Expr, error) {
	p := &parser{input: text, src: []rune(text)}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		if p.peek() == ')' {
			return nil, p.fail(ErrUnmatchedParenthesis)
		}
		return nil, p.fail(ErrExpectedOperator)
	}
	return e, nil
}

// ParseValid parses text and rejects trees that break the validity rules.
func ParseValid(text string) (Expr, error) {
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if err := Validate(e); err != nil {
		return nil, err
	}
	return e, nil
}

// MustParse panics on malformed input.
func MustParse(text string) Expr {
	e, err := Parse(text)
	if err != nil {
		panic("arithgen: " + err.Error())
	}
	return e
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.eof() {
			return left, nil
		}
		var op Op
		switch p.peek() {
		case '+':
			op = OpAdd
		case '-':
			op = OpSub
		default:
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Bin(op, left, right)
	}
}

func (p *parser) term() (Expr, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.eof() {
			return left, nil
		}
		var op Op
		switch p.peek() {
		case '*', '×':
			op = OpMul
		case '/', '÷':
			op = OpDiv
		default:
			return left, nil
		}
		p.pos++
		right, err := p.atom()
		if err != nil {
			return nil, err
		}
		left = Bin(op, left, right)
	}
}

func (p *parser) atom() (Expr, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.fail(ErrUnexpectedEnd)
	}
	switch c := p.peek(); {
	case c == '(':
		open := p.pos
		p.pos++
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.eof() {
			return nil, &ParseError{Input: p.input, Pos: open, Err: ErrUnmatchedParenthesis}
		}
		if p.peek() != ')' {
			return nil, p.fail(ErrExpectedOperator)
		}
		p.pos++
		return e, nil
	case c == ')':
		return nil, p.fail(ErrUnmatchedParenthesis)
	default:
		return p.number()
	}
}

func (p *parser) number() (Expr, error) {
	start := p.pos
	bar := false
	for !p.eof() {
		c := p.peek()
		if unicode.IsSpace(c) || strings.ContainsRune("()+-*×÷", c) {
			break
		}
		if c == '/' {
			if bar || !p.fractionBar() {
				break
			}
			bar = true
		}
		p.pos++
	}
	if p.pos == start {
		return nil, p.failAt(start, ErrMalformedNumber)
	}
	v, err := ParseRational(string(p.src[start:p.pos]))
	if err != nil {
		return nil, p.failAt(start, err)
	}
	return Lit(v), nil
}

// fractionBar reports whether the '/' at pos joins two digits.
func (p *parser) fractionBar() bool {
	if p.pos == 0 || p.pos+1 >= len(p.src) {
		return false
	}
	return isDigit(p.src[p.pos-1]) && isDigit(p.src[p.pos+1])
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() rune { return p.src[p.pos] }

func (p *parser) fail(err error) error { return p.failAt(p.pos, err) }

func (p *parser) failAt(pos int, err error) error {
	return &ParseError{Input: p.input, Pos: pos, Err: err}
}
