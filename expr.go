package arithgen

import (
	"fmt"
	"strings"
)

// ============================================================
// Operators
// ============================================================

// Op is one of the four binary operators.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

// Ops lists the operators in generation order.
var Ops = [...]Op{OpAdd, OpSub, OpMul, OpDiv}

// Notation selects the operator alphabet used when rendering infix text.
type Notation int

const (
	Unicode Notation = iota // + - × ÷
	ASCII                   // + - * /
)

func (o Op) precedence() int {
	if o == OpMul || o == OpDiv {
		return 2
	}
	return 1
}

func (o Op) commutative() bool { return o == OpAdd || o == OpMul }

// Symbol renders the operator in the given notation.
func (o Op) Symbol(n Notation) string {
	if n == Unicode {
		switch o {
		case OpMul:
			return "×"
		case OpDiv:
			return "÷"
		}
	}
	return string(o)
}

func (o Op) String() string { return o.Symbol(ASCII) }

// ParseOp accepts both operator alphabets.
func ParseOp(s string) (Op, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*", "×":
		return OpMul, nil
	case "/", "÷":
		return OpDiv, nil
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

func (o Op) apply(l, r Rational) (Rational, error) {
	switch o {
	case OpAdd:
		return l.Add(r), nil
	case OpSub:
		return l.Sub(r), nil
	case OpMul:
		return l.Mul(r), nil
	case OpDiv:
		return l.Div(r)
	}
	return Rational{}, fmt.Errorf("unknown operator %q", byte(o))
}

// ============================================================
// Expr — Leaf | Binary
// ============================================================

// Expr is an immutable expression tree. The only implementations are *Leaf
// and *Binary.
type Expr interface {
	String() string
	exprType() string
}

// Leaf is a terminal operand.
type Leaf struct{ Value Rational }

// Binary exclusively owns its two subtrees.
type Binary struct {
	Op          Op
	Left, Right Expr
}

func Lit(v Rational) *Leaf                { return &Leaf{Value: v} }
func Bin(op Op, left, right Expr) *Binary { return &Binary{Op: op, Left: left, Right: right} }
func AddOf(left, right Expr) *Binary      { return Bin(OpAdd, left, right) }
func SubOf(left, right Expr) *Binary      { return Bin(OpSub, left, right) }
func MulOf(left, right Expr) *Binary      { return Bin(OpMul, left, right) }
func DivOf(left, right Expr) *Binary      { return Bin(OpDiv, left, right) }
func (l *Leaf) String() string            { return l.Value.String() }
func (l *Leaf) exprType() string          { return "leaf" }
func (b *Binary) String() string          { return Infix(b) }
func (b *Binary) exprType() string        { return "binary" }

// ============================================================
// Rendering
// ============================================================

// Infix renders e in Unicode notation with minimal parentheses.
func Infix(e Expr) string { return InfixWith(e, Unicode) }

// InfixWith renders e with operators surrounded by single spaces. A child is
// parenthesized when its precedence is lower than its parent's, or equal and
// it is the right operand.
func InfixWith(e Expr, n Notation) string {
	var sb strings.Builder
	writeInfix(&sb, e, n, 0, false)
	return sb.String()
}

func writeInfix(sb *strings.Builder, e Expr, n Notation, parentPrec int, right bool) {
	switch node := e.(type) {
	case *Leaf:
		sb.WriteString(node.Value.String())
	case *Binary:
		prec := node.Op.precedence()
		paren := prec < parentPrec || (prec == parentPrec && right)
		if paren {
			sb.WriteByte('(')
		}
		writeInfix(sb, node.Left, n, prec, false)
		sb.WriteByte(' ')
		sb.WriteString(node.Op.Symbol(n))
		sb.WriteByte(' ')
		writeInfix(sb, node.Right, n, prec, true)
		if paren {
			sb.WriteByte(')')
		}
	}
}

// Canonical renders a key that is identical across commutative reorderings.
// It is used only for de-duplication.
func Canonical(e Expr) string {
	switch node := e.(type) {
	case *Leaf:
		return node.Value.String()
	case *Binary:
		l, r := Canonical(node.Left), Canonical(node.Right)
		op := " " + node.Op.String() + " "
		s := "(" + l + op + r + ")"
		if node.Op.commutative() {
			if alt := "(" + r + op + l + ")"; alt < s {
				return alt
			}
		}
		return s
	}
	return ""
}

// ============================================================
// Evaluation and validity
// ============================================================

// Eval computes the exact value of e.
func Eval(e Expr) (Rational, error) {
	switch node := e.(type) {
	case *Leaf:
		return node.Value, nil
	case *Binary:
		l, err := Eval(node.Left)
		if err != nil {
			return Rational{}, err
		}
		r, err := Eval(node.Right)
		if err != nil {
			return Rational{}, err
		}
		return node.Op.apply(l, r)
	}
	return Rational{}, fmt.Errorf("unknown expression %T", e)
}

// Validate checks every node bottom-up: no subtraction may go negative and
// every division must have a non-zero divisor and a non-integer quotient.
func Validate(e Expr) error {
	_, err := validate(e)
	return err
}

// Valid reports whether Validate succeeds.
func Valid(e Expr) bool { return Validate(e) == nil }

func validate(e Expr) (Rational, error) {
	switch node := e.(type) {
	case *Leaf:
		return node.Value, nil
	case *Binary:
		l, err := validate(node.Left)
		if err != nil {
			return Rational{}, err
		}
		r, err := validate(node.Right)
		if err != nil {
			return Rational{}, err
		}
		switch node.Op {
		case OpSub:
			if l.Cmp(r) < 0 {
				return Rational{}, fmt.Errorf("%s - %s: %w", l, r, ErrNegativeIntermediate)
			}
		case OpDiv:
			if r.IsZero() {
				return Rational{}, fmt.Errorf("%s ÷ %s: %w", l, r, ErrDivisionByZero)
			}
		}
		v, err := node.Op.apply(l, r)
		if err != nil {
			return Rational{}, err
		}
		if node.Op == OpDiv && v.IsInteger() {
			return Rational{}, fmt.Errorf("%s ÷ %s = %s: %w", l, r, v, ErrIntegerQuotient)
		}
		return v, nil
	}
	return Rational{}, fmt.Errorf("unknown expression %T", e)
}

// CountOps returns the number of Binary nodes in e.
func CountOps(e Expr) int {
	if b, ok := e.(*Binary); ok {
		return 1 + CountOps(b.Left) + CountOps(b.Right)
	}
	return 0
}

// Depth returns the height of e; a Leaf has depth 0.
func Depth(e Expr) int {
	if b, ok := e.(*Binary); ok {
		return 1 + max(Depth(b.Left), Depth(b.Right))
	}
	return 0
}
