// Package arithgen synthesizes and grades elementary arithmetic exercises over
// natural numbers, proper fractions and mixed numbers.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat), never floating point
//   - Expression trees shared by generation, parsing and grading
//   - Deterministic output when a seed is supplied
//   - Embeddable in CLI tools and HTTP tool servers
package arithgen

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Rational — exact fraction in lowest terms
// ============================================================

// Rational is an immutable exact fraction. The denominator is always positive
// and the fraction is always reduced. The zero value is 0.
type Rational struct{ val *big.Rat }

// NewRational returns num/den reduced to lowest terms.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, fmt.Errorf("%d/0: %w", num, ErrDivisionByZero)
	}
	return Rational{val: new(big.Rat).SetFrac64(num, den)}, nil
}

// R is NewRational for literals; it panics on a zero denominator.
func R(num, den int64) Rational {
	r, err := NewRational(num, den)
	if err != nil {
		panic("arithgen: " + err.Error())
	}
	return r
}

// Int returns the whole number n.
func Int(n int64) Rational { return Rational{val: new(big.Rat).SetInt64(n)} }

func (r Rational) rat() *big.Rat {
	if r.val == nil {
		return new(big.Rat)
	}
	return r.val
}

func (r Rational) Add(o Rational) Rational { return Rational{val: new(big.Rat).Add(r.rat(), o.rat())} }
func (r Rational) Sub(o Rational) Rational { return Rational{val: new(big.Rat).Sub(r.rat(), o.rat())} }
func (r Rational) Mul(o Rational) Rational { return Rational{val: new(big.Rat).Mul(r.rat(), o.rat())} }

// Div returns r/o. A non-terminating result is fine; only a zero divisor fails.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.IsZero() {
		return Rational{}, fmt.Errorf("%s ÷ 0: %w", r, ErrDivisionByZero)
	}
	return Rational{val: new(big.Rat).Quo(r.rat(), o.rat())}, nil
}

// Cmp compares by cross-multiplication: -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	a := new(big.Int).Mul(r.rat().Num(), o.rat().Denom())
	b := new(big.Int).Mul(o.rat().Num(), r.rat().Denom())
	return a.Cmp(b)
}

func (r Rational) Equal(o Rational) bool { return r.Cmp(o) == 0 }
func (r Rational) IsZero() bool          { return r.rat().Sign() == 0 }
func (r Rational) IsInteger() bool       { return r.rat().IsInt() }
func (r Rational) Sign() int             { return r.rat().Sign() }

// Num and Denom return copies of the reduced numerator and denominator.
func (r Rational) Num() *big.Int   { return new(big.Int).Set(r.rat().Num()) }
func (r Rational) Denom() *big.Int { return new(big.Int).Set(r.rat().Denom()) }

// String renders N, num/den or whole'num/den.
func (r Rational) String() string {
	v := r.rat()
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}
	num := new(big.Int).Abs(v.Num())
	den := v.Denom()
	if den.Cmp(big.NewInt(1)) == 0 {
		return sign + num.String()
	}
	whole, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if whole.Sign() == 0 {
		return sign + rem.String() + "/" + den.String()
	}
	return sign + whole.String() + "'" + rem.String() + "/" + den.String()
}

// ParseRational is the inverse of String. It accepts N, num/den and
// whole'num/den, each optionally preceded by '-'.
func ParseRational(s string) (Rational, error) {
	text := strings.TrimSpace(s)
	neg := strings.HasPrefix(text, "-")
	body := strings.TrimPrefix(text, "-")

	var whole, frac string
	mixed := false
	if i := strings.IndexByte(body, '\''); i >= 0 {
		whole, frac, mixed = body[:i], body[i+1:], true
		if !strings.Contains(frac, "/") {
			return Rational{}, malformed(s, "mixed number without fraction part")
		}
	} else {
		frac = body
	}

	out := new(big.Rat)
	if n, d, ok := strings.Cut(frac, "/"); ok {
		num, err := parseDigits(s, n)
		if err != nil {
			return Rational{}, err
		}
		den, err := parseDigits(s, d)
		if err != nil {
			return Rational{}, err
		}
		if den.Sign() == 0 {
			return Rational{}, malformed(s, "zero denominator")
		}
		out.SetFrac(num, den)
	} else {
		num, err := parseDigits(s, frac)
		if err != nil {
			return Rational{}, err
		}
		out.SetInt(num)
	}

	if mixed {
		w, err := parseDigits(s, whole)
		if err != nil {
			return Rational{}, err
		}
		out.Add(out, new(big.Rat).SetInt(w))
	}
	if neg {
		out.Neg(out)
	}
	return Rational{val: out}, nil
}

// MustParseRational panics if s is not a valid number.
func MustParseRational(s string) Rational {
	r, err := ParseRational(s)
	if err != nil {
		panic("arithgen: " + err.Error())
	}
	return r
}

func parseDigits(input, part string) (*big.Int, error) {
	if part == "" {
		return nil, malformed(input, "empty component")
	}
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return nil, malformed(input, fmt.Sprintf("unexpected %q", part[i]))
		}
	}
	n, ok := new(big.Int).SetString(part, 10)
	if !ok {
		return nil, malformed(input, "not a number")
	}
	return n, nil
}

func malformed(input, why string) error {
	return fmt.Errorf("%q: %s: %w", input, why, ErrMalformedNumber)
}
