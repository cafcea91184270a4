package arithgen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/arithgen"
)

func mustEval(t *testing.T, text string) string {
	t.Helper()
	e, err := arithgen.Parse(text)
	require.NoError(t, err, "parse %q", text)
	v, err := arithgen.Eval(e)
	require.NoError(t, err, "eval %q", text)
	return v.String()
}

func TestParse_Precedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 × 3":       "7",
		"(1 + 2) × 3":     "9",
		"1 + 2 * 3":       "7",
		"2 × 3 + 1":       "7",
		"1 + 2 × (3 ÷ 4)": "2'1/2",
		"1/2 + 1/3":       "5/6",
		"1'1/2 × 2":       "3",
		"((((5))))":       "5",
		"7":               "7",
	}
	for text, want := range cases {
		assert.Equal(t, want, mustEval(t, text), text)
	}
}

func TestParse_LeftAssociative(t *testing.T) {
	assert.Equal(t, "3", mustEval(t, "10 - 4 - 3"))
	assert.Equal(t, "5", mustEval(t, "10 - (4 - 1) - 2"))
	assert.Equal(t, "1/6", mustEval(t, "1 ÷ 2 ÷ 3"))
	assert.Equal(t, "6", mustEval(t, "12 ÷ 4 × 2"))

	e, err := arithgen.Parse("8 - 2 - 1")
	require.NoError(t, err)
	b, ok := e.(*arithgen.Binary)
	require.True(t, ok)
	_, leftIsBinary := b.Left.(*arithgen.Binary)
	assert.True(t, leftIsBinary, "8 - 2 - 1 should group as (8 - 2) - 1")
}

func TestParse_FractionBarVersusDivision(t *testing.T) {
	assert.Equal(t, "12", mustEval(t, "6 / 1/2"))
	assert.Equal(t, "3", mustEval(t, "6/2 ÷ 1"), "6/2 is the number 3")
	assert.Equal(t, "3", mustEval(t, "6 / 2"))
	assert.Equal(t, "1/4", mustEval(t, "1/2 / 2"))
	assert.Equal(t, "1'1/2", mustEval(t, "(1 + 2) / 2"))
	assert.Equal(t, "1/4", mustEval(t, "1/2/2"), "only the first bar joins two digits")
}

func TestParse_Whitespace(t *testing.T) {
	for _, text := range []string{"1+2×3", "  1 +2 ×3  ", "1\t+\t2 × 3", "(1)+(2×3)"} {
		assert.Equal(t, "7", mustEval(t, text), text)
	}
}

func TestParse_RoundTripGenerated(t *testing.T) {
	g, err := arithgen.NewGenerator(arithgen.GeneratorConfig{Range: 10}, arithgen.WithSeed(7))
	require.NoError(t, err)
	exprs, err := g.Generate(200)
	require.NoError(t, err)

	for _, e := range exprs {
		want, err := arithgen.Eval(e)
		require.NoError(t, err)
		for _, notation := range []arithgen.Notation{arithgen.Unicode, arithgen.ASCII} {
			text := arithgen.InfixWith(e, notation)
			back, err := arithgen.Parse(text)
			require.NoError(t, err, text)
			assert.Equal(t, arithgen.Infix(e), arithgen.Infix(back), text)
			assert.Equal(t, arithgen.Canonical(e), arithgen.Canonical(back), text)
			got, err := arithgen.Eval(back)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "%s: want %s, got %s", text, want, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		text string
		want error
	}{
		{"", arithgen.ErrUnexpectedEnd},
		{"   ", arithgen.ErrUnexpectedEnd},
		{"1 +", arithgen.ErrUnexpectedEnd},
		{"(1 + 2", arithgen.ErrUnmatchedParenthesis},
		{"1 + 2)", arithgen.ErrUnmatchedParenthesis},
		{")", arithgen.ErrUnmatchedParenthesis},
		{"1 2", arithgen.ErrExpectedOperator},
		{"(1 + 2 3)", arithgen.ErrExpectedOperator},
		{"1 + x", arithgen.ErrMalformedNumber},
		{"1.5 + 1", arithgen.ErrMalformedNumber},
		{"1'2 + 1", arithgen.ErrMalformedNumber},
		{"3/0", arithgen.ErrMalformedNumber},
		{"1 + + 2", arithgen.ErrMalformedNumber},
	}
	for _, c := range cases {
		_, err := arithgen.Parse(c.text)
		if !errors.Is(err, c.want) {
			t.Errorf("Parse(%q): want %v, got %v", c.text, c.want, err)
			continue
		}
		var pe *arithgen.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): want *ParseError, got %T", c.text, err)
		} else if pe.Input != c.text {
			t.Errorf("Parse(%q): ParseError.Input = %q", c.text, pe.Input)
		}
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := arithgen.Parse("1 + x")
	var pe *arithgen.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Pos)

	_, err = arithgen.Parse("2 × (1 + 3")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Pos, "unclosed parenthesis is reported at its opening")
}

func TestParseValid(t *testing.T) {
	_, err := arithgen.ParseValid("1 - 2")
	assert.ErrorIs(t, err, arithgen.ErrNegativeIntermediate)

	_, err = arithgen.ParseValid("4 ÷ 2")
	assert.ErrorIs(t, err, arithgen.ErrIntegerQuotient)

	e, err := arithgen.ParseValid("3 ÷ 2")
	require.NoError(t, err)
	assert.Equal(t, "3 ÷ 2", arithgen.Infix(e))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { arithgen.MustParse("(") })
	assert.NotPanics(t, func() { arithgen.MustParse("1 + 1") })
}
