package arithgen

import (
	"strconv"
	"strings"
)

// ============================================================
// Exercise and answer lines
// ============================================================

// FormatExercise renders "<index>. <infix> =".
func FormatExercise(index int, e Expr, n Notation) string {
	return strconv.Itoa(index) + ". " + InfixWith(e, n) + " ="
}

// FormatAnswer renders "<index>. <value>".
func FormatAnswer(index int, v Rational) string {
	return strconv.Itoa(index) + ". " + v.String()
}

// SplitExerciseLine strips the "<index>. " label and the trailing "=".
// index is 0 when the line carries no numeric label.
func SplitExerciseLine(line string) (index int, expr string) {
	index, rest := splitLabel(line)
	rest = strings.TrimSpace(rest)
	if before, _, ok := strings.Cut(rest, "="); ok {
		rest = before
	}
	return index, strings.TrimSpace(rest)
}

// SplitAnswerLine strips the "<index>. " label.
func SplitAnswerLine(line string) (index int, value string) {
	index, rest := splitLabel(line)
	return index, strings.TrimSpace(rest)
}

func splitLabel(line string) (int, string) {
	s := strings.TrimSpace(line)
	label, rest, ok := strings.Cut(s, ".")
	if !ok {
		return 0, s
	}
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, s
	}
	return n, rest
}
