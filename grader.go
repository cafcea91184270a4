package arithgen

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Grader
// ============================================================

// Verdict classifies one graded item.
type Verdict int

const (
	Wrong Verdict = iota
	Correct
)

func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "wrong"
}

// GradeItem is the record of one position. A nil error field means that side
// parsed; an item with any error is Wrong.
type GradeItem struct {
	Index        int
	Exercise     string
	Answer       string
	Expected     Rational
	ExpectedErr  error
	Submitted    Rational
	SubmittedErr error
	Verdict      Verdict
}

// GradeReport lists every graded position exactly once.
type GradeReport struct {
	Items   []GradeItem
	Correct []int
	Wrong   []int
}

// Grade re-evaluates each exercise expression and compares it with the answer
// at the same position by exact fraction equality. Items are numbered from 1.
// A position present in only one list is graded Wrong.
func Grade(exercises, answers []string) *GradeReport {
	n := max(len(exercises), len(answers))
	report := &GradeReport{Items: make([]GradeItem, 0, n)}
	for i := 0; i < n; i++ {
		item := GradeItem{Index: i + 1}
		if i < len(exercises) {
			item.Exercise = exercises[i]
			item.Expected, item.ExpectedErr = evalText(exercises[i])
		} else {
			item.ExpectedErr = fmt.Errorf("item %d: no exercise: %w", i+1, ErrUnexpectedEnd)
		}
		if i < len(answers) {
			item.Answer = answers[i]
			item.Submitted, item.SubmittedErr = ParseRational(answers[i])
		} else {
			item.SubmittedErr = fmt.Errorf("item %d: no answer: %w", i+1, ErrUnexpectedEnd)
		}
		if item.ExpectedErr == nil && item.SubmittedErr == nil && item.Expected.Equal(item.Submitted) {
			item.Verdict = Correct
			report.Correct = append(report.Correct, item.Index)
		} else {
			report.Wrong = append(report.Wrong, item.Index)
		}
		gradedItemsTotal.WithLabelValues(item.Verdict.String()).Inc()
		report.Items = append(report.Items, item)
	}
	return report
}

// GradeLines grades labelled exercise and answer lines ("1. 1 + 2 =" and
// "1. 3"). Blank lines are ignored.
func GradeLines(exerciseLines, answerLines []string) *GradeReport {
	var exercises, answers []string
	for _, line := range exerciseLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		_, text := SplitExerciseLine(line)
		exercises = append(exercises, text)
	}
	for _, line := range answerLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		_, text := SplitAnswerLine(line)
		answers = append(answers, text)
	}
	return Grade(exercises, answers)
}

func evalText(text string) (Rational, error) {
	e, err := Parse(text)
	if err != nil {
		return Rational{}, err
	}
	return Eval(e)
}

// String renders the two summary lines, e.g.
//
//	Correct: 1 (1)
//	Wrong: 1 (2)
func (r *GradeReport) String() string {
	return fmt.Sprintf("Correct: %d (%s)\nWrong: %d (%s)",
		len(r.Correct), joinInts(r.Correct), len(r.Wrong), joinInts(r.Wrong))
}

// Lines returns the summary as two lines without trailing newlines.
func (r *GradeReport) Lines() []string { return strings.Split(r.String(), "\n") }

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
