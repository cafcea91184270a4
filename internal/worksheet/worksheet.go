// Package worksheet moves problem sets and grades between the arithgen core
// and plain text files.
package worksheet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/njchilds90/arithgen"
)

// WriteProblems writes the numbered exercise and answer files.
func WriteProblems(exercisesPath, answersPath string, exprs []arithgen.Expr, n arithgen.Notation) error {
	exercises := make([]string, len(exprs))
	answers := make([]string, len(exprs))
	for i, e := range exprs {
		v, err := arithgen.Eval(e)
		if err != nil {
			return fmt.Errorf("problem %d: %w", i+1, err)
		}
		exercises[i] = arithgen.FormatExercise(i+1, e, n)
		answers[i] = arithgen.FormatAnswer(i+1, v)
	}
	if err := WriteLines(exercisesPath, exercises); err != nil {
		return err
	}
	return WriteLines(answersPath, answers)
}

// WriteGrade writes the two summary lines.
func WriteGrade(path string, report *arithgen.GradeReport) error {
	return WriteLines(path, report.Lines())
}

// GradeFiles reads both files and grades them line by line.
func GradeFiles(exercisesPath, answersPath string) (*arithgen.GradeReport, error) {
	exercises, err := ReadLines(exercisesPath)
	if err != nil {
		return nil, err
	}
	answers, err := ReadLines(answersPath)
	if err != nil {
		return nil, err
	}
	return arithgen.GradeLines(exercises, answers), nil
}

// WriteLines writes one line per entry, creating parent directories.
func WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// ReadLines returns the lines of path without line terminators.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
