package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyMatrix  = errors.New("response matrix is empty")
	ErrRaggedRow    = errors.New("row length does not match question count")
	ErrInvalidValue = errors.New("invalid scale value")
)

// InvalidValuesError lists every distinct cell value outside the scale.
type InvalidValuesError struct {
	Values []string
}

func (e *InvalidValuesError) Error() string {
	quoted := make([]string, len(e.Values))
	for i, v := range e.Values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidValue, strings.Join(quoted, ", "))
}

func (e *InvalidValuesError) Unwrap() error {
	return ErrInvalidValue
}

// Matrix is an immutable respondents × questions table of scale codes.
// Questions are held in ascending order.
type Matrix struct {
	questions []Question
	cells     [][]ScaleCode
}

// NewMatrix validates raw cells and builds a Matrix. rows[r][i] is the
// answer of respondent r to questions[i]. Columns are reordered by
// question number.
func NewMatrix(questions []Question, rows [][]string) (*Matrix, error) {
	if len(questions) == 0 || len(rows) == 0 {
		return nil, ErrEmptyMatrix
	}

	seen := make(map[Question]bool, len(questions))
	for _, q := range questions {
		if !q.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidQuestion, int(q))
		}
		if seen[q] {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidQuestion, q)
		}
		seen[q] = true
	}

	order := make([]int, len(questions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return questions[order[a]] < questions[order[b]]
	})

	sorted := make([]Question, len(questions))
	for i, src := range order {
		sorted[i] = questions[src]
	}

	invalid := make(map[string]bool)
	cells := make([][]ScaleCode, len(rows))
	for r, row := range rows {
		if len(row) != len(questions) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRow, r+1, len(row), len(questions))
		}
		out := make([]ScaleCode, len(row))
		for i, src := range order {
			c := ScaleCode(row[src])
			if !c.Valid() {
				invalid[row[src]] = true
			}
			out[i] = c
		}
		cells[r] = out
	}

	if len(invalid) > 0 {
		values := make([]string, 0, len(invalid))
		for v := range invalid {
			values = append(values, v)
		}
		sort.Strings(values)
		return nil, &InvalidValuesError{Values: values}
	}

	return &Matrix{questions: sorted, cells: cells}, nil
}

// Questions returns the question identifiers in column order.
func (m *Matrix) Questions() []Question {
	out := make([]Question, len(m.questions))
	copy(out, m.questions)
	return out
}

func (m *Matrix) Respondents() int {
	return len(m.cells)
}

func (m *Matrix) NumQuestions() int {
	return len(m.questions)
}

// TotalCells is respondents × questions.
func (m *Matrix) TotalCells() int {
	return len(m.cells) * len(m.questions)
}

// Cell returns the answer of respondent r to the i-th question column.
func (m *Matrix) Cell(r, i int) ScaleCode {
	return m.cells[r][i]
}

// Column returns a copy of the i-th question column.
func (m *Matrix) Column(i int) []ScaleCode {
	out := make([]ScaleCode, len(m.cells))
	for r, row := range m.cells {
		out[r] = row[i]
	}
	return out
}

// Rows returns a copy of all cells, row-major.
func (m *Matrix) Rows() [][]ScaleCode {
	out := make([][]ScaleCode, len(m.cells))
	for r, row := range m.cells {
		out[r] = make([]ScaleCode, len(row))
		copy(out[r], row)
	}
	return out
}

// Scores converts every cell to its numeric score.
func (m *Matrix) Scores() [][]float64 {
	out := make([][]float64, len(m.cells))
	for r, row := range m.cells {
		out[r] = make([]float64, len(row))
		for i, c := range row {
			out[r][i] = float64(c.Score())
		}
	}
	return out
}
