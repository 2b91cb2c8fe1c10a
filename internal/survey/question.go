package survey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	FirstQuestion Question = 1
	LastQuestion  Question = 17
)

var ErrInvalidQuestion = errors.New("invalid question identifier")

// Question identifies a questionnaire item, rendered as Q<n>.
type Question int

// AllQuestions returns Q1..Q17.
func AllQuestions() []Question {
	out := make([]Question, 0, LastQuestion)
	for q := FirstQuestion; q <= LastQuestion; q++ {
		out = append(out, q)
	}
	return out
}

// ParseQuestion accepts identifiers of the form Q<n> with n in 1..17.
func ParseQuestion(s string) (Question, error) {
	digits, ok := strings.CutPrefix(s, "Q")
	if !ok || digits == "" || strings.Trim(digits, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuestion, s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuestion, s)
	}
	q := Question(n)
	if !q.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuestion, s)
	}
	return q, nil
}

func (q Question) Valid() bool {
	return q >= FirstQuestion && q <= LastQuestion
}

func (q Question) String() string {
	return "Q" + strconv.Itoa(int(q))
}
