package service

import (
	"fmt"
	"strconv"

	"github.com/godilite/survey-stats/internal/survey"
)

const (
	percentPlaces     = 1
	meanPlaces        = 2
	reliabilityPlaces = 3
)

// Aggregator computes descriptive statistics over one matrix snapshot.
// All methods are read-only and return freshly computed values.
type Aggregator struct {
	matrix *survey.Matrix
}

// NewAggregator wraps a validated matrix.
func NewAggregator(m *survey.Matrix) *Aggregator {
	if m == nil {
		panic("matrix must not be nil")
	}
	return &Aggregator{matrix: m}
}

// Matrix returns the underlying snapshot.
func (a *Aggregator) Matrix() *survey.Matrix {
	return a.matrix
}

// roundTo rounds the same way fmt's %.Nf verb does.
func roundTo(v float64, places int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return r
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(float64(count)/float64(total)*100, percentPlaces)
}

func (a *Aggregator) codeCounts() map[survey.ScaleCode]int {
	counts := make(map[survey.ScaleCode]int, 6)
	for _, row := range a.matrix.Rows() {
		for _, c := range row {
			counts[c]++
		}
	}
	return counts
}

// Distribution counts every scale code across all cells. Most is the first
// code in canonical order with the highest count; Least is the first code
// in canonical order with the lowest non-zero count.
func (a *Aggregator) Distribution() ScaleDistribution {
	total := a.matrix.TotalCells()
	counts := a.codeCounts()

	dist := ScaleDistribution{
		TotalCells: total,
		Counts:     make([]CodeCount, 0, len(survey.Scale())),
	}

	mostSet, leastSet := false, false
	for _, code := range survey.Scale() {
		cc := CodeCount{
			Code:    code.String(),
			Count:   counts[code],
			Percent: percent(counts[code], total),
		}
		dist.Counts = append(dist.Counts, cc)

		if !mostSet || cc.Count > dist.Most.Count {
			dist.Most = cc
			mostSet = true
		}
		if cc.Count > 0 && (!leastSet || cc.Count < dist.Least.Count) {
			dist.Least = cc
			leastSet = true
		}
	}
	return dist
}

func (a *Aggregator) questionCounts(code survey.ScaleCode) []int {
	counts := make([]int, a.matrix.NumQuestions())
	for _, row := range a.matrix.Rows() {
		for i, c := range row {
			if c == code {
				counts[i]++
			}
		}
	}
	return counts
}

// TopQuestionForCode returns the question where code was chosen most often.
// Ties go to the lowest question number; when no question contains code
// the first question is reported with a zero count.
func (a *Aggregator) TopQuestionForCode(code survey.ScaleCode) (QuestionCount, error) {
	if !code.Valid() {
		return QuestionCount{}, fmt.Errorf("%w: %q", survey.ErrInvalidScaleCode, string(code))
	}

	questions := a.matrix.Questions()
	counts := a.questionCounts(code)

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}

	return QuestionCount{
		Question: questions[best].String(),
		Code:     code.String(),
		Count:    counts[best],
		Percent:  percent(counts[best], a.matrix.Respondents()),
	}, nil
}

// QuestionsContaining lists every question with at least one answer equal
// to code, in question order. The result is empty, not nil, when none do.
func (a *Aggregator) QuestionsContaining(code survey.ScaleCode) ([]QuestionCount, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %q", survey.ErrInvalidScaleCode, string(code))
	}

	questions := a.matrix.Questions()
	out := make([]QuestionCount, 0)
	for i, n := range a.questionCounts(code) {
		if n == 0 {
			continue
		}
		out = append(out, QuestionCount{
			Question: questions[i].String(),
			Code:     code.String(),
			Count:    n,
			Percent:  percent(n, a.matrix.Respondents()),
		})
	}
	return out, nil
}

// OverallMean averages the numeric score of every cell.
func (a *Aggregator) OverallMean() float64 {
	var sum float64
	for _, row := range a.matrix.Scores() {
		for _, v := range row {
			sum += v
		}
	}
	return roundTo(sum/float64(a.matrix.TotalCells()), meanPlaces)
}

// MeanScores reports the overall mean plus per-question means and their
// extremes. Ties go to the lowest question number.
func (a *Aggregator) MeanScores() MeanScores {
	questions := a.matrix.Questions()
	scores := a.matrix.Scores()
	n := float64(a.matrix.Respondents())

	raw := make([]float64, len(questions))
	for _, row := range scores {
		for i, v := range row {
			raw[i] += v
		}
	}

	out := MeanScores{
		Overall:     a.OverallMean(),
		PerQuestion: make([]QuestionMean, len(questions)),
	}

	hi, lo := 0, 0
	for i := range raw {
		raw[i] /= n
		out.PerQuestion[i] = QuestionMean{
			Question: questions[i].String(),
			Mean:     roundTo(raw[i], meanPlaces),
		}
		if raw[i] > raw[hi] {
			hi = i
		}
		if raw[i] < raw[lo] {
			lo = i
		}
	}
	out.Highest = out.PerQuestion[hi]
	out.Lowest = out.PerQuestion[lo]
	return out
}

// CategoryDistribution rolls every cell up to positive, neutral or negative.
func (a *Aggregator) CategoryDistribution() CategoryDistribution {
	total := a.matrix.TotalCells()
	byCategory := make(map[survey.Category]int, 3)
	for code, n := range a.codeCounts() {
		byCategory[code.Category()] += n
	}

	out := CategoryDistribution{
		TotalCells: total,
		Counts:     make([]CategoryCount, 0, 3),
	}
	for _, cat := range survey.Categories() {
		out.Counts = append(out.Counts, CategoryCount{
			Category: string(cat),
			Count:    byCategory[cat],
			Percent:  percent(byCategory[cat], total),
		})
	}
	return out
}

// Report bundles every statistic for presentation layers.
func (a *Aggregator) Report() Report {
	questions := a.matrix.Questions()
	names := make([]string, len(questions))
	for i, q := range questions {
		names[i] = q.String()
	}

	top := make([]QuestionCount, 0, len(survey.Scale()))
	for _, code := range survey.Scale() {
		qc, _ := a.TopQuestionForCode(code)
		top = append(top, qc)
	}
	withSTS, _ := a.QuestionsContaining(survey.StronglyDisagree)

	return Report{
		Respondents:          a.matrix.Respondents(),
		Questions:            names,
		Distribution:         a.Distribution(),
		TopQuestions:         top,
		QuestionsWithSTS:     withSTS,
		Means:                a.MeanScores(),
		CategoryDistribution: a.CategoryDistribution(),
		Reliability:          a.Reliability(),
	}
}
