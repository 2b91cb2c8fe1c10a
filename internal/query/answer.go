// Package query implements the single-line answer protocol used by
// existing command-line callers: one query name in, one line out.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
)

var ErrUnknownQuery = errors.New("unknown query")

// Category labels as printed by q13.
var categoryLabels = map[string]string{
	string(survey.Positive): "positif",
	string(survey.Neutral):  "netral",
	string(survey.Negative): "negatif",
}

// topQuestionQueries maps q3..q8 onto the scale in canonical order.
var topQuestionQueries = map[string]survey.ScaleCode{
	"q3": survey.StronglyAgree,
	"q4": survey.Agree,
	"q5": survey.SomewhatAgree,
	"q6": survey.SomewhatDisagree,
	"q7": survey.Disagree,
	"q8": survey.StronglyDisagree,
}

type answerFunc func(*service.Aggregator) (string, error)

var answers = map[string]answerFunc{
	"q1":  mostChosen,
	"q2":  leastChosen,
	"q9":  questionsWithSTS,
	"q10": overallMean,
	"q11": highestMean,
	"q12": lowestMean,
	"q13": categoryBreakdown,
}

// Names lists the supported queries in numeric order.
func Names() []string {
	names := make([]string, 0, len(answers)+len(topQuestionQueries))
	for n := range answers {
		names = append(names, n)
	}
	for n := range topQuestionQueries {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// Known reports whether name is a supported query.
func Known(name string) bool {
	name = strings.TrimSpace(name)
	if _, ok := topQuestionQueries[name]; ok {
		return true
	}
	_, ok := answers[name]
	return ok
}

// Answer evaluates the named query. Surrounding whitespace is ignored.
func Answer(agg *service.Aggregator, name string) (string, error) {
	name = strings.TrimSpace(name)
	if code, ok := topQuestionQueries[name]; ok {
		qc, err := agg.TopQuestionForCode(code)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s|%d|%.1f", qc.Question, qc.Count, qc.Percent), nil
	}

	fn, ok := answers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	return fn(agg)
}

func mostChosen(agg *service.Aggregator) (string, error) {
	m := agg.Distribution().Most
	return fmt.Sprintf("%s|%d|%.1f", m.Code, m.Count, m.Percent), nil
}

func leastChosen(agg *service.Aggregator) (string, error) {
	l := agg.Distribution().Least
	return fmt.Sprintf("%s|%d|%.1f", l.Code, l.Count, l.Percent), nil
}

func questionsWithSTS(agg *service.Aggregator) (string, error) {
	qs, err := agg.QuestionsContaining(survey.StronglyDisagree)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = fmt.Sprintf("%s:%.1f", q.Question, q.Percent)
	}
	return strings.Join(parts, "|"), nil
}

func overallMean(agg *service.Aggregator) (string, error) {
	return fmt.Sprintf("%.2f", agg.OverallMean()), nil
}

func highestMean(agg *service.Aggregator) (string, error) {
	h := agg.MeanScores().Highest
	return fmt.Sprintf("%s:%.2f", h.Question, h.Mean), nil
}

func lowestMean(agg *service.Aggregator) (string, error) {
	l := agg.MeanScores().Lowest
	return fmt.Sprintf("%s:%.2f", l.Question, l.Mean), nil
}

func categoryBreakdown(agg *service.Aggregator) (string, error) {
	counts := agg.CategoryDistribution().Counts
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s=%d:%.1f", categoryLabels[c.Category], c.Count, c.Percent)
	}
	return strings.Join(parts, "|"), nil
}
