package service

const (
	reasonSingleItem      = "at least two items are required"
	reasonTooFewResponses = "at least two respondents are required"
	reasonZeroVariance    = "total score variance is zero"
)

var alphaBands = []struct {
	min   float64
	label string
}{
	{0.9, "excellent"},
	{0.8, "good"},
	{0.7, "acceptable"},
	{0.6, "questionable"},
	{0.5, "poor"},
}

// InterpretAlpha maps a reliability coefficient onto the conventional
// qualitative bands.
func InterpretAlpha(alpha float64) string {
	for _, b := range alphaBands {
		if alpha >= b.min {
			return b.label
		}
	}
	return "unacceptable"
}

// sampleVariance uses the n-1 denominator; callers guarantee len(xs) >= 2.
func sampleVariance(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs)-1)
}

// Reliability computes Cronbach's alpha over the numeric score matrix.
// Degenerate inputs are reported as not applicable instead of NaN.
func (a *Aggregator) Reliability() Reliability {
	k := a.matrix.NumQuestions()
	n := a.matrix.Respondents()
	out := Reliability{Items: k}

	switch {
	case k < 2:
		out.Reason = reasonSingleItem
		return out
	case n < 2:
		out.Reason = reasonTooFewResponses
		return out
	}

	scores := a.matrix.Scores()
	totals := make([]float64, n)
	var sumItemVar float64
	column := make([]float64, n)
	for i := 0; i < k; i++ {
		for r := 0; r < n; r++ {
			column[r] = scores[r][i]
			totals[r] += scores[r][i]
		}
		sumItemVar += sampleVariance(column)
	}

	totalVar := sampleVariance(totals)
	if totalVar == 0 {
		out.Reason = reasonZeroVariance
		return out
	}

	kf := float64(k)
	alpha := kf / (kf - 1) * (1 - sumItemVar/totalVar)

	out.Applicable = true
	out.Alpha = roundTo(alpha, reliabilityPlaces)
	out.Interpretation = InterpretAlpha(alpha)
	return out
}
