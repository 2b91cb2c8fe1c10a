package survey

import (
	"errors"
	"fmt"
)

// ScaleCode is one answer on the six-point agreement scale.
type ScaleCode string

const (
	StronglyAgree    ScaleCode = "SS"
	Agree            ScaleCode = "S"
	SomewhatAgree    ScaleCode = "CS"
	SomewhatDisagree ScaleCode = "CTS"
	Disagree         ScaleCode = "TS"
	StronglyDisagree ScaleCode = "STS"
)

// Category groups scale codes into sentiment buckets.
type Category string

const (
	Positive Category = "positive"
	Neutral  Category = "neutral"
	Negative Category = "negative"
)

var ErrInvalidScaleCode = errors.New("invalid scale code")

// scaleOrder is the canonical order, highest score first. Tie-breaks
// across codes always resolve to the earliest entry.
var scaleOrder = []ScaleCode{
	StronglyAgree,
	Agree,
	SomewhatAgree,
	SomewhatDisagree,
	Disagree,
	StronglyDisagree,
}

var categoryOrder = []Category{Positive, Neutral, Negative}

var scaleScores = map[ScaleCode]int{
	StronglyAgree:    6,
	Agree:            5,
	SomewhatAgree:    4,
	SomewhatDisagree: 3,
	Disagree:         2,
	StronglyDisagree: 1,
}

var scaleCategories = map[ScaleCode]Category{
	StronglyAgree:    Positive,
	Agree:            Positive,
	SomewhatAgree:    Neutral,
	SomewhatDisagree: Negative,
	Disagree:         Negative,
	StronglyDisagree: Negative,
}

// Scale returns the scale codes in canonical order.
func Scale() []ScaleCode {
	out := make([]ScaleCode, len(scaleOrder))
	copy(out, scaleOrder)
	return out
}

// Categories returns the categories in canonical order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseScaleCode matches s exactly against the scale. No trimming or
// case folding is applied.
func ParseScaleCode(s string) (ScaleCode, error) {
	c := ScaleCode(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScaleCode, s)
	}
	return c, nil
}

func (c ScaleCode) Valid() bool {
	_, ok := scaleScores[c]
	return ok
}

// Score returns the numeric score (6 for SS down to 1 for STS), or 0 for
// an unknown code.
func (c ScaleCode) Score() int {
	return scaleScores[c]
}

func (c ScaleCode) Category() Category {
	return scaleCategories[c]
}

func (c ScaleCode) String() string {
	return string(c)
}
