package models

import (
	"errors"
	"time"
)

var (
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrInvalidDatasetName = errors.New("invalid dataset name")
)

// Dataset describes one imported response matrix.
type Dataset struct {
	Name        string
	ImportID    string
	Source      string
	Respondents int
	Questions   []string
	ImportedAt  time.Time
}

// ResponseRow is a single stored answer.
type ResponseRow struct {
	Respondent int
	Question   int
	Code       string
}
