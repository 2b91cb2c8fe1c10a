package service

import "time"

type CodeCount struct {
	Code    string  `json:"code" yaml:"code"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type ScaleDistribution struct {
	TotalCells int         `json:"total_cells" yaml:"total_cells"`
	Counts     []CodeCount `json:"counts" yaml:"counts"`
	Most       CodeCount   `json:"most" yaml:"most"`
	Least      CodeCount   `json:"least" yaml:"least"`
}

// QuestionCount is the number of respondents giving Code to Question.
// Percent is relative to the respondent count.
type QuestionCount struct {
	Question string  `json:"question" yaml:"question"`
	Code     string  `json:"code" yaml:"code"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

type QuestionMean struct {
	Question string  `json:"question" yaml:"question"`
	Mean     float64 `json:"mean" yaml:"mean"`
}

type MeanScores struct {
	Overall     float64        `json:"overall" yaml:"overall"`
	PerQuestion []QuestionMean `json:"per_question" yaml:"per_question"`
	Highest     QuestionMean   `json:"highest" yaml:"highest"`
	Lowest      QuestionMean   `json:"lowest" yaml:"lowest"`
}

type CategoryCount struct {
	Category string  `json:"category" yaml:"category"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

type CategoryDistribution struct {
	TotalCells int             `json:"total_cells" yaml:"total_cells"`
	Counts     []CategoryCount `json:"counts" yaml:"counts"`
}

// Reliability carries Cronbach's alpha. When Applicable is false, Alpha is
// zero and Reason explains why the coefficient is undefined.
type Reliability struct {
	Applicable     bool    `json:"applicable" yaml:"applicable"`
	Alpha          float64 `json:"alpha" yaml:"alpha"`
	Items          int     `json:"items" yaml:"items"`
	Interpretation string  `json:"interpretation,omitempty" yaml:"interpretation,omitempty"`
	Reason         string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type Report struct {
	Respondents          int                  `json:"respondents" yaml:"respondents"`
	Questions            []string             `json:"questions" yaml:"questions"`
	Distribution         ScaleDistribution    `json:"distribution" yaml:"distribution"`
	TopQuestions         []QuestionCount      `json:"top_questions" yaml:"top_questions"`
	QuestionsWithSTS     []QuestionCount      `json:"questions_with_sts" yaml:"questions_with_sts"`
	Means                MeanScores           `json:"means" yaml:"means"`
	CategoryDistribution CategoryDistribution `json:"category_distribution" yaml:"category_distribution"`
	Reliability          Reliability          `json:"reliability" yaml:"reliability"`
}

type DatasetInfo struct {
	Name        string    `json:"name" yaml:"name"`
	ImportID    string    `json:"import_id" yaml:"import_id"`
	Source      string    `json:"source" yaml:"source"`
	Respondents int       `json:"respondents" yaml:"respondents"`
	Questions   []string  `json:"questions" yaml:"questions"`
	ImportedAt  time.Time `json:"imported_at" yaml:"imported_at"`
}
