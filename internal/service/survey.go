package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/survey-stats/internal/repository/models"
	"github.com/godilite/survey-stats/internal/survey"
	"go.uber.org/zap"
)

const (
	dbTimeout = 2 * time.Second
)

var (
	ErrDatasetNotFound = models.ErrDatasetNotFound
	ErrStorageFailure  = errors.New("storage failure")
)

// SurveyService loads stored datasets and answers statistics requests
// against them.
type SurveyService struct {
	storage ResponseRepository
	logger  *zap.Logger
}

// NewSurveyService creates a new SurveyService instance.
func NewSurveyService(storage ResponseRepository, logger *zap.Logger) *SurveyService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &SurveyService{
		storage: storage,
		logger:  logger,
	}
}

// IsMatrixError reports whether err means the stored responses do not form a
// valid response matrix.
func IsMatrixError(err error) bool {
	return errors.Is(err, survey.ErrInvalidValue) ||
		errors.Is(err, survey.ErrEmptyMatrix) ||
		errors.Is(err, survey.ErrRaggedRow) ||
		errors.Is(err, survey.ErrInvalidQuestion)
}

// Aggregator loads the named dataset and returns an aggregator over it.
func (s *SurveyService) Aggregator(ctx context.Context, dataset string) (*Aggregator, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	m, err := s.storage.LoadMatrix(dbCtx, dataset)
	switch {
	case err == nil:
	case errors.Is(err, ErrDatasetNotFound):
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, dataset)
	case IsMatrixError(err):
		return nil, fmt.Errorf("dataset %q: %w", dataset, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Debug("loaded dataset",
		zap.String("dataset", dataset),
		zap.Int("respondents", m.Respondents()),
		zap.Int("questions", m.NumQuestions()))

	return NewAggregator(m), nil
}

// ListDatasets returns the stored datasets.
func (s *SurveyService) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListDatasets(dbCtx)
	if err != nil {
		s.logger.Error("failed to list datasets", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	out := make([]DatasetInfo, 0, len(rows))
	for _, d := range rows {
		out = append(out, DatasetInfo{
			Name:        d.Name,
			ImportID:    d.ImportID,
			Source:      d.Source,
			Respondents: d.Respondents,
			Questions:   d.Questions,
			ImportedAt:  d.ImportedAt,
		})
	}
	return out, nil
}

// GetReport returns every statistic for the dataset.
func (s *SurveyService) GetReport(ctx context.Context, dataset string) (Report, error) {
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return Report{}, err
	}
	report := agg.Report()

	s.logger.Info("computed report",
		zap.String("dataset", dataset),
		zap.Int("respondents", report.Respondents),
		zap.Float64("overall_mean", report.Means.Overall),
		zap.Bool("reliability_applicable", report.Reliability.Applicable))

	return report, nil
}

// GetDistribution returns the overall scale distribution.
func (s *SurveyService) GetDistribution(ctx context.Context, dataset string) (ScaleDistribution, error) {
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return ScaleDistribution{}, err
	}
	return agg.Distribution(), nil
}

// GetTopQuestion returns the question where code was chosen most often.
func (s *SurveyService) GetTopQuestion(ctx context.Context, dataset string, code survey.ScaleCode) (QuestionCount, error) {
	if !code.Valid() {
		return QuestionCount{}, fmt.Errorf("%w: %q", survey.ErrInvalidScaleCode, string(code))
	}
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return QuestionCount{}, err
	}
	return agg.TopQuestionForCode(code)
}

// GetQuestionsContaining returns every question with at least one answer
// equal to code.
func (s *SurveyService) GetQuestionsContaining(ctx context.Context, dataset string, code survey.ScaleCode) ([]QuestionCount, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %q", survey.ErrInvalidScaleCode, string(code))
	}
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return agg.QuestionsContaining(code)
}

// GetMeanScores returns overall and per-question mean scores.
func (s *SurveyService) GetMeanScores(ctx context.Context, dataset string) (MeanScores, error) {
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return MeanScores{}, err
	}
	return agg.MeanScores(), nil
}

// GetCategoryDistribution returns the positive/neutral/negative roll-up.
func (s *SurveyService) GetCategoryDistribution(ctx context.Context, dataset string) (CategoryDistribution, error) {
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return CategoryDistribution{}, err
	}
	return agg.CategoryDistribution(), nil
}

// GetReliability returns Cronbach's alpha for the dataset.
func (s *SurveyService) GetReliability(ctx context.Context, dataset string) (Reliability, error) {
	agg, err := s.Aggregator(ctx, dataset)
	if err != nil {
		return Reliability{}, err
	}
	return agg.Reliability(), nil
}
