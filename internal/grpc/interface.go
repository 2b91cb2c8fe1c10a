package grpc

import (
	"context"
	"time"

	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// SurveyService is the statistics API the handlers expose.
type SurveyService interface {
	ListDatasets(ctx context.Context) ([]service.DatasetInfo, error)
	GetReport(ctx context.Context, dataset string) (service.Report, error)
	GetDistribution(ctx context.Context, dataset string) (service.ScaleDistribution, error)
	GetTopQuestion(ctx context.Context, dataset string, code survey.ScaleCode) (service.QuestionCount, error)
	GetQuestionsContaining(ctx context.Context, dataset string, code survey.ScaleCode) ([]service.QuestionCount, error)
	GetMeanScores(ctx context.Context, dataset string) (service.MeanScores, error)
	GetCategoryDistribution(ctx context.Context, dataset string) (service.CategoryDistribution, error)
	GetReliability(ctx context.Context, dataset string) (service.Reliability, error)
	Aggregator(ctx context.Context, dataset string) (*service.Aggregator, error)
}
