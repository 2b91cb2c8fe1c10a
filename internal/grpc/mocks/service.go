package mocks

import (
	"context"
	"errors"

	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
)

// MockSurveyService is a function-field implementation of the handlers'
// SurveyService dependency.
type MockSurveyService struct {
	ListDatasetsFunc            func(ctx context.Context) ([]service.DatasetInfo, error)
	GetReportFunc               func(ctx context.Context, dataset string) (service.Report, error)
	GetDistributionFunc         func(ctx context.Context, dataset string) (service.ScaleDistribution, error)
	GetTopQuestionFunc          func(ctx context.Context, dataset string, code survey.ScaleCode) (service.QuestionCount, error)
	GetQuestionsContainingFunc  func(ctx context.Context, dataset string, code survey.ScaleCode) ([]service.QuestionCount, error)
	GetMeanScoresFunc           func(ctx context.Context, dataset string) (service.MeanScores, error)
	GetCategoryDistributionFunc func(ctx context.Context, dataset string) (service.CategoryDistribution, error)
	GetReliabilityFunc          func(ctx context.Context, dataset string) (service.Reliability, error)
	AggregatorFunc              func(ctx context.Context, dataset string) (*service.Aggregator, error)
}

func (m *MockSurveyService) ListDatasets(ctx context.Context) ([]service.DatasetInfo, error) {
	if m.ListDatasetsFunc != nil {
		return m.ListDatasetsFunc(ctx)
	}
	return nil, errors.New("ListDatasetsFunc not implemented")
}

func (m *MockSurveyService) GetReport(ctx context.Context, dataset string) (service.Report, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, dataset)
	}
	return service.Report{}, errors.New("GetReportFunc not implemented")
}

func (m *MockSurveyService) GetDistribution(ctx context.Context, dataset string) (service.ScaleDistribution, error) {
	if m.GetDistributionFunc != nil {
		return m.GetDistributionFunc(ctx, dataset)
	}
	return service.ScaleDistribution{}, errors.New("GetDistributionFunc not implemented")
}

func (m *MockSurveyService) GetTopQuestion(ctx context.Context, dataset string, code survey.ScaleCode) (service.QuestionCount, error) {
	if m.GetTopQuestionFunc != nil {
		return m.GetTopQuestionFunc(ctx, dataset, code)
	}
	return service.QuestionCount{}, errors.New("GetTopQuestionFunc not implemented")
}

func (m *MockSurveyService) GetQuestionsContaining(ctx context.Context, dataset string, code survey.ScaleCode) ([]service.QuestionCount, error) {
	if m.GetQuestionsContainingFunc != nil {
		return m.GetQuestionsContainingFunc(ctx, dataset, code)
	}
	return nil, errors.New("GetQuestionsContainingFunc not implemented")
}

func (m *MockSurveyService) GetMeanScores(ctx context.Context, dataset string) (service.MeanScores, error) {
	if m.GetMeanScoresFunc != nil {
		return m.GetMeanScoresFunc(ctx, dataset)
	}
	return service.MeanScores{}, errors.New("GetMeanScoresFunc not implemented")
}

func (m *MockSurveyService) GetCategoryDistribution(ctx context.Context, dataset string) (service.CategoryDistribution, error) {
	if m.GetCategoryDistributionFunc != nil {
		return m.GetCategoryDistributionFunc(ctx, dataset)
	}
	return service.CategoryDistribution{}, errors.New("GetCategoryDistributionFunc not implemented")
}

func (m *MockSurveyService) GetReliability(ctx context.Context, dataset string) (service.Reliability, error) {
	if m.GetReliabilityFunc != nil {
		return m.GetReliabilityFunc(ctx, dataset)
	}
	return service.Reliability{}, errors.New("GetReliabilityFunc not implemented")
}

func (m *MockSurveyService) Aggregator(ctx context.Context, dataset string) (*service.Aggregator, error) {
	if m.AggregatorFunc != nil {
		return m.AggregatorFunc(ctx, dataset)
	}
	return nil, errors.New("AggregatorFunc not implemented")
}
