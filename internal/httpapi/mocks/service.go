package mocks

import (
	"context"
	"errors"

	"github.com/godilite/survey-stats/internal/service"
)

// MockSurveyService is a function-field stub of the HTTP API's service.
type MockSurveyService struct {
	ListDatasetsFunc func(ctx context.Context) ([]service.DatasetInfo, error)
	GetReportFunc    func(ctx context.Context, dataset string) (service.Report, error)
	AggregatorFunc   func(ctx context.Context, dataset string) (*service.Aggregator, error)
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

func (m *MockSurveyService) Aggregator(ctx context.Context, dataset string) (*service.Aggregator, error) {
	if m.AggregatorFunc != nil {
		return m.AggregatorFunc(ctx, dataset)
	}
	return nil, errors.New("AggregatorFunc not implemented")
}
