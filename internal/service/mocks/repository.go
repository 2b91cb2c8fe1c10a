package mocks

import (
	"context"
	"errors"

	"github.com/godilite/survey-stats/internal/repository/models"
	"github.com/godilite/survey-stats/internal/survey"
)

// MockResponseRepository is a mock implementation of the ResponseRepository
// interface for testing the service layer.
type MockResponseRepository struct {
	LoadMatrixFunc   func(ctx context.Context, dataset string) (*survey.Matrix, error)
	ListDatasetsFunc func(ctx context.Context) ([]models.Dataset, error)
}

// LoadMatrix implements the ResponseRepository interface
func (m *MockResponseRepository) LoadMatrix(ctx context.Context, dataset string) (*survey.Matrix, error) {
	if m.LoadMatrixFunc != nil {
		return m.LoadMatrixFunc(ctx, dataset)
	}
	return nil, errors.New("LoadMatrixFunc not implemented")
}

// ListDatasets implements the ResponseRepository interface
func (m *MockResponseRepository) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	if m.ListDatasetsFunc != nil {
		return m.ListDatasetsFunc(ctx)
	}
	return nil, errors.New("ListDatasetsFunc not implemented")
}
