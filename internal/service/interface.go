package service

import (
	"context"

	"github.com/godilite/survey-stats/internal/repository/models"
	"github.com/godilite/survey-stats/internal/survey"
)

// ResponseRepository defines the storage operations the service depends on.
type ResponseRepository interface {
	LoadMatrix(ctx context.Context, dataset string) (*survey.Matrix, error)
	ListDatasets(ctx context.Context) ([]models.Dataset, error)
}
