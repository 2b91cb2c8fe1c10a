package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/grpc/mocks"
	"github.com/godilite/survey-stats/internal/query"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/godilite/survey-stats/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testDataset = "kuesioner"

func sampleAggregator(t *testing.T) *service.Aggregator {
	t.Helper()
	m, err := survey.NewMatrix([]survey.Question{1, 2, 3, 4}, [][]string{
		{"SS", "S", "CS", "S"},
		{"S", "S", "TS", "SS"},
		{"CS", "CTS", "STS", "S"},
		{"SS", "S", "CS", "CS"},
		{"TS", "CTS", "STS", "TS"},
	})
	require.NoError(t, err)
	return service.NewAggregator(m)
}

// keyRecorder is a cache that always misses and remembers requested keys.
type keyRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (k *keyRecorder) cacher() *mocks.MockCacher {
	return &mocks.MockCacher{
		GetFunc: func(ctx context.Context, key string, dest any) error {
			k.mu.Lock()
			defer k.mu.Unlock()
			k.keys = append(k.keys, key)
			return cache.Nop{}.Get(ctx, key, dest)
		},
	}
}

func (k *keyRecorder) recorded() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.keys...)
}

func TestNewGRPCHandlers(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		svc := &mocks.MockSurveyService{}
		c := &mocks.MockCacher{}

		handlers := NewGRPCHandlers(svc, c, zap.NewNop(), 5*time.Minute, testDataset)

		assert.NotNil(t, handlers)
		assert.Equal(t, svc, handlers.survey)
		assert.Equal(t, c, handlers.cache)
		assert.Equal(t, 5*time.Minute, handlers.cacheTTL)
		assert.Equal(t, testDataset, handlers.defaultDataset)
	})

	t.Run("nil survey service panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewGRPCHandlers(nil, &mocks.MockCacher{}, zap.NewNop(), time.Minute, "")
		})
	})

	t.Run("non-positive TTL uses default", func(t *testing.T) {
		for _, ttl := range []time.Duration{0, -time.Minute} {
			handlers := NewGRPCHandlers(&mocks.MockSurveyService{}, &mocks.MockCacher{}, zap.NewNop(), ttl, "")
			assert.Equal(t, defaultCacheDuration, handlers.cacheTTL)
		}
	})

	t.Run("nil cache and logger get defaults", func(t *testing.T) {
		handlers := NewGRPCHandlers(&mocks.MockSurveyService{}, nil, nil, time.Minute, "")
		assert.Equal(t, cache.Nop{}, handlers.cache)
		assert.NotNil(t, handlers.logger)
	})
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "grpc:report:kuesioner", normalizeKey(cacheKeyReport, testDataset))
	assert.Equal(t, "grpc:top_question:kuesioner:STS", normalizeKey(cacheKeyTopQuestion, testDataset, "STS"))
	assert.Equal(t, "grpc:answer:wave-2:q13", normalizeKey(cacheKeyAnswer, "wave-2", "q13"))
}

func TestHandleError(t *testing.T) {
	handlers := &GRPCHandlers{logger: zap.NewNop()}

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := handlers.handleError(ctx, "op", errors.New("some error"))

		assert.Equal(t, codes.Canceled, status.Code(err))
		assert.Contains(t, err.Error(), "request canceled")
	})

	t.Run("context deadline exceeded", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		err := handlers.handleError(ctx, "op", errors.New("some error"))

		assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
		assert.Contains(t, err.Error(), "request timed out")
	})

	cases := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"dataset not found", fmt.Errorf("%w: %q", service.ErrDatasetNotFound, "x"), codes.NotFound, "dataset not found"},
		{"invalid scale code", fmt.Errorf("%w: %q", survey.ErrInvalidScaleCode, "N"), codes.InvalidArgument, "invalid scale code"},
		{"unknown query", fmt.Errorf("%w: %q", query.ErrUnknownQuery, "q99"), codes.InvalidArgument, "unknown query"},
		{"invalid values", &survey.InvalidValuesError{Values: []string{"N"}}, codes.FailedPrecondition, `"N"`},
		{"ragged row", fmt.Errorf("dataset %q: %w", "x", survey.ErrRaggedRow), codes.FailedPrecondition, "row length"},
		{"storage failure", fmt.Errorf("%w: disk full", service.ErrStorageFailure), codes.Internal, "database error"},
		{"unknown error", errors.New("boom"), codes.Internal, "op failed: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := handlers.handleError(context.Background(), "op", tc.err)

			assert.Equal(t, tc.code, status.Code(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestDatasetResolution(t *testing.T) {
	var got string
	svc := &mocks.MockSurveyService{
		GetReliabilityFunc: func(ctx context.Context, dataset string) (service.Reliability, error) {
			got = dataset
			return service.Reliability{Items: 4}, nil
		},
	}

	t.Run("explicit dataset wins", func(t *testing.T) {
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "default")

		_, err := handlers.GetReliability(context.Background(), pb.NewRequest(" wave-2 "))

		require.NoError(t, err)
		assert.Equal(t, "wave-2", got)
	})

	t.Run("falls back to default", func(t *testing.T) {
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "default")

		_, err := handlers.GetReliability(context.Background(), pb.NewRequest(""))

		require.NoError(t, err)
		assert.Equal(t, "default", got)
	})

	t.Run("missing dataset without default", func(t *testing.T) {
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetReliability(context.Background(), nil)

		assert.Nil(t, resp)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestGetReport(t *testing.T) {
	agg := sampleAggregator(t)

	t.Run("success", func(t *testing.T) {
		svc := &mocks.MockSurveyService{
			GetReportFunc: func(ctx context.Context, dataset string) (service.Report, error) {
				return agg.Report(), nil
			},
		}
		handlers := NewGRPCHandlers(svc, &mocks.MockCacher{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetReport(context.Background(), pb.NewRequest(testDataset))

		require.NoError(t, err)
		assert.Equal(t, 5.0, resp.Fields["respondents"].GetNumberValue())
		means := resp.Fields["means"].GetStructValue()
		assert.Equal(t, 3.9, means.Fields["overall"].GetNumberValue())
		most := resp.Fields["distribution"].GetStructValue().Fields["most"].GetStructValue()
		assert.Equal(t, "S", most.Fields["code"].GetStringValue())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockSurveyService{
			GetReportFunc: func(ctx context.Context, dataset string) (service.Report, error) {
				return service.Report{}, fmt.Errorf("%w: %q", service.ErrDatasetNotFound, dataset)
			},
		}
		handlers := NewGRPCHandlers(svc, &mocks.MockCacher{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetReport(context.Background(), pb.NewRequest("missing"))

		assert.Nil(t, resp)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("cache hit skips the service on the request path", func(t *testing.T) {
		cached := agg.Report()
		c := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				data, err := json.Marshal(cached)
				if err != nil {
					return err
				}
				return json.Unmarshal(data, dest)
			},
		}
		svc := &mocks.MockSurveyService{
			GetReportFunc: func(ctx context.Context, dataset string) (service.Report, error) {
				return agg.Report(), nil
			},
		}
		handlers := NewGRPCHandlers(svc, c, zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetReport(context.Background(), pb.NewRequest(testDataset))

		require.NoError(t, err)
		assert.Equal(t, 5.0, resp.Fields["respondents"].GetNumberValue())
	})
}

func TestGetTopQuestion(t *testing.T) {
	agg := sampleAggregator(t)

	t.Run("success", func(t *testing.T) {
		rec := &keyRecorder{}
		svc := &mocks.MockSurveyService{
			GetTopQuestionFunc: func(ctx context.Context, dataset string, code survey.ScaleCode) (service.QuestionCount, error) {
				return agg.TopQuestionForCode(code)
			},
		}
		handlers := NewGRPCHandlers(svc, rec.cacher(), zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetTopQuestion(context.Background(), pb.NewRequest(testDataset, pb.FieldCode, "STS"))

		require.NoError(t, err)
		assert.Equal(t, "Q3", resp.Fields["question"].GetStringValue())
		assert.Equal(t, 2.0, resp.Fields["count"].GetNumberValue())
		assert.Equal(t, 40.0, resp.Fields["percent"].GetNumberValue())
		assert.Equal(t, []string{"grpc:top_question:kuesioner:STS"}, rec.recorded())
	})

	t.Run("invalid code is rejected before loading", func(t *testing.T) {
		svc := &mocks.MockSurveyService{}
		handlers := NewGRPCHandlers(svc, &mocks.MockCacher{}, zap.NewNop(), time.Minute, "")

		for _, code := range []string{"", "N", "ss", "Sangat Setuju"} {
			resp, err := handlers.GetTopQuestion(context.Background(), pb.NewRequest(testDataset, pb.FieldCode, code))

			assert.Nil(t, resp)
			assert.Equal(t, codes.InvalidArgument, status.Code(err), "code %q", code)
		}
	})
}

func TestGetQuestionsContaining(t *testing.T) {
	agg := sampleAggregator(t)
	svc := &mocks.MockSurveyService{
		GetQuestionsContainingFunc: func(ctx context.Context, dataset string, code survey.ScaleCode) ([]service.QuestionCount, error) {
			return agg.QuestionsContaining(code)
		},
	}
	handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

	t.Run("matching questions", func(t *testing.T) {
		resp, err := handlers.GetQuestionsContaining(context.Background(), pb.NewRequest(testDataset, pb.FieldCode, "STS"))

		require.NoError(t, err)
		assert.Equal(t, "STS", resp.Fields["code"].GetStringValue())
		values := resp.Fields["questions"].GetListValue().GetValues()
		require.Len(t, values, 1)
		assert.Equal(t, "Q3", values[0].GetStructValue().Fields["question"].GetStringValue())
	})

	t.Run("no matching questions is an empty list", func(t *testing.T) {
		m, err := survey.NewMatrix([]survey.Question{1}, [][]string{{"SS"}})
		require.NoError(t, err)
		single := service.NewAggregator(m)
		svc := &mocks.MockSurveyService{
			GetQuestionsContainingFunc: func(ctx context.Context, dataset string, code survey.ScaleCode) ([]service.QuestionCount, error) {
				return single.QuestionsContaining(code)
			},
		}
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.GetQuestionsContaining(context.Background(), pb.NewRequest(testDataset, pb.FieldCode, "STS"))

		require.NoError(t, err)
		require.NotNil(t, resp.Fields["questions"].GetListValue())
		assert.Empty(t, resp.Fields["questions"].GetListValue().GetValues())
	})
}

func TestStatisticsHandlers(t *testing.T) {
	agg := sampleAggregator(t)
	svc := &mocks.MockSurveyService{
		GetDistributionFunc: func(ctx context.Context, dataset string) (service.ScaleDistribution, error) {
			return agg.Distribution(), nil
		},
		GetMeanScoresFunc: func(ctx context.Context, dataset string) (service.MeanScores, error) {
			return agg.MeanScores(), nil
		},
		GetCategoryDistributionFunc: func(ctx context.Context, dataset string) (service.CategoryDistribution, error) {
			return agg.CategoryDistribution(), nil
		},
		GetReliabilityFunc: func(ctx context.Context, dataset string) (service.Reliability, error) {
			return agg.Reliability(), nil
		},
	}
	handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, testDataset)
	ctx := context.Background()

	dist, err := handlers.GetDistribution(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 20.0, dist.Fields["total_cells"].GetNumberValue())
	least := dist.Fields["least"].GetStructValue()
	assert.Equal(t, "CTS", least.Fields["code"].GetStringValue())

	means, err := handlers.GetMeanScores(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Q1", means.Fields["highest"].GetStructValue().Fields["question"].GetStringValue())
	assert.Equal(t, "Q3", means.Fields["lowest"].GetStructValue().Fields["question"].GetStringValue())

	cats, err := handlers.GetCategoryDistribution(ctx, nil)
	require.NoError(t, err)
	counts := cats.Fields["counts"].GetListValue().GetValues()
	require.Len(t, counts, 3)
	assert.Equal(t, "positive", counts[0].GetStructValue().Fields["category"].GetStringValue())
	assert.Equal(t, 9.0, counts[0].GetStructValue().Fields["count"].GetNumberValue())

	rel, err := handlers.GetReliability(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rel.Fields["items"].GetNumberValue())
}

func TestAnswer(t *testing.T) {
	agg := sampleAggregator(t)

	t.Run("success", func(t *testing.T) {
		rec := &keyRecorder{}
		svc := &mocks.MockSurveyService{
			AggregatorFunc: func(ctx context.Context, dataset string) (*service.Aggregator, error) {
				return agg, nil
			},
		}
		handlers := NewGRPCHandlers(svc, rec.cacher(), zap.NewNop(), time.Minute, "")

		resp, err := handlers.Answer(context.Background(), pb.NewRequest(testDataset, pb.FieldQuery, " q13 "))

		require.NoError(t, err)
		assert.Equal(t, "positif=9:45.0|netral=4:20.0|negatif=7:35.0", resp.GetValue())
		assert.Equal(t, []string{"grpc:answer:kuesioner:q13"}, rec.recorded())
	})

	t.Run("unknown query", func(t *testing.T) {
		handlers := NewGRPCHandlers(&mocks.MockSurveyService{}, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.Answer(context.Background(), pb.NewRequest(testDataset, pb.FieldQuery, "q14"))

		assert.Nil(t, resp)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Contains(t, err.Error(), "unknown query")
	})

	t.Run("invalid stored matrix", func(t *testing.T) {
		svc := &mocks.MockSurveyService{
			AggregatorFunc: func(ctx context.Context, dataset string) (*service.Aggregator, error) {
				return nil, fmt.Errorf("dataset %q: %w", dataset, &survey.InvalidValuesError{Values: []string{""}})
			},
		}
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.Answer(context.Background(), pb.NewRequest(testDataset, pb.FieldQuery, "q1"))

		assert.Nil(t, resp)
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})
}

func TestListDatasets(t *testing.T) {
	imported := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := &mocks.MockSurveyService{
			ListDatasetsFunc: func(ctx context.Context) ([]service.DatasetInfo, error) {
				return []service.DatasetInfo{{
					Name:        testDataset,
					ImportID:    "id-1",
					Source:      "data_kuesioner.xlsx",
					Respondents: 5,
					Questions:   []string{"Q1", "Q2"},
					ImportedAt:  imported,
				}}, nil
			},
		}
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.ListDatasets(context.Background(), nil)

		require.NoError(t, err)
		values := resp.Fields["datasets"].GetListValue().GetValues()
		require.Len(t, values, 1)
		ds := values[0].GetStructValue()
		assert.Equal(t, testDataset, ds.Fields["name"].GetStringValue())
		assert.Equal(t, "2026-03-01T10:00:00Z", ds.Fields["imported_at"].GetStringValue())
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mocks.MockSurveyService{
			ListDatasetsFunc: func(ctx context.Context) ([]service.DatasetInfo, error) {
				return nil, fmt.Errorf("%w: locked", service.ErrStorageFailure)
			},
		}
		handlers := NewGRPCHandlers(svc, cache.Nop{}, zap.NewNop(), time.Minute, "")

		resp, err := handlers.ListDatasets(context.Background(), nil)

		assert.Nil(t, resp)
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Contains(t, err.Error(), "database error")
	})
}
