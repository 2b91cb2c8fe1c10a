package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/query"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/godilite/survey-stats/pkg/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyReport               CacheKeyType = "grpc:report"
	cacheKeyDistribution         CacheKeyType = "grpc:distribution"
	cacheKeyTopQuestion          CacheKeyType = "grpc:top_question"
	cacheKeyQuestionsContaining  CacheKeyType = "grpc:questions_containing"
	cacheKeyMeanScores           CacheKeyType = "grpc:mean_scores"
	cacheKeyCategoryDistribution CacheKeyType = "grpc:category_distribution"
	cacheKeyReliability          CacheKeyType = "grpc:reliability"
	cacheKeyAnswer               CacheKeyType = "grpc:answer"
)

type GRPCHandlers struct {
	pb.UnimplementedSurveyStatsServer
	survey         SurveyService
	cache          Cacher
	logger         *zap.Logger
	sfGroup        singleflight.Group
	cacheTTL       time.Duration
	defaultDataset string
}

// NewGRPCHandlers initializes the gRPC handlers. Requests that omit the
// dataset fall back to defaultDataset; a nil cache disables caching.
func NewGRPCHandlers(svc SurveyService, c Cacher, logger *zap.Logger, ttl time.Duration, defaultDataset string) *GRPCHandlers {
	if svc == nil {
		panic("nil SurveyService provided to NewGRPCHandlers")
	}
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		survey:         svc,
		cache:          c,
		logger:         logger.Named("grpc-handler"),
		cacheTTL:       ttl,
		defaultDataset: defaultDataset,
	}
}

func normalizeKey(prefix CacheKeyType, dataset string, args ...string) string {
	parts := append([]string{string(prefix), dataset}, args...)
	return strings.Join(parts, ":")
}

func (s *GRPCHandlers) dataset(req *structpb.Struct) (string, error) {
	name := strings.TrimSpace(pb.StringField(req, pb.FieldDataset))
	if name == "" {
		name = s.defaultDataset
	}
	if name == "" {
		return "", status.Error(codes.InvalidArgument, "dataset is required")
	}
	return name, nil
}

func parseCode(req *structpb.Struct) (survey.ScaleCode, error) {
	code, err := survey.ParseScaleCode(strings.TrimSpace(pb.StringField(req, pb.FieldCode)))
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return code, nil
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrDatasetNotFound):
		s.logger.Info("dataset not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, survey.ErrInvalidScaleCode), errors.Is(err, query.ErrUnknownQuery):
		return status.Error(codes.InvalidArgument, err.Error())
	case service.IsMatrixError(err):
		s.logger.Warn("stored dataset is not a valid response matrix", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// toStruct converts a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func (s *GRPCHandlers) respond(op string, v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s failed: encode response", op)
	}
	return out, nil
}

// serveCached runs the shared dataset-scoped request flow: resolve the
// dataset, read through the cache, map errors and encode the result.
func serveCached[T any](
	ctx context.Context,
	s *GRPCHandlers,
	op string,
	req *structpb.Struct,
	prefix CacheKeyType,
	fetch func(ctx context.Context, dataset string) (T, error),
	keyArgs ...string,
) (T, error) {
	var zero T
	dataset, err := s.dataset(req)
	if err != nil {
		return zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	value, err := FindAndCache(ctx, s.cache, &s.sfGroup, normalizeKey(prefix, dataset, keyArgs...), s.cacheTTL, s.logger, func(fetchCtx context.Context) (T, error) {
		return fetch(fetchCtx, dataset)
	})
	if err != nil {
		return zero, s.handleError(ctx, op, err)
	}
	return value, nil
}

func (s *GRPCHandlers) ListDatasets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	datasets, err := s.survey.ListDatasets(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "ListDatasets", err)
	}
	return s.respond("ListDatasets", map[string]any{"datasets": datasets})
}

func (s *GRPCHandlers) GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	report, err := serveCached(ctx, s, "GetReport", req, cacheKeyReport, s.survey.GetReport)
	if err != nil {
		return nil, err
	}
	return s.respond("GetReport", report)
}

func (s *GRPCHandlers) GetDistribution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dist, err := serveCached(ctx, s, "GetDistribution", req, cacheKeyDistribution, s.survey.GetDistribution)
	if err != nil {
		return nil, err
	}
	return s.respond("GetDistribution", dist)
}

func (s *GRPCHandlers) GetTopQuestion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	code, err := parseCode(req)
	if err != nil {
		return nil, err
	}
	qc, err := serveCached(ctx, s, "GetTopQuestion", req, cacheKeyTopQuestion,
		func(ctx context.Context, dataset string) (service.QuestionCount, error) {
			return s.survey.GetTopQuestion(ctx, dataset, code)
		}, code.String())
	if err != nil {
		return nil, err
	}
	return s.respond("GetTopQuestion", qc)
}

func (s *GRPCHandlers) GetQuestionsContaining(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	code, err := parseCode(req)
	if err != nil {
		return nil, err
	}
	qs, err := serveCached(ctx, s, "GetQuestionsContaining", req, cacheKeyQuestionsContaining,
		func(ctx context.Context, dataset string) ([]service.QuestionCount, error) {
			return s.survey.GetQuestionsContaining(ctx, dataset, code)
		}, code.String())
	if err != nil {
		return nil, err
	}
	return s.respond("GetQuestionsContaining", map[string]any{"code": code.String(), "questions": qs})
}

func (s *GRPCHandlers) GetMeanScores(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	means, err := serveCached(ctx, s, "GetMeanScores", req, cacheKeyMeanScores, s.survey.GetMeanScores)
	if err != nil {
		return nil, err
	}
	return s.respond("GetMeanScores", means)
}

func (s *GRPCHandlers) GetCategoryDistribution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dist, err := serveCached(ctx, s, "GetCategoryDistribution", req, cacheKeyCategoryDistribution, s.survey.GetCategoryDistribution)
	if err != nil {
		return nil, err
	}
	return s.respond("GetCategoryDistribution", dist)
}

func (s *GRPCHandlers) GetReliability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rel, err := serveCached(ctx, s, "GetReliability", req, cacheKeyReliability, s.survey.GetReliability)
	if err != nil {
		return nil, err
	}
	return s.respond("GetReliability", rel)
}

// Answer evaluates one line-protocol query (q1..q13) against the dataset.
func (s *GRPCHandlers) Answer(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	name := strings.TrimSpace(pb.StringField(req, pb.FieldQuery))
	if !query.Known(name) {
		return nil, status.Errorf(codes.InvalidArgument, "%v: %q", query.ErrUnknownQuery, name)
	}
	line, err := serveCached(ctx, s, "Answer", req, cacheKeyAnswer,
		func(ctx context.Context, dataset string) (string, error) {
			agg, err := s.survey.Aggregator(ctx, dataset)
			if err != nil {
				return "", err
			}
			return query.Answer(agg, name)
		}, name)
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(line), nil
}
