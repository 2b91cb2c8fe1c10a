// Package httpapi serves survey statistics as JSON for dashboards.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/godilite/survey-stats/internal/query"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// SurveyService is the subset of the survey service the API needs.
type SurveyService interface {
	ListDatasets(ctx context.Context) ([]service.DatasetInfo, error)
	GetReport(ctx context.Context, dataset string) (service.Report, error)
	Aggregator(ctx context.Context, dataset string) (*service.Aggregator, error)
}

// Handler provides the HTTP API endpoints.
type Handler struct {
	survey SurveyService
	logger *zap.Logger
}

func NewHandler(svc SurveyService, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("nil SurveyService provided to NewHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{survey: svc, logger: logger.Named("http-handler")}
}

// RegisterRoutes sets up all API routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/datasets", h.handleListDatasets).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{dataset}/report", h.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/datasets/{dataset}/answer/{query}", h.handleAnswer).Methods(http.MethodGet)
}

// NewRouter returns a router with every route and request logging installed.
func (h *Handler) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	h.RegisterRoutes(r)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDatasetNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, query.ErrUnknownQuery):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case service.IsMatrixError(err):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	datasets, err := h.survey.ListDatasets(ctx)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, datasets)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.survey.GetReport(ctx, mux.Vars(r)["dataset"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}

type answerResponse struct {
	Dataset string `json:"dataset"`
	Query   string `json:"query"`
	Answer  string `json:"answer"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["query"]
	if !query.Known(name) {
		h.respondError(w, http.StatusBadRequest, "unknown query: "+name)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	agg, err := h.survey.Aggregator(ctx, vars["dataset"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	line, err := query.Answer(agg, name)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, answerResponse{Dataset: vars["dataset"], Query: name, Answer: line})
}
