package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/config"
	handler "github.com/godilite/survey-stats/internal/grpc"
	"github.com/godilite/survey-stats/internal/httpapi"
	"github.com/godilite/survey-stats/internal/loader"
	"github.com/godilite/survey-stats/internal/repository"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/pkg/cache"
	dbbuilder "github.com/godilite/survey-stats/pkg/database"
	grpcsrv "github.com/godilite/survey-stats/pkg/grpc/server"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      handler.Cacher
	grpcServer *grpcsrv.Server
	httpServer *http.Server
	httpLis    net.Listener
}

// OpenDatabase opens the configured database, creating the parent directory
// of a file-backed SQLite path, and applies the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, *repository.ResponseRepository, error) {
	if cfg.DBPath != ":memory:" && !strings.HasPrefix(cfg.DBPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithPragmas("PRAGMA foreign_keys = ON"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}

	repo := repository.NewResponseRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration failed: %w", err)
	}
	return db, repo, nil
}

// ImportFile validates a workbook or CSV and stores it under dataset,
// replacing any previous import with that name.
func ImportFile(ctx context.Context, repo *repository.ResponseRepository, path, sheet, dataset string, logger *zap.Logger) (service.DatasetInfo, error) {
	m, err := loader.LoadFile(path, loader.WithSheet(sheet))
	if err != nil {
		return service.DatasetInfo{}, err
	}
	ds, err := repo.SaveMatrix(ctx, dataset, filepath.Base(path), m)
	if err != nil {
		return service.DatasetInfo{}, err
	}
	logger.Info("dataset imported",
		zap.String("dataset", ds.Name),
		zap.String("import_id", ds.ImportID),
		zap.String("source", path),
		zap.Int("respondents", ds.Respondents),
		zap.Strings("questions", ds.Questions))

	return service.DatasetInfo{
		Name:        ds.Name,
		ImportID:    ds.ImportID,
		Source:      ds.Source,
		Respondents: ds.Respondents,
		Questions:   ds.Questions,
		ImportedAt:  ds.ImportedAt,
	}, nil
}

func cacheOptions(cfg *config.Config) []cache.Option {
	return []cache.Option{
		cache.WithAddress(cfg.RedisAddr),
		cache.WithPassword(cfg.RedisPassword),
		cache.WithDB(cfg.RedisDB),
		cache.WithPrefix("survey:"),
	}
}

func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) handler.Cacher {
	if !cfg.CacheEnabled {
		logger.Info("cache disabled")
		return cache.Nop{}
	}
	c, err := cache.New(ctx, cacheOptions(cfg)...)
	if err != nil {
		logger.Warn("cache unavailable, serving without cache", zap.Error(err))
		return cache.Nop{}
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	return c
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, repo, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	if cfg.DataPath != "" {
		if _, err := ImportFile(ctx, repo, cfg.DataPath, cfg.DataSheet, cfg.DefaultDataset, logger); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("import %s: %w", cfg.DataPath, err)
		}
	}

	cacheClient := newCache(ctx, cfg, logger)

	surveyService := service.NewSurveyService(repo, logger.Named("service"))

	grpcHandlers := handler.NewGRPCHandlers(surveyService, cacheClient, logger, cfg.CacheTTL, cfg.DefaultDataset)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
	)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterSurveyStatsServer(s, grpcHandlers)
	})

	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		_ = grpcServer.Shutdown(ctx)
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to listen on http port %d: %w", cfg.HTTPPort, err)
	}

	httpServer := &http.Server{
		Handler:           httpapi.NewHandler(surveyService, logger).NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: httpServer,
		httpLis:    httpLis,
	}, nil
}

// GRPCAddr returns the gRPC listening address.
func (a *App) GRPCAddr() net.Addr {
	return a.grpcServer.Addr()
}

// HTTPAddr returns the JSON API listening address.
func (a *App) HTTPAddr() net.Addr {
	return a.httpLis.Addr()
}

// Run starts both servers and blocks until ctx is done, a shutdown signal
// is received or the HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.grpcServer.Start()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server started", zap.String("addr", a.httpLis.Addr().String()))
		if err := a.httpServer.Serve(a.httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		a.logger.Error("HTTP server failed", zap.Error(runErr))
	}

	a.logger.Info("application shutting down")
	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("grpc shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if ctx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}
	_ = a.logger.Sync()
}
