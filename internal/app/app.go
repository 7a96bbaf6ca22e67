package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/godilite/feedback360-server/api/v1"
	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/config"
	handler "github.com/godilite/feedback360-server/internal/grpc"
	"github.com/godilite/feedback360-server/internal/repository"
	"github.com/godilite/feedback360-server/internal/service"
	"github.com/godilite/feedback360-server/pkg/cache"
	dbbuilder "github.com/godilite/feedback360-server/pkg/database"
	grpcsrv "github.com/godilite/feedback360-server/pkg/grpc/server"
	"github.com/godilite/feedback360-server/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	grpcServer *grpcsrv.Server
	opsServer  *http.Server
}

// NewDatabase opens the configured database, bootstrapping the schema when
// DB_BOOTSTRAP_SCHEMA is set.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	opts := []dbbuilder.Option{
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	}
	if cfg.DBBootstrapSchema {
		opts = append(opts, dbbuilder.WithSchema(repository.Schema...))
	}
	return dbbuilder.New(ctx, opts...)
}

// NewResultsService builds the aggregation engine and results service on top
// of db.
func NewResultsService(db *sql.DB, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *service.ResultsService {
	engine := aggregation.New(
		aggregation.WithLogger(logger.Named("aggregation")),
		aggregation.WithParallelism(cfg.AggregationParallelism),
	)
	return service.NewResultsService(
		repository.NewFeedbackRepository(db),
		logger,
		service.WithEngine(engine),
		service.WithMetrics(m),
		service.WithDBTimeout(cfg.DBTimeout),
	)
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := NewDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized",
		zap.String("path", cfg.DBPath),
		zap.Bool("bootstrap_schema", cfg.DBBootstrapSchema))

	// The results cache is optional; without redis every request aggregates.
	var cacher handler.Cacher
	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithPassword(cfg.RedisPassword),
		cache.WithDB(cfg.RedisDB),
	)
	if err != nil {
		logger.Warn("Cache unavailable, serving uncached", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		cacheClient = nil
	} else {
		cacher = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	}

	m := metrics.New()

	resultsService := NewResultsService(dbPool, cfg, logger, m)

	grpcHandlers := handler.NewGRPCHandlers(resultsService, cacher, logger, cfg.CacheTTL,
		handler.WithCacheObserver(m))

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(cfg.GRPCLoggingEnabled),
		grpcsrv.WithTracing(true),
	)
	if err != nil {
		dbPool.Close()
		if cacheClient != nil {
			cacheClient.Close()
		}
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterResultsServer(s, grpcHandlers)
	})

	a := &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
	}

	if cfg.MetricsAddr != "" {
		checks := []healthCheck{{name: "database", check: dbPool.PingContext}}
		if cacheClient != nil {
			checks = append(checks, healthCheck{name: "cache", check: cacheClient.Ping})
		}
		a.opsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           newOpsRouter(m.Registry(), checks...),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return a, nil
}

// Run starts the servers and blocks until ctx is canceled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	opsErr := make(chan error, 1)
	if a.opsServer != nil {
		go func() {
			a.logger.Info("ops HTTP server starting", zap.String("addr", a.opsServer.Addr))
			if err := a.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				opsErr <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-opsErr:
		runErr = fmt.Errorf("ops server: %w", err)
		a.logger.Error("ops HTTP server failed", zap.Error(err))
	}

	a.logger.Info("application shutting down")
	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.opsServer != nil {
		if err := a.opsServer.Shutdown(ctx); err != nil {
			a.logger.Error("ops server shutdown error", zap.Error(err))
		}
	}

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		a.logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("cache shutdown error", zap.Error(err))
		}
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if ctx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}
}
