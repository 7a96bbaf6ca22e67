package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/godilite/feedback360-server/api/v1"
	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/export"
	"github.com/godilite/feedback360-server/internal/service"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyResults      CacheKeyType = "grpc:results"
	cacheKeyPersonResult CacheKeyType = "grpc:person_result"
	cacheKeyRanking      CacheKeyType = "grpc:ranking"
	cacheKeyCompetencies CacheKeyType = "grpc:competencies"
)

type HandlerOption func(*GRPCHandlers)

// WithCacheObserver reports cache hits and misses to o.
func WithCacheObserver(o CacheObserver) HandlerOption {
	return func(h *GRPCHandlers) {
		if o != nil {
			h.rt.observer = o
		}
	}
}

type GRPCHandlers struct {
	pb.UnimplementedResultsServer
	results ResultsService
	logger  *zap.Logger
	rt      *readThrough
}

// NewGRPCHandlers initializes the gRPC handlers. A nil cache serves every
// request straight from the results service.
func NewGRPCHandlers(results ResultsService, cache Cacher, logger *zap.Logger, ttl time.Duration, opts ...HandlerOption) *GRPCHandlers {
	if results == nil {
		panic("nil ResultsService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	logger = logger.Named("grpc-handler")
	h := &GRPCHandlers{
		results: results,
		logger:  logger,
		rt: &readThrough{
			cache:    cache,
			ttl:      ttl,
			logger:   logger,
			observer: nopObserver{},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func requireField(req *structpb.Struct, name string) (string, error) {
	v := strings.TrimSpace(pb.StringField(req, name))
	if v == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return v, nil
}

func normalizeKey(prefix CacheKeyType, parts ...string) string {
	if len(parts) == 0 {
		return string(prefix)
	}
	return fmt.Sprintf("%s:%s", prefix, strings.Join(parts, ":"))
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
	case errors.Is(err, service.ErrInvalidCycle):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrCycleNotFound):
		s.logger.Info("cycle not found", zap.String("op", op))
		return status.Error(codes.NotFound, "cycle not found")
	case errors.Is(err, service.ErrNoResults):
		s.logger.Info("no results found", zap.String("op", op))
		return status.Error(codes.NotFound, "no results found for the given cycle")
	case errors.Is(err, service.ErrPersonNotFound):
		s.logger.Info("person not found", zap.String("op", op))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) encode(op string, v any) (*structpb.Struct, error) {
	out, err := pb.Encode(v)
	if err != nil {
		s.logger.Error("encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
	return out, nil
}

func (s *GRPCHandlers) GetResults(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cycleID, err := requireField(req, pb.FieldCycleID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyResults, cycleID)

	results, err := findAndCache(ctx, s.rt, "GetResults", cacheKey, func(fetchCtx context.Context) ([]aggregation.Result, error) {
		return s.results.GetResults(fetchCtx, cycleID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetResults", err)
	}

	return s.encode("GetResults", struct {
		CycleID string               `json:"cycle_id"`
		Results []aggregation.Result `json:"results"`
	}{cycleID, results})
}

func (s *GRPCHandlers) GetPersonResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cycleID, err := requireField(req, pb.FieldCycleID)
	if err != nil {
		return nil, err
	}
	personID, err := requireField(req, pb.FieldPersonID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyPersonResult, cycleID, personID)

	report, err := findAndCache(ctx, s.rt, "GetPersonResult", cacheKey, func(fetchCtx context.Context) (service.PersonReport, error) {
		return s.results.GetPersonReport(fetchCtx, cycleID, personID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetPersonResult", err)
	}

	return s.encode("GetPersonResult", report)
}

func (s *GRPCHandlers) GetRanking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cycleID, err := requireField(req, pb.FieldCycleID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyRanking, cycleID)

	ranking, err := findAndCache(ctx, s.rt, "GetRanking", cacheKey, func(fetchCtx context.Context) ([]export.RankingEntry, error) {
		return s.results.GetRanking(fetchCtx, cycleID)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetRanking", err)
	}

	return s.encode("GetRanking", struct {
		CycleID string                `json:"cycle_id"`
		Ranking []export.RankingEntry `json:"ranking"`
	}{cycleID, ranking})
}

func (s *GRPCHandlers) GetCompetencies(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	comps, err := findAndCache(ctx, s.rt, "GetCompetencies", normalizeKey(cacheKeyCompetencies), func(fetchCtx context.Context) ([]aggregation.Competency, error) {
		return s.results.GetCompetencies(fetchCtx)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetCompetencies", err)
	}

	return s.encode("GetCompetencies", struct {
		Competencies []aggregation.Competency `json:"competencies"`
	}{comps})
}
