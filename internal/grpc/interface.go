package grpc

import (
	"context"
	"time"

	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/export"
	"github.com/godilite/feedback360-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// CacheObserver receives cache hit and miss counts per operation.
type CacheObserver interface {
	CacheHit(op string)
	CacheMiss(op string)
}

type ResultsService interface {
	GetResults(ctx context.Context, cycleID string) ([]aggregation.Result, error)
	GetRanking(ctx context.Context, cycleID string) ([]export.RankingEntry, error)
	GetPersonReport(ctx context.Context, cycleID, personID string) (service.PersonReport, error)
	GetCompetencies(ctx context.Context) ([]aggregation.Competency, error)
}
