package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultSetTimeout   = 5 * time.Second
)

type nopObserver struct{}

func (nopObserver) CacheHit(string)  {}
func (nopObserver) CacheMiss(string) {}

// readThrough bundles what findAndCache needs for one handler set.
// A nil cache disables caching and every call goes to the fetch func.
type readThrough struct {
	cache    Cacher
	sf       singleflight.Group
	ttl      time.Duration
	logger   *zap.Logger
	observer CacheObserver

	// refreshed holds the last refresh time per key. A hit only triggers
	// a background refresh once the cached value is older than ttl/2.
	refreshed sync.Map
}

// addTTLJitter adds up to ±15s random jitter to TTL to avoid mass expiration.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := time.Duration(rand.Intn(30)-15) * time.Second
	if ttl+jitter <= 0 {
		return ttl
	}
	return ttl + jitter
}

func (rt *readThrough) store(ctx context.Context, key string, value any) {
	ttlWithJitter := addTTLJitter(rt.ttl)
	if err := rt.cache.Set(ctx, key, value, ttlWithJitter); err != nil {
		rt.logger.Warn("failed to set cache", zap.String("key", key), zap.Error(err))
		return
	}
	rt.refreshed.Store(key, time.Now())
	rt.logger.Debug("cache populated", zap.String("key", key), zap.Duration("ttl", ttlWithJitter))
}

func (rt *readThrough) dueForRefresh(key string) bool {
	last, ok := rt.refreshed.Load(key)
	if !ok {
		return true
	}
	return time.Since(last.(time.Time)) > rt.ttl/2
}

func triggerBackgroundRefresh[T any](rt *readThrough, key string, fn FetchFunc[T]) {
	if !rt.dueForRefresh(key) {
		return
	}
	go func() {
		time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)

		_, _, _ = rt.sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				rt.logger.Warn("background refresh failed",
					zap.String("key", key),
					zap.Error(err))
				return nil, err
			}

			setCtx, cancelSet := context.WithTimeout(context.Background(), defaultSetTimeout)
			defer cancelSet()
			rt.store(setCtx, key, value)

			return value, nil
		})
	}()
}

func fetchAndCacheInBackground[T any](ctx context.Context, rt *readThrough, key string, fn FetchFunc[T]) (T, error) {
	var zero T

	value, err := fn(ctx)
	if err != nil {
		rt.logger.Debug("fetch failed", zap.String("key", key), zap.Error(err))
		return zero, err
	}

	go func(v T) {
		setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
		defer cancel()
		rt.store(setCtx, key, v)
	}(value)

	return value, nil
}

// findAndCache implements read-through caching with singleflight and
// refresh-ahead. Cache errors other than a miss are logged and treated as a
// miss; fetch errors are returned unchanged and never cached.
func findAndCache[T any](ctx context.Context, rt *readThrough, op, key string, fn FetchFunc[T]) (T, error) {
	var zero T

	if rt.cache == nil {
		return fn(ctx)
	}

	var cached T
	err := rt.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		rt.observer.CacheHit(op)
		rt.logger.Debug("cache hit", zap.String("key", key))
		triggerBackgroundRefresh(rt, key, fn)
		return cached, nil

	case errors.Is(err, redis.Nil):
		rt.logger.Debug("cache miss", zap.String("key", key))

	default:
		rt.logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}
	rt.observer.CacheMiss(op)

	v, err, shared := rt.sf.Do(key, func() (any, error) {
		return fetchAndCacheInBackground(ctx, rt, key, fn)
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		rt.logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		rt.logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
