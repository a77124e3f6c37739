package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/ctxutil"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

// Loader reads T through a LookupCache, falling back to fetch on a miss.
// Concurrent misses for one key share a single fetch. Cache failures are
// logged and never change the result.
//
// epoch advances on every Forget. A fetch that overlaps a Forget does not
// leave its row in the cache.
type Loader[T any] struct {
	cache  LookupCache
	log    *logger.Logger
	entity string
	group  singleflight.Group
	epoch  atomic.Uint64
}

func NewLoader[T any](cache LookupCache, log *logger.Logger, entity string) *Loader[T] {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &Loader[T]{
		cache:  cache,
		log:    log.With("loader", entity),
		entity: entity,
	}
}

func (l *Loader[T]) Key(id uint) string {
	return fmt.Sprintf("%s:%d", l.entity, id)
}

func (l *Loader[T]) Load(ctx context.Context, id uint, fetch func(ctx context.Context) (*T, error)) (*T, error) {
	key := l.Key(id)
	metrics := observability.Current()

	raw, ok, err := l.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.IncCacheLookup(l.entity, "error")
		l.log.Warn("cache get failed", append(ctxutil.LogFields(ctx), "key", key, "error", err)...)
	case ok:
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			metrics.IncCacheLookup(l.entity, "hit")
			return &out, nil
		}
		l.log.Warn("cache entry undecodable, refetching", append(ctxutil.LogFields(ctx), "key", key)...)
	default:
		metrics.IncCacheLookup(l.entity, "miss")
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		// The fetch serves every waiter on key and ignores the leader's cancellation.
		shared := context.WithoutCancel(ctx)
		start := l.epoch.Load()
		row, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		l.store(shared, key, row, start)
		return row, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*T)
	return &out, nil
}

// store caches row unless a Forget ran since start. The second epoch check
// covers a Forget that lands between the first check and Set.
func (l *Loader[T]) store(ctx context.Context, key string, row *T, start uint64) {
	if l.epoch.Load() != start {
		return
	}
	enc, err := json.Marshal(row)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, enc); err != nil {
		l.log.Warn("cache set failed", append(ctxutil.LogFields(ctx), "key", key, "error", err)...)
		return
	}
	if l.epoch.Load() != start {
		if err := l.cache.Delete(ctx, key); err != nil {
			l.log.Warn("cache delete failed", append(ctxutil.LogFields(ctx), "key", key, "error", err)...)
		}
	}
}

// Forget drops the cached row. Loads started afterwards never join a fetch
// that was already in flight.
func (l *Loader[T]) Forget(ctx context.Context, id uint) {
	key := l.Key(id)
	l.epoch.Add(1)
	l.group.Forget(key)
	if err := l.cache.Delete(ctx, key); err != nil {
		l.log.Warn("cache delete failed", append(ctxutil.LogFields(ctx), "key", key, "error", err)...)
	}
}
