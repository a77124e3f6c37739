package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

// LookupCache stores serialized rows by key. A miss is reported as ok=false
// with a nil error.
type LookupCache interface {
	Get(ctx context.Context, key string) (raw []byte, ok bool, err error)
	Set(ctx context.Context, key string, raw []byte) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

type lookupCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewLookupCache(log *logger.Logger, addr string, ttl time.Duration) (LookupCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &lookupCache{
		log:    log.With("client", "RedisLookupCache"),
		rdb:    rdb,
		prefix: "publisher:",
		ttl:    ttl,
	}, nil
}

func (c *lookupCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *lookupCache) Set(ctx context.Context, key string, raw []byte) error {
	return c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

func (c *lookupCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}
	return c.rdb.Del(ctx, full...).Err()
}

func (c *lookupCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *lookupCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() LookupCache { return noopCache{} }

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []byte) error         { return nil }
func (noopCache) Delete(context.Context, ...string) error           { return nil }
func (noopCache) Ping(context.Context) error                        { return nil }
func (noopCache) Close() error                                      { return nil }
