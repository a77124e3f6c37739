package app

import (
	"fmt"

	"github.com/yungbote/publisher-backend/internal/clients/redis"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type Clients struct {
	LookupCache redis.LookupCache
}

// wireClients connects to redis when REDIS_ADDR is set and falls back to a
// cache that stores nothing otherwise.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, lookup cache disabled")
		return Clients{LookupCache: redis.NewNoopCache()}, nil
	}
	cache, err := redis.NewLookupCache(log, cfg.RedisAddr, cfg.CacheTTL)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis lookup cache: %w", err)
	}
	return Clients{LookupCache: cache}, nil
}

func (c Clients) Close() error {
	if c.LookupCache == nil {
		return nil
	}
	return c.LookupCache.Close()
}
