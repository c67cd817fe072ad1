package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"erp_backend/internals/configs"
)

// ConnectRedis returns nil when REDIS_ADDR is unset or unreachable; callers fall back to memory.
func ConnectRedis() *redis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Info().Msg("REDIS_ADDR not set, sessions kept in memory")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetInt("REDIS_DB"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, sessions kept in memory")
		_ = rdb.Close()
		return nil
	}
	log.Info().Str("addr", addr).Msg("✅ redis connected")
	return rdb
}
