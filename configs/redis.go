package configs

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns a client for the wallet read cache, or nil when no
// REDIS_ADDR is configured or the server is unreachable. The wallet
// service works DB-only with a nil client.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logrus.WithField("addr", cfg.RedisAddr).Warnf("redis unavailable, running without cache: %v", err)
		return nil
	}
	return rdb
}
