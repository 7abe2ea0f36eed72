package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bodycomp:ratelimit:"

// RedisLimiter comparte la ventana entre réplicas: INCR + TTL en un pipeline,
// EXPIRE solo cuando la clave es nueva (ventana fija, no deslizante).
type RedisLimiter struct {
	client *redis.Client
	limit  int
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit}
}

// NewRedisClient parsea REDIS_URL y verifica la conexión.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	// ttl < 0: clave recién creada o quedó sin expiración
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, k, Window).Err(); err != nil {
			return false, err
		}
	}

	return incr.Val() <= int64(l.limit), nil
}
