package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// resultTTL bounds staleness of memoized calculator responses. Status
// responses depend on the postcode table and the published policy, both of
// which change rarely but do change.
const resultTTL = 15 * time.Minute

// RedisCache backs the Cache interface with a Redis instance.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, resultTTL).Err()
}
