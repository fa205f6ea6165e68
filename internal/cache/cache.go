// Package cache provides the content list cache and the token revocation
// store, each backed by Redis or by an in-process fallback.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache はJSONでエンコードした値を保持する
type Cache interface {
	// Get はキャッシュミスのとき false を返す
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type redisCache struct {
	rdb       *goredis.Client
	namespace string
}

func NewRedisCache(rdb *goredis.Client, namespace string) Cache {
	return &redisCache{rdb: rdb, namespace: namespace}
}

func (c *redisCache) key(k string) string {
	return c.namespace + ":" + k
}

func (c *redisCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redisCache.Get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("redisCache.Get decode: %w", err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redisCache.Set encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redisCache.Set: %w", err)
	}
	return nil
}

// DeletePrefix は SCAN で一致するキーを探して削除する
func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, c.key(prefix)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redisCache.DeletePrefix scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redisCache.DeletePrefix: %w", err)
	}
	return nil
}

// nopCache は Redis 無効時に使う。常にキャッシュミス。
type nopCache struct{}

func NewNopCache() Cache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (nopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (nopCache) DeletePrefix(context.Context, string) error { return nil }
