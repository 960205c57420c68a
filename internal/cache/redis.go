package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// RecentTexts caches the most-recent question bank texts per topic key so
// repeated builds against the same topic set skip the Postgres read. A nil
// receiver or client always misses, so the cache stays optional.
type RecentTexts struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRecentTexts(rdb *redis.Client, ttl time.Duration) *RecentTexts {
	return &RecentTexts{rdb: rdb, ttl: ttl}
}

func (rt *RecentTexts) cacheKey(topicKey string) string {
	return "bank:recent:" + topicKey
}

func (rt *RecentTexts) Get(ctx context.Context, topicKey string) ([]string, bool) {
	if rt == nil || rt.rdb == nil {
		return nil, false
	}
	raw, err := rt.rdb.Get(ctx, rt.cacheKey(topicKey)).Bytes()
	if err != nil {
		return nil, false
	}
	var texts []string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, false
	}
	return texts, true
}

func (rt *RecentTexts) Set(ctx context.Context, topicKey string, texts []string) {
	if rt == nil || rt.rdb == nil {
		return
	}
	raw, err := json.Marshal(texts)
	if err != nil {
		return
	}
	rt.rdb.Set(ctx, rt.cacheKey(topicKey), raw, rt.ttl)
}

func (rt *RecentTexts) Invalidate(ctx context.Context, topicKey string) {
	if rt == nil || rt.rdb == nil {
		return
	}
	rt.rdb.Del(ctx, rt.cacheKey(topicKey))
}
