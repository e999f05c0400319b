package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache holds query results keyed by Filter.Key. Implementations swallow their
// own failures: a broken cache degrades to a miss, never to a failed read.
//
// Token must be taken before the store is read and handed to Set with the
// rows. A Purge in between moves the generation on, so Set drops rows that
// were read before the write that caused it.
type Cache interface {
	Get(ctx context.Context, key string) ([]Review, bool)
	Token(ctx context.Context) int64
	Set(ctx context.Context, token int64, key string, reviews []Review)
	Purge(ctx context.Context)
}

// noToken tells Set to skip the write.
const noToken int64 = -1

type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]Review, bool) { return nil, false }
func (NoopCache) Token(context.Context) int64                  { return noToken }
func (NoopCache) Set(context.Context, int64, string, []Review) {}
func (NoopCache) Purge(context.Context)                        {}

type MemoryCache struct {
	mu  sync.Mutex
	gen int64
	lru *expirable.LRU[string, []Review]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = 32
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []Review](size, nil, ttl)}
}

func (c *MemoryCache) Token(context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]Review, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return clone(v), true
}

func (c *MemoryCache) Set(_ context.Context, token int64, key string, reviews []Review) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return
	}
	c.lru.Add(key, clone(reviews))
}

func (c *MemoryCache) Purge(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
}

// RedisCache shares query results between api replicas. Purge bumps a
// generation counter instead of scanning keys; stale generations expire by TTL.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration, logger *zap.SugaredLogger) *RedisCache {
	if prefix == "" {
		prefix = "folio:reviews"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *RedisCache) genKey() string { return c.prefix + ":gen" }

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) entryKey(gen int64, key string) string {
	return c.prefix + ":" + strconv.FormatInt(gen, 10) + ":" + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Review, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warnw("review cache generation lookup failed", "error", err)
		return nil, false
	}

	data, err := c.client.Get(ctx, c.entryKey(gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("review cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var out []Review
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warnw("review cache entry is corrupt", "key", key, "error", err)
		return nil, false
	}
	return out, true
}

func (c *RedisCache) Token(ctx context.Context) int64 {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warnw("review cache generation lookup failed", "error", err)
		return noToken
	}
	return gen
}

// Set writes under the generation seen before the read. Rows from a purged
// generation land on a key Get no longer looks at.
func (c *RedisCache) Set(ctx context.Context, token int64, key string, reviews []Review) {
	if token < 0 {
		return
	}
	data, err := json.Marshal(reviews)
	if err != nil {
		c.logger.Warnw("review cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.entryKey(token, key), data, c.ttl).Err(); err != nil {
		c.logger.Warnw("review cache set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Purge(ctx context.Context) {
	if err := c.client.Incr(ctx, c.genKey()).Err(); err != nil {
		c.logger.Warnw("review cache purge failed", "error", err)
	}
}

func clone(in []Review) []Review {
	if in == nil {
		return nil
	}
	out := make([]Review, len(in))
	copy(out, in)
	return out
}
