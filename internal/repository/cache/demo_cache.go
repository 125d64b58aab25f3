// Package cache provides a Redis cache-aside decorator for repository.DemoRepository.
// Redis is optional: every Redis failure falls back to the wrapped repository.
package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"hellodemo/internal/config"
	"hellodemo/internal/repository"
)

// Cmdable is the subset of the go-redis client the decorator needs.
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisClient builds a client from cfg and pings it with a short timeout.
// Callers should run without the cache when an error is returned.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// DemoCache wraps a DemoRepository with a read-through Redis cache.
type DemoCache struct {
	next   repository.DemoRepository
	rdb    Cmdable
	ttl    time.Duration
	prefix string
	log    logrus.FieldLogger
}

// NewDemoCache wraps next. A non-positive ttl defaults to config.DefaultCacheTTL.
// A cached count may be up to ttl behind the table.
func NewDemoCache(next repository.DemoRepository, rdb Cmdable, ttl time.Duration, prefix string, log logrus.FieldLogger) *DemoCache {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &DemoCache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		log:    log.WithField("component", "count_cache"),
	}
}

var _ repository.DemoRepository = (*DemoCache)(nil)

// Key returns the cache key for uid.
func (c *DemoCache) Key(uid int64) string {
	return fmt.Sprintf("%s:temp_table:uid:%d", c.prefix, uid)
}

// CountByUID serves from Redis when possible. Absent counts are never cached.
func (c *DemoCache) CountByUID(ctx context.Context, uid int64) (*int64, error) {
	key := c.Key(uid)

	n, err := c.rdb.Get(ctx, key).Int64()
	if err == nil {
		return &n, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).WithField("key", key).Warn("cache_get_failed")
	}

	count, err := c.next.CountByUID(ctx, uid)
	if err != nil || count == nil {
		return count, err
	}

	if err := c.rdb.Set(ctx, key, *count, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache_set_failed")
	}
	return count, nil
}
