// Package cache provides the redis-backed page cache. The adapter degrades
// to a cache-bypass no-op when redis is unreachable so listing queries keep
// working without it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"timviec/internal/config"
)

type Redis struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     *log.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis dials redis using cfg. When the ping fails the returned adapter
// has no client and every operation is a silent miss.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == "" {
		port = "6379"
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 600 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, defaultTTL: ttl, logger: logger}
	}

	return &Redis{client: client, defaultTTL: ttl, logger: logger}
}

func (r *Redis) bypassed() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] redis unavailable, bypassing cache: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.bypassed() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.bypassed() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.bypassed() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.bypassed() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnOnce(err)
		return err
	}
	return nil
}

func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.bypassed() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.warnOnce(err)
		return false, err
	}
	return ok, nil
}

// InvalidateJobPages drops every materialized result page and its lock,
// called after a snapshot refresh changed the underlying listing.
func (r *Redis) InvalidateJobPages(ctx context.Context) error {
	if r.bypassed() {
		return nil
	}
	var firstErr error
	for _, pattern := range []string{"jobs:page:*", "jobs:pagelock:*"} {
		if err := r.deleteByPattern(ctx, pattern); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Redis) deleteByPattern(ctx context.Context, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil && r.logger != nil {
			r.logger.Printf("[Cache] delete failed key=%s pattern=%s err=%v", iter.Val(), pattern, err)
		}
	}
	return iter.Err()
}
