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

	"hire-portal/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	JobsPrefix  = "portal:jobs:"
	UsersPrefix = "portal:users:"
	LockPrefix  = "portal:lock:"

	defaultTTL = 60 * time.Second
)

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects to redis. When the server cannot be reached the returned
// cache is a pass-through: reads miss and writes are dropped.
func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		if logger != nil {
			logger.Printf("[Cache] REDIS_HOST not set, cache disabled")
		}
		return &Redis{logger: logger, ttl: cfg.TTL}
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
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
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{logger: logger, ttl: cfg.TTL}
	}

	return &Redis{client: client, logger: logger, ttl: cfg.TTL}
}

// NewRedisWithClient wraps an existing client, used by tests and tools.
func NewRedisWithClient(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

// Enabled reports whether a redis connection backs the cache.
func (r *Redis) Enabled() bool {
	return !r.isUnavailable()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
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
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	return deleteByPattern(ctx, r.client, r.logger, pattern)
}

// InvalidateJobs drops every cached job list. Called after any job mutation.
func (r *Redis) InvalidateJobs(ctx context.Context) error {
	return r.invalidate(ctx, JobsPrefix)
}

// InvalidateUsers drops every cached admin user list.
func (r *Redis) InvalidateUsers(ctx context.Context) error {
	return r.invalidate(ctx, UsersPrefix)
}

func (r *Redis) invalidate(ctx context.Context, prefix string) error {
	if r.isUnavailable() {
		return nil
	}
	var firstErr error
	for _, p := range []string{prefix + "*", LockPrefix + prefix + "*"} {
		if err := r.DeleteByPattern(ctx, p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.logger != nil {
		r.logger.Printf("[Cache] Invalidated prefix=%s", prefix)
	}
	return firstErr
}

// SetIfNotExists takes a short-lived lock. Without redis there is nobody to
// contend with, so the lock is always granted.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return ok, nil
}

func deleteByPattern(ctx context.Context, rdb *redis.Client, logger *log.Logger, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := rdb.Del(ctx, k).Err(); err != nil {
			if logger != nil {
				logger.Printf("[Cache] Redis delete error key=%s pattern=%s err=%v", k, pattern, err)
			}
		}
	}
	return iter.Err()
}
