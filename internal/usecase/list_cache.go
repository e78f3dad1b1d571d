package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"hire-portal/internal/infrastructure/cache"
)

const (
	lockTTL  = 30 * time.Second
	lockWait = 300 * time.Millisecond
)

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

type jobsCacheKeyInput struct {
	Scope string `json:"scope"`
}

type usersCacheKeyInput struct {
	Search string `json:"search"`
	Max    int    `json:"max"`
}

func hashKey(prefix string, in any) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

// JobsCacheKey keys the raw job list. Staff and public viewers are cached
// apart because the gateway may return different lists for them.
func JobsCacheKey(privileged bool) string {
	scope := "public"
	if privileged {
		scope = "staff"
	}
	return hashKey(cache.JobsPrefix, jobsCacheKeyInput{Scope: scope})
}

func UsersCacheKey(search string, max int) string {
	return hashKey(cache.UsersPrefix, usersCacheKeyInput{Search: normalizeSearchValue(search), Max: max})
}

func lockKeyFor(key string) string {
	return cache.LockPrefix + key
}

// cachedList returns the list stored under key or loads it. Concurrent misses
// on the same key are collapsed with a short-lived lock; the loser waits once
// and then loads anyway.
func cachedList[T any](ctx context.Context, c ListCache, logger *log.Logger, tag, key string, ttl time.Duration, load func(context.Context) ([]T, error)) ([]T, error) {
	if c == nil {
		return load(ctx)
	}

	var cached []T
	if hit, err := c.GetJSON(ctx, key, &cached); err == nil && hit {
		if logger != nil {
			logger.Printf("[%s] Cache HIT: %s", tag, key)
		}
		return cached, nil
	}
	if logger != nil {
		logger.Printf("[%s] Cache MISS: %s", tag, key)
	}

	lk := lockKeyFor(key)
	ok, err := c.SetIfNotExists(ctx, lk, "1", lockTTL)
	if err == nil && !ok {
		jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockWait + jitter):
		}
		if hit, err := c.GetJSON(ctx, key, &cached); err == nil && hit {
			if logger != nil {
				logger.Printf("[%s] Cache HIT: %s", tag, key)
			}
			return cached, nil
		}
		if logger != nil {
			logger.Printf("[%s] Lock wait fallback: %s", tag, lk)
		}
	}

	items, err := load(ctx)
	if ok {
		defer func() { _ = c.Delete(context.Background(), lk) }()
	}
	if err != nil {
		return nil, err
	}

	if err := c.SetJSON(ctx, key, items, ttl); err != nil && logger != nil {
		logger.Printf("[%s] Cache SET error: %s: %v", tag, key, err)
	}
	return items, nil
}
