// Package cache stores computed match lists in Redis so repeated visits to
// the matches page do not rescore the whole candidate pool.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snuhangout/api/internal/metrics"
	"github.com/snuhangout/api/internal/model"
)

const matchKeyPrefix = "dating:matches:"

// MatchCache caches a user's ranked match list
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchCache creates a match cache with the given entry lifetime
func NewMatchCache(client *redis.Client, ttl time.Duration) *MatchCache {
	return &MatchCache{client: client, ttl: ttl}
}

func matchKey(userID string) string {
	return matchKeyPrefix + userID
}

// Get returns the cached list and true, or nil and false on a miss
func (c *MatchCache) Get(ctx context.Context, userID string) ([]model.Match, bool, error) {
	val, err := c.client.Get(ctx, matchKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.MatchCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
			return nil, false, nil
		}
		metrics.MatchCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		return nil, false, fmt.Errorf("reading cached matches: %w", err)
	}

	var matches []model.Match
	if err := json.Unmarshal(val, &matches); err != nil {
		// Stale format; treat as a miss and let the caller overwrite it.
		metrics.MatchCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false, nil
	}

	metrics.MatchCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
	return matches, true, nil
}

// Set stores the list for the configured TTL
func (c *MatchCache) Set(ctx context.Context, userID string, matches []model.Match) error {
	if matches == nil {
		matches = []model.Match{}
	}
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	if err := c.client.Set(ctx, matchKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached matches: %w", err)
	}
	return nil
}

// Invalidate drops the cached lists of the given users
func (c *MatchCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = matchKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidating cached matches: %w", err)
	}
	return nil
}
