package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/go-redis/redis/v8"
)

// TagCache keeps deal tag names in Redis in front of a slower tag store.
// Redis failures never fail a read; the store is consulted instead.
type TagCache struct {
	redis *redis.Client
	store deals.TagStore
	ttl   time.Duration
}

func NewTagCache(client *redis.Client, store deals.TagStore, ttl time.Duration) *TagCache {
	return &TagCache{
		redis: client,
		store: store,
		ttl:   ttl,
	}
}

func tagNamesKey(dealID uint) string {
	return fmt.Sprintf("deal:%d:tag_names", dealID)
}

func (c *TagCache) TagNames(ctx context.Context, dealID uint) ([]string, error) {
	key := tagNamesKey(dealID)

	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var names []string
		if err := json.Unmarshal([]byte(cached), &names); err == nil {
			return names, nil
		}
		slog.Warn("discarding malformed cached tag names", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("tag cache read failed", "key", key, "error", err)
	}

	names, err := c.store.TagNames(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}

	data, err := json.Marshal(names)
	if err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("tag cache write failed", "key", key, "error", err)
		}
	}
	return names, nil
}

// Invalidate drops the cached names of the given deals.
func (c *TagCache) Invalidate(ctx context.Context, dealIDs ...uint) error {
	if len(dealIDs) == 0 {
		return nil
	}
	keys := make([]string, len(dealIDs))
	for i, id := range dealIDs {
		keys[i] = tagNamesKey(id)
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate tag names: %w", err)
	}
	return nil
}
