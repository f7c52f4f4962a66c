package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const ListingCacheTTL = 10 * time.Minute

// TranscriptCache caches per-user transcript listings. Entries are
// invalidated on save; word counts written later by the worker may lag by
// up to the TTL.
type TranscriptCache struct {
	client *redis.Client
}

func NewTranscriptCache(client *redis.Client) *TranscriptCache {
	return &TranscriptCache{client: client}
}

// Get returns the cached listing, or nil on a miss.
func (c *TranscriptCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

// Set stores data under key with the listing TTL.
func (c *TranscriptCache) Set(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, ListingCacheTTL).Err()
}

// Invalidate drops the cached listing for key.
func (c *TranscriptCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// UserTranscriptsKey builds the cache key for a user's transcript listing.
func UserTranscriptsKey(username string) string {
	return fmt.Sprintf("transcripts:user:%s", username)
}
