package redis

import (
	"context"
	"fmt"
	"time"
)

// MarkerCache is a read-through cache over journey shown-markers. It only
// ever spares a database round-trip on page reloads; the markers table stays
// the source of truth, so a cold or unavailable cache is never incorrect.
type MarkerCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewMarkerCache(client RedisClient, ttl time.Duration) *MarkerCache {
	if ttl <= 0 {
		ttl = 48 * time.Hour // markers only matter for the current day
	}
	return &MarkerCache{client: client, ttl: ttl}
}

func markerKey(userID string, day int) string {
	return fmt.Sprintf("journey_shown:%d:%s", day, userID)
}

// Seen reports whether the marker is cached. Errors degrade to "not seen".
func (c *MarkerCache) Seen(ctx context.Context, userID string, day int) bool {
	if c == nil {
		return false
	}
	_, err := c.client.Get(ctx, markerKey(userID, day))
	return err == nil
}

// MarkSeen caches the marker, best effort. Markers are write-once, so the
// first writer wins and later writers keep the original TTL.
func (c *MarkerCache) MarkSeen(ctx context.Context, userID string, day int) {
	if c == nil {
		return
	}
	_, _ = c.client.SetNX(ctx, markerKey(userID, day), "1", c.ttl)
}
