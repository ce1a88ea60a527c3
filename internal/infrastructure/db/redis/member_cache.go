package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CloveTwilight3/doughmination-backend/internal/api/metrics"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
)

const (
	memberCacheKey = "members:raw"
	memberCacheTTL = 5 * time.Minute
)

// MemberCache caches the raw upstream member listing as one JSON blob.
// Tag mutations invalidate it so enrichment keyed by member name stays
// consistent with the listing.
type MemberCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMemberCache(client *redis.Client) *MemberCache {
	return &MemberCache{client: client, ttl: memberCacheTTL}
}

// Get returns (nil, nil) on a cache miss.
func (c *MemberCache) Get(ctx context.Context) ([]domain.Member, error) {
	raw, err := c.client.Get(ctx, memberCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.MemberCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("member cache get: %w", err)
	}

	var members []domain.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		metrics.MemberCacheTotal.WithLabelValues("miss").Inc()
		return nil, fmt.Errorf("member cache decode: %w", err)
	}
	metrics.MemberCacheTotal.WithLabelValues("hit").Inc()
	return members, nil
}

func (c *MemberCache) Set(ctx context.Context, members []domain.Member) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("member cache encode: %w", err)
	}
	return c.client.Set(ctx, memberCacheKey, raw, c.ttl).Err()
}

func (c *MemberCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, memberCacheKey).Err()
}
