package matcher

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pharmakart/platform/pkg/common/logger"
	"github.com/pharmakart/platform/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache of assembled candidate lists keyed by the
// mention's matching-relevant fields. It sits above the engine; the engine
// itself stays stateless. Cache failures are logged and never fatal, and
// catalog errors are never cached.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, mention models.MedicineMention) ([]models.MatchCandidate, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(mention)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Debug("match cache read failed")
		}
		return nil, false
	}
	var candidates []models.MatchCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		logger.Log.WithError(err).Warn("match cache entry corrupt, ignoring")
		return nil, false
	}
	return candidates, true
}

func (c *Cache) Set(ctx context.Context, mention models.MedicineMention, candidates []models.MatchCandidate) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to marshal match cache entry")
		return
	}
	if err := c.client.Set(ctx, cacheKey(mention), data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Debug("match cache write failed")
	}
}

func cacheKey(mention models.MedicineMention) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(mention.BrandText)),
		strings.ToLower(strings.TrimSpace(mention.Strength)),
		strings.ToLower(strings.TrimSpace(mention.Form)),
	}
	return "match:" + strings.Join(parts, "|")
}
