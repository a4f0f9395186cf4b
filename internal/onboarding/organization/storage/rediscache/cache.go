// Package rediscache wraps an organization store with a Redis read-through cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/onboarding/internal/onboarding/organization"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "onboarding:org:"

// Cache serves organizations from Redis and falls back to the backing store on
// misses and Redis failures.
type Cache struct {
	base   organization.Store
	redis  redis.UniversalClient
	ttl    time.Duration
	logger zerolog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for Redis failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New builds a cache over base. A zero ttl disables writes to Redis.
func New(base organization.Store, client redis.UniversalClient, ttl time.Duration, opts ...Option) (*Cache, error) {
	if base == nil {
		return nil, errors.New("backing store is required")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("cache ttl must not be negative: %s", ttl)
	}
	c := &Cache{base: base, redis: client, ttl: ttl, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetOrganization returns a cached organization or loads it from the backing
// store. Not-found results are not cached.
func (c *Cache) GetOrganization(ctx context.Context, slug string) (organization.Organization, error) {
	slug = organization.NormalizeSlug(slug)
	if org, ok := c.load(ctx, slug); ok {
		return org, nil
	}
	org, err := c.base.GetOrganization(ctx, slug)
	if err != nil {
		return organization.Organization{}, err
	}
	c.store(ctx, org)
	return org, nil
}

// PutOrganization writes through to the backing store and evicts the entry.
func (c *Cache) PutOrganization(ctx context.Context, org organization.Organization) error {
	writer, ok := c.base.(organization.Writer)
	if !ok {
		return errors.New("backing store does not accept writes")
	}
	if err := writer.PutOrganization(ctx, org); err != nil {
		return err
	}
	c.Evict(ctx, org.Slug)
	return nil
}

// Evict drops the cached entry for slug.
func (c *Cache) Evict(ctx context.Context, slug string) {
	if c.redis == nil {
		return
	}
	key := cacheKey(organization.NormalizeSlug(slug))
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("evict organization cache entry")
	}
}

func (c *Cache) load(ctx context.Context, slug string) (organization.Organization, bool) {
	if c.redis == nil {
		return organization.Organization{}, false
	}
	key := cacheKey(slug)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("read organization cache")
		}
		return organization.Organization{}, false
	}
	var org organization.Organization
	if err := json.Unmarshal(data, &org); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("decode organization cache entry")
		_ = c.redis.Del(ctx, key).Err()
		return organization.Organization{}, false
	}
	if org.Projects == nil {
		org.Projects = []organization.Project{}
	}
	return org, true
}

func (c *Cache) store(ctx context.Context, org organization.Organization) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(org)
	if err != nil {
		return
	}
	key := cacheKey(org.Slug)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("write organization cache")
	}
}

func cacheKey(slug string) string {
	return keyPrefix + slug
}
