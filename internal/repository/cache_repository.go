package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

const (
	cacheKeyPrefix = "lecadmin:cache:"
	tagKeyPrefix   = "lecadmin:tag:"
)

// CacheRepository stores JSON payloads in Redis and keeps one version counter per tag.
// Invalidating a tag bumps its counter; entries written under older versions are never
// read again and age out through their TTL.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

// Get retrieves and unmarshals the cached value into the provided destination.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}

	return nil
}

// Set marshals the provided value and stores it with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, cacheKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// TagVersions returns the current version of every tag; unknown tags are at version 0.
func (r *CacheRepository) TagVersions(ctx context.Context, tags []string) ([]int64, error) {
	versions := make([]int64, len(tags))
	if r.client == nil || len(tags) == 0 {
		return versions, nil
	}
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = tagKeyPrefix + tag
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget tags: %w", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse tag version %s: %w", tags[i], err)
		}
		versions[i] = parsed
	}
	return versions, nil
}

// BumpTags advances the version of every tag, invalidating entries keyed on them.
func (r *CacheRepository) BumpTags(ctx context.Context, tags []string) error {
	if r.client == nil || len(tags) == 0 {
		return nil
	}
	pipe := r.client.TxPipeline()
	for _, tag := range tags {
		pipe.Incr(ctx, tagKeyPrefix+tag)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis bump tags: %w", err)
	}
	r.logger.Debug("cache tags invalidated", zap.Strings("tags", tags))
	return nil
}
