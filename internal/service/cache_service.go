package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads and tag versions.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	TagVersions(ctx context.Context, tags []string) ([]int64, error)
	BumpTags(ctx context.Context, tags []string) error
}

// CacheService is the read cache in front of the store. It is never consulted for write
// decisions.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
	now        func() time.Time

	mu          sync.Mutex
	bypassUntil time.Time
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled, now: time.Now}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	if s == nil || !s.enabled || s.repo == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.now().Before(s.bypassUntil)
}

// Cached returns the value stored under key for the current versions of tags, computing
// and storing it on a miss. Cache failures degrade to computing; compute errors are
// returned unchanged. The boolean reports a cache hit.
func Cached[T any](ctx context.Context, s *CacheService, key string, ttl time.Duration, tags []string, compute func(context.Context) (T, error)) (T, bool, error) {
	if !s.Enabled() {
		value, err := compute(ctx)
		return value, false, err
	}

	versioned, err := s.versionedKey(ctx, key, tags)
	if err != nil {
		s.logger.Warn("cache tag lookup failed", zap.String("key", key), zap.Error(err))
		value, err := compute(ctx)
		return value, false, err
	}

	var cached T
	if hit := s.get(ctx, versioned, &cached); hit {
		return cached, true, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return value, false, err
	}
	s.set(ctx, versioned, value, ttl)
	return value, false, nil
}

// Invalidate evicts every entry tagged with any of tags. When the cache cannot be reached
// reads bypass it for one TTL so that no entry written before the mutation is served.
func (s *CacheService) Invalidate(ctx context.Context, tags ...string) error {
	if s == nil || !s.enabled || s.repo == nil || len(tags) == 0 {
		return nil
	}
	tags = uniqueStrings(tags)
	if err := s.repo.BumpTags(ctx, tags); err != nil {
		s.mu.Lock()
		s.bypassUntil = s.now().Add(s.defaultTTL)
		s.mu.Unlock()
		s.logger.Error("cache invalidate failed; bypassing cache", zap.Strings("tags", tags), zap.Duration("bypass", s.defaultTTL), zap.Error(err))
		return err
	}
	s.metrics.RecordInvalidation(len(tags))
	return nil
}

func (s *CacheService) versionedKey(ctx context.Context, key string, tags []string) (string, error) {
	if len(tags) == 0 {
		return key, nil
	}
	versions, err := s.repo.TagVersions(ctx, tags)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, tag := range tags {
		fmt.Fprintf(&b, "%s=%d;", tag, versions[i])
	}
	sum := sha1.Sum([]byte(b.String()))
	return key + "@" + hex.EncodeToString(sum[:8]), nil
}

func (s *CacheService) get(ctx context.Context, key string, dest interface{}) bool {
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

func (s *CacheService) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
