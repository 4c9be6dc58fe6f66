package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is a best-effort read-through JSON cache for listing endpoints.
// Every failure degrades to a miss; the database remains the source of
// truth and correctness never depends on the cache.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore builds a cache store. A nil client disables caching.
func NewStore(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// GetJSON loads a cached value into dest, reporting whether it was a hit.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, s.prefix+":"+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Debug("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores a value under key for the configured TTL.
func (s *Store) SetJSON(ctx context.Context, key string, value any) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Debug("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.prefix+":"+key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || s.client == nil || len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + ":" + key
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		s.logger.Debug("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
