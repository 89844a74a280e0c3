package storage

import (
	"errors"
	"time"

	"travelmatch/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Redis-backed ephemera. None of this is consulted on the delivery hot path:
// live routing always goes through the in-process presence registry. These
// keys only let the HTTP surface answer "recently online?" and avoid
// recomputing suggestion rankings on every request.

// SetLastSeen records a last-seen timestamp for the user with a short TTL.
func (s *Service) SetLastSeen(userID string) error {
	key := config.LastSeenPrefix + userID
	return s.Redis.Set(s.Ctx, key, time.Now().UTC().Format(time.RFC3339), config.LastSeenTTL).Err()
}

// GetLastSeen returns the recorded timestamp, or nil when the key expired.
func (s *Service) GetLastSeen(userID string) (*time.Time, error) {
	key := config.LastSeenPrefix + userID
	val, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CacheSuggestions stores a serialized suggestion list for the user.
func (s *Service) CacheSuggestions(userID string, payload []byte) error {
	key := config.SuggestionCachePref + userID
	return s.Redis.Set(s.Ctx, key, payload, config.SuggestionCacheTTL).Err()
}

// GetCachedSuggestions returns the cached payload, or nil on a cache miss.
func (s *Service) GetCachedSuggestions(userID string) ([]byte, error) {
	key := config.SuggestionCachePref + userID
	val, err := s.Redis.Get(s.Ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// InvalidateSuggestions drops the cached list, typically after a match is
// created or deleted for the user.
func (s *Service) InvalidateSuggestions(userID string) error {
	return s.Redis.Del(s.Ctx, config.SuggestionCachePref+userID).Err()
}
