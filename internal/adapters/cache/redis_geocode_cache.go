package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
)

const (
	redisKeyPrefix = "geocode:"
	redisEntryTTL  = 30 * 24 * time.Hour
)

// RedisGeocodeCache is a Redis-backed cache mapping place names to
// coordinates. Entries expire after 30 days so stale geocodes age out.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

// Fetch cached coordinates for the given place names.
func (s *RedisGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(places))
	keys := make([]string, 0, len(places))
	for _, p := range places {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
		keys = append(keys, redisKeyPrefix+p)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	values, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			continue
		}

		var c domain.Coordinates
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode entry %q: %w", uniq[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

// Store place -> coordinate mappings in the cache.
func (s *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := s.Client.Pipeline()
	for place, c := range results {
		if strings.TrimSpace(place) == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}

		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("insert geocode cache place=%q: encode: %w", place, err)
		}

		pipe.Set(ctx, redisKeyPrefix+place, raw, redisEntryTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}

	return nil
}
