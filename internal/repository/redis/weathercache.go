package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

const weatherCacheKey = "wardrobe:weather_cache"

// WeatherCache persists the single weather cache entry in Redis. The key
// is written without expiry: freshness is judged against the entry's own
// timestamp by the weather service, and an expired entry must remain
// readable as a stale fallback when the upstream is down.
type WeatherCache struct {
	client *Client
}

// NewWeatherCache creates a new weather cache
func NewWeatherCache(client *Client) *WeatherCache {
	return &WeatherCache{client: client}
}

// Get retrieves the cached weather entry, returning (nil, nil) on a miss
func (c *WeatherCache) Get(ctx context.Context) (*domain.CachedWeather, error) {
	data, err := c.client.rdb.Get(ctx, weatherCacheKey).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var entry domain.CachedWeather
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather cache: %w", err)
	}

	return &entry, nil
}

// Set stores the weather entry, replacing any previous one
func (c *WeatherCache) Set(ctx context.Context, entry *domain.CachedWeather) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal weather cache: %w", err)
	}

	return c.client.rdb.Set(ctx, weatherCacheKey, data, 0).Err()
}

// Invalidate removes the cached entry
func (c *WeatherCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, weatherCacheKey).Err()
}
