package weather

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Fetcher fetches fresh conditions for a city
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*domain.WeatherData, error)
}

// Cache persists the single weather cache entry. Get returns (nil, nil)
// on a miss. Implementations must keep stale entries readable: the
// service falls back to them when a fetch fails outright.
type Cache interface {
	Get(ctx context.Context) (*domain.CachedWeather, error)
	Set(ctx context.Context, entry *domain.CachedWeather) error
}

// Service serves weather snapshots with a TTL cache and deduplication of
// concurrent requests for the same city string.
type Service struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
}

// NewService creates a weather service with the given cache TTL
func NewService(fetcher Fetcher, cache Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
	}
}

// FetchWeather returns conditions for a city. A cached entry is served
// while it is younger than the TTL and the city string matches exactly;
// otherwise a fetch is issued, shared between concurrent callers asking
// for the same city. On fetch failure a stale cache entry of any age is
// returned as last resort.
func (s *Service) FetchWeather(ctx context.Context, city string) (*domain.WeatherData, error) {
	if entry, err := s.cache.Get(ctx); err == nil && entry != nil {
		age := s.now().UnixMilli() - entry.Timestamp
		if entry.City == city && age < s.ttl.Milliseconds() {
			data := entry.Data
			return &data, nil
		}
	}

	v, err, _ := s.group.Do(city, func() (any, error) {
		return s.fetch(ctx, city)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.WeatherData), nil
}

func (s *Service) fetch(ctx context.Context, city string) (*domain.WeatherData, error) {
	data, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		if entry, cerr := s.cache.Get(ctx); cerr == nil && entry != nil {
			log.Warn().Str("city", city).Err(err).Msg("weather fetch failed, serving stale cache entry")
			stale := entry.Data
			return &stale, nil
		}
		return nil, err
	}

	entry := &domain.CachedWeather{
		Data:      *data,
		Timestamp: s.now().UnixMilli(),
		City:      city,
	}
	if err := s.cache.Set(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("failed to persist weather cache entry")
	}

	return data, nil
}
