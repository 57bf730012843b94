package weather

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

type fakeFetcher struct {
	calls atomic.Int32
	delay time.Duration
	data  *domain.WeatherData
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, city string) (*domain.WeatherData, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	data := *f.data
	return &data, nil
}

type memCache struct {
	mu    sync.Mutex
	entry *domain.CachedWeather
}

func (c *memCache) Get(ctx context.Context) (*domain.CachedWeather, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry, nil
}

func (c *memCache) Set(ctx context.Context, entry *domain.CachedWeather) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = entry
	return nil
}

var beijingNow = &domain.WeatherData{Temp: 12, Condition: "多云", City: "北京"}

func TestFetchWeather_ServesFreshCacheEntry(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{data: beijingNow}
	cache := &memCache{entry: &domain.CachedWeather{
		Data:      domain.WeatherData{Temp: 5, Condition: "晴", City: "北京"},
		Timestamp: base.Add(-10 * time.Minute).UnixMilli(),
		City:      "北京",
	}}

	svc := NewService(fetcher, cache, 30*time.Minute)
	svc.now = func() time.Time { return base }

	data, err := svc.FetchWeather(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, 5, data.Temp, "fresh cache entry should be served as-is")
	assert.Equal(t, int32(0), fetcher.calls.Load())
}

func TestFetchWeather_CityMismatchBypassesCache(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{data: beijingNow}
	cache := &memCache{entry: &domain.CachedWeather{
		Data:      domain.WeatherData{Temp: 5, City: "上海"},
		Timestamp: base.UnixMilli(),
		City:      "上海",
	}}

	svc := NewService(fetcher, cache, 30*time.Minute)
	svc.now = func() time.Time { return base }

	data, err := svc.FetchWeather(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, 12, data.Temp)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	// The single cache slot now belongs to the new city
	assert.Equal(t, "北京", cache.entry.City)
	assert.Equal(t, base.UnixMilli(), cache.entry.Timestamp)
}

func TestFetchWeather_ExpiredEntryRefetches(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{data: beijingNow}
	cache := &memCache{entry: &domain.CachedWeather{
		Data:      domain.WeatherData{Temp: 5, City: "北京"},
		Timestamp: base.Add(-31 * time.Minute).UnixMilli(),
		City:      "北京",
	}}

	svc := NewService(fetcher, cache, 30*time.Minute)
	svc.now = func() time.Time { return base }

	data, err := svc.FetchWeather(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, 12, data.Temp)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestFetchWeather_StaleEntryServedOnFetchFailure(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{err: errors.New("upstream down")}
	cache := &memCache{entry: &domain.CachedWeather{
		Data:      domain.WeatherData{Temp: 5, Condition: "晴", City: "北京"},
		Timestamp: base.Add(-2 * time.Hour).UnixMilli(),
		City:      "北京",
	}}

	svc := NewService(fetcher, cache, 30*time.Minute)
	svc.now = func() time.Time { return base }

	data, err := svc.FetchWeather(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, 5, data.Temp, "stale entry of any age is the last resort")
}

func TestFetchWeather_FailureWithEmptyCache(t *testing.T) {
	fetchErr := errors.New("upstream down")
	fetcher := &fakeFetcher{err: fetchErr}
	cache := &memCache{}

	svc := NewService(fetcher, cache, 30*time.Minute)

	_, err := svc.FetchWeather(context.Background(), "北京")
	assert.ErrorIs(t, err, fetchErr)
}

func TestFetchWeather_ConcurrentRequestsShareOneFetch(t *testing.T) {
	fetcher := &fakeFetcher{data: beijingNow, delay: 50 * time.Millisecond}
	cache := &memCache{}

	svc := NewService(fetcher, cache, 30*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := svc.FetchWeather(context.Background(), "北京")
			assert.NoError(t, err)
			assert.Equal(t, 12, data.Temp)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load(), "concurrent requests for one city should share a single fetch")
}
