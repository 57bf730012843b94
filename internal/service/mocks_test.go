package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

// MockItemRepository mocks the ItemRepository interface
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.ClothingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.ClothingItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClothingItem), args.Error(1)
}

func (m *MockItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ClothingItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClothingItem), args.Error(1)
}

func (m *MockItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ItemStatus, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

// MockWeatherFetcher mocks the WeatherFetcher interface
type MockWeatherFetcher struct {
	mock.Mock
}

func (m *MockWeatherFetcher) FetchWeather(ctx context.Context, city string) (*domain.WeatherData, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherData), args.Error(1)
}

// MockProvider mocks the recommender.Provider interface
type MockProvider struct {
	mock.Mock
	name       string
	configured bool
}

func (m *MockProvider) Name() string       { return m.name }
func (m *MockProvider) IsConfigured() bool { return m.configured }

func (m *MockProvider) Recommend(ctx context.Context, items []domain.ClothingItem, weather domain.WeatherData) (*domain.RecommendationResult, error) {
	args := m.Called(ctx, items, weather)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationResult), args.Error(1)
}

// capturingFallback records what the rule-based path was handed
type capturingFallback struct {
	items   []domain.ClothingItem
	weather domain.WeatherData
	result  *domain.RecommendationResult
	called  bool
}

func (f *capturingFallback) Generate(items []domain.ClothingItem, weather domain.WeatherData) *domain.RecommendationResult {
	f.called = true
	f.items = items
	f.weather = weather
	if f.result != nil {
		return f.result
	}
	return &domain.RecommendationResult{Reason: "fallback", Weather: weather}
}
