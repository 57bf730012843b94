package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/recommender"
)

var testWeather = domain.WeatherData{Temp: 18, Condition: "多云", City: "北京"}

func testInventory() []domain.ClothingItem {
	return []domain.ClothingItem{
		{ID: uuid.New(), Name: "白T恤", Category: domain.CategoryTops, Status: domain.StatusInWardrobe},
		{ID: uuid.New(), Name: "牛仔裤", Category: domain.CategoryBottoms, Status: domain.StatusInWardrobe},
		{ID: uuid.New(), Name: "衬衫", Category: domain.CategoryTops, Status: domain.StatusToWash},
	}
}

func newRegistry(p *MockProvider) *recommender.Registry {
	reg := recommender.NewRegistry(p.name)
	reg.Register(p)
	return reg
}

func TestGetSmartRecommendation_AIPath(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	inventory := testInventory()

	weather := new(MockWeatherFetcher)
	weather.On("FetchWeather", mock.Anything, "北京").Return(&testWeather, nil)

	items := new(MockItemRepository)
	items.On("ListByUser", mock.Anything, userID).Return(inventory, nil)

	aiResult := &domain.RecommendationResult{
		Items:         inventory[:2],
		Reason:        "清爽通勤",
		Weather:       testWeather,
		Title:         "休闲日常",
		StyleCategory: "casual",
	}
	provider := &MockProvider{name: "aiservice", configured: true}
	// The AI path must only see items that are physically in the wardrobe
	provider.On("Recommend", mock.Anything, mock.MatchedBy(func(got []domain.ClothingItem) bool {
		if len(got) != 2 {
			return false
		}
		for _, it := range got {
			if !it.Available() {
				return false
			}
		}
		return true
	}), testWeather).Return(aiResult, nil)

	fallback := &capturingFallback{}
	svc := NewAssistantService(weather, items, newRegistry(provider), fallback)

	result, err := svc.GetSmartRecommendation(ctx, userID, "北京")
	require.NoError(t, err)
	assert.Equal(t, aiResult, result)
	assert.False(t, fallback.called)

	provider.AssertExpectations(t)
}

func TestGetSmartRecommendation_FallsBackOnUpstreamError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	inventory := testInventory()

	weather := new(MockWeatherFetcher)
	weather.On("FetchWeather", mock.Anything, "北京").Return(&testWeather, nil)

	items := new(MockItemRepository)
	items.On("ListByUser", mock.Anything, userID).Return(inventory, nil)

	provider := &MockProvider{name: "aiservice", configured: true}
	provider.On("Recommend", mock.Anything, mock.Anything, testWeather).
		Return(nil, &domain.UpstreamError{Service: "ai-service", StatusCode: 503})

	fallback := &capturingFallback{}
	svc := NewAssistantService(weather, items, newRegistry(provider), fallback)

	result, err := svc.GetSmartRecommendation(ctx, userID, "北京")
	require.NoError(t, err)
	assert.True(t, fallback.called)
	assert.Equal(t, "fallback", result.Reason)
	assert.Empty(t, result.Title)

	// The fallback re-filters by category itself, so it gets the full
	// inventory including unavailable items.
	assert.Len(t, fallback.items, 3)
	assert.Equal(t, testWeather, fallback.weather)
}

func TestGetSmartRecommendation_NonUpstreamErrorPropagates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	weather := new(MockWeatherFetcher)
	weather.On("FetchWeather", mock.Anything, "北京").Return(&testWeather, nil)

	items := new(MockItemRepository)
	items.On("ListByUser", mock.Anything, userID).Return(testInventory(), nil)

	bug := errors.New("nil pointer somewhere")
	provider := &MockProvider{name: "aiservice", configured: true}
	provider.On("Recommend", mock.Anything, mock.Anything, testWeather).Return(nil, bug)

	fallback := &capturingFallback{}
	svc := NewAssistantService(weather, items, newRegistry(provider), fallback)

	_, err := svc.GetSmartRecommendation(ctx, userID, "北京")
	assert.ErrorIs(t, err, bug)
	assert.False(t, fallback.called, "only upstream failures trigger the fallback")
}

func TestGetSmartRecommendation_WeatherErrorPropagates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	weather := new(MockWeatherFetcher)
	weather.On("FetchWeather", mock.Anything, "nowhere").Return(nil, domain.ErrCityNotFound)

	items := new(MockItemRepository)
	items.On("ListByUser", mock.Anything, userID).Return([]domain.ClothingItem{}, nil).Maybe()

	provider := &MockProvider{name: "aiservice", configured: true}
	fallback := &capturingFallback{}
	svc := NewAssistantService(weather, items, newRegistry(provider), fallback)

	_, err := svc.GetSmartRecommendation(ctx, userID, "nowhere")
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
	assert.Contains(t, err.Error(), "failed to fetch weather")
	assert.False(t, fallback.called)
}

func TestGetSmartRecommendation_UnconfiguredProviderUsesFallback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	inventory := testInventory()

	weather := new(MockWeatherFetcher)
	weather.On("FetchWeather", mock.Anything, "北京").Return(&testWeather, nil)

	items := new(MockItemRepository)
	items.On("ListByUser", mock.Anything, userID).Return(inventory, nil)

	provider := &MockProvider{name: "aiservice", configured: false}
	fallback := &capturingFallback{}
	svc := NewAssistantService(weather, items, newRegistry(provider), fallback)

	result, err := svc.GetSmartRecommendation(ctx, userID, "北京")
	require.NoError(t, err)
	assert.True(t, fallback.called)
	assert.Len(t, fallback.items, 3)
	assert.Equal(t, "fallback", result.Reason)
}
