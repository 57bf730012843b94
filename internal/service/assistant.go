package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/recommender"
	"github.com/yuqianw/smart-wardrobe/internal/recommender/rulebased"
	"golang.org/x/sync/errgroup"
)

// WeatherFetcher provides current conditions for a city
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, city string) (*domain.WeatherData, error)
}

// Fallback produces a recommendation without external dependencies
type Fallback interface {
	Generate(items []domain.ClothingItem, weather domain.WeatherData) *domain.RecommendationResult
}

// AssistantService orchestrates outfit recommendations: weather and
// inventory are gathered in parallel, the configured AI provider gets
// the first attempt, and the rule-based generator covers its failures.
type AssistantService struct {
	weather   WeatherFetcher
	items     domain.ItemRepository
	providers *recommender.Registry
	fallback  Fallback
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	weather WeatherFetcher,
	items domain.ItemRepository,
	providers *recommender.Registry,
	fallback Fallback,
) *AssistantService {
	if fallback == nil {
		fallback = rulebased.NewGenerator()
	}
	return &AssistantService{
		weather:   weather,
		items:     items,
		providers: providers,
		fallback:  fallback,
	}
}

// GetSmartRecommendation returns an outfit for the user and city. The AI
// path sees only in-wardrobe items; the rule-based fallback receives the
// full inventory and re-filters by status per category itself. A
// provider failure of type *domain.UpstreamError triggers the fallback;
// any other provider error is a bug upstream of us and propagates.
func (s *AssistantService) GetSmartRecommendation(ctx context.Context, userID uuid.UUID, city string) (*domain.RecommendationResult, error) {
	var (
		weather *domain.WeatherData
		items   []domain.ClothingItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.weather.FetchWeather(gctx, city)
		if err != nil {
			return fmt.Errorf("failed to fetch weather: %w", err)
		}
		weather = w
		return nil
	})
	g.Go(func() error {
		list, err := s.items.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch inventory: %w", err)
		}
		items = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	available := make([]domain.ClothingItem, 0, len(items))
	for _, item := range items {
		if item.Available() {
			available = append(available, item)
		}
	}

	provider, err := s.providers.Get("")
	if err != nil {
		log.Warn().Err(err).Msg("no recommendation provider available, using rule-based generator")
		return s.fallback.Generate(items, *weather), nil
	}

	result, err := provider.Recommend(ctx, available, *weather)
	if err != nil {
		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			return nil, err
		}
		log.Warn().
			Err(err).
			Str("provider", provider.Name()).
			Str("city", city).
			Msg("AI recommendation failed, falling back to rule-based generator")
		return s.fallback.Generate(items, *weather), nil
	}

	log.Info().
		Str("provider", provider.Name()).
		Str("title", result.Title).
		Str("style", result.StyleCategory).
		Int("items", len(result.Items)).
		Msg("AI recommendation succeeded")
	return result, nil
}
