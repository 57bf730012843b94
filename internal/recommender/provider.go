package recommender

import (
	"context"

	"github.com/yuqianw/smart-wardrobe/internal/domain"
)

// ClothingItemPayload is the wire shape an item takes toward a
// recommendation backend. Color reuses the brand field as a stand-in
// since items do not carry a color of their own.
type ClothingItemPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category,omitempty"`
	Color       string   `json:"color,omitempty"`
	Tags        []string `json:"tags"`
}

// WeatherPayload is the reduced weather context sent to a backend
type WeatherPayload struct {
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
	City      string `json:"city"`
}

// OutfitRequest is the request body of the generate-outfit contract
type OutfitRequest struct {
	Items   []ClothingItemPayload `json:"items"`
	Weather WeatherPayload        `json:"weather"`
	Vibe    string                `json:"vibe"`
}

// OutfitResponse is the response body of the generate-outfit contract
type OutfitResponse struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ItemIDs       []string `json:"item_ids"`
	StyleCategory string   `json:"style_category"`
}

// Provider defines the interface for outfit recommendation backends
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if the provider has what it needs to run
	IsConfigured() bool

	// Recommend produces an outfit from eligible items and current weather
	Recommend(ctx context.Context, items []domain.ClothingItem, weather domain.WeatherData) (*domain.RecommendationResult, error)
}

// BuildRequest maps items and weather into the generate-outfit wire shape
func BuildRequest(items []domain.ClothingItem, weather domain.WeatherData, vibe string) OutfitRequest {
	payload := make([]ClothingItemPayload, 0, len(items))
	for _, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		payload = append(payload, ClothingItemPayload{
			ID:          item.ID.String(),
			Name:        item.Name,
			Category:    string(item.Category),
			SubCategory: item.SubCategory,
			Color:       item.Brand,
			Tags:        tags,
		})
	}
	return OutfitRequest{
		Items: payload,
		Weather: WeatherPayload{
			Temp:      weather.Temp,
			Condition: weather.Condition,
			City:      weather.City,
		},
		Vibe: vibe,
	}
}

// SelectItems returns the subset of items whose ID appears in ids,
// preserving input order. Unknown IDs are ignored; an empty result is
// valid.
func SelectItems(items []domain.ClothingItem, ids []string) []domain.ClothingItem {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]domain.ClothingItem, 0, len(ids))
	for _, item := range items {
		if _, ok := wanted[item.ID.String()]; ok {
			selected = append(selected, item)
		}
	}
	return selected
}
