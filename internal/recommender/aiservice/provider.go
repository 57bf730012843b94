package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/recommender"
)

const serviceName = "ai-service"

// Provider implements recommender.Provider against the outfit generation
// sidecar. The sidecar runs in the same trust zone, so no auth header is
// sent.
type Provider struct {
	baseURL string
	vibe    string
	client  *http.Client
}

// NewProvider creates an AI sidecar provider
func NewProvider(baseURL, vibe string) *Provider {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if vibe == "" {
		vibe = "casual"
	}
	return &Provider{
		baseURL: baseURL,
		vibe:    vibe,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "aiservice"
}

// IsConfigured checks if the provider has a service URL
func (p *Provider) IsConfigured() bool {
	return p.baseURL != ""
}

// Recommend posts the wardrobe and weather context to the sidecar and
// maps the returned item IDs back onto the input items. An empty match
// set is a valid result; only transport and HTTP failures are errors,
// surfaced as *domain.UpstreamError so the caller can fall back.
func (p *Provider) Recommend(ctx context.Context, items []domain.ClothingItem, weather domain.WeatherData) (*domain.RecommendationResult, error) {
	reqBody := recommender.BuildRequest(items, weather, p.vibe)

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate-outfit", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var out recommender.OutfitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &domain.RecommendationResult{
		Items:         recommender.SelectItems(items, out.ItemIDs),
		Reason:        out.Description,
		Weather:       weather,
		Title:         out.Title,
		StyleCategory: out.StyleCategory,
	}, nil
}
