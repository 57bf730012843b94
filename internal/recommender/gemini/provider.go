package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yuqianw/smart-wardrobe/internal/config"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/recommender"
	"google.golang.org/api/option"
)

const serviceName = "gemini"

// Provider asks Gemini for an outfit directly, without going through the
// recommendation sidecar. It demands the same response JSON the sidecar
// produces, so downstream mapping is identical.
type Provider struct {
	apiKey string
	model  string
	vibe   string
}

// NewProvider creates a Gemini provider
func NewProvider(cfg config.GeminiConfig, vibe string) *Provider {
	if vibe == "" {
		vibe = "casual"
	}
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		vibe:   vibe,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "gemini"
}

// IsConfigured checks if the provider has an API key
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) defaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

// Recommend generates an outfit suggestion from the wardrobe and weather
// context. Model and transport failures surface as *domain.UpstreamError
// so the orchestrator treats them like a sidecar outage.
func (p *Provider) Recommend(ctx context.Context, items []domain.ClothingItem, weather domain.WeatherData) (*domain.RecommendationResult, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: fmt.Errorf("failed to create client: %w", err)}
	}
	defer client.Close()

	prompt, err := buildPrompt(items, weather, p.vibe)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	model := client.GenerativeModel(p.defaultModel())
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &domain.UpstreamError{Service: serviceName, Message: "empty response"}
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	out, err := parseResponse(output)
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: err}
	}

	return &domain.RecommendationResult{
		Items:         recommender.SelectItems(items, out.ItemIDs),
		Reason:        out.Description,
		Weather:       weather,
		Title:         out.Title,
		StyleCategory: out.StyleCategory,
	}, nil
}

func buildPrompt(items []domain.ClothingItem, weather domain.WeatherData, vibe string) (string, error) {
	req := recommender.BuildRequest(items, weather, vibe)
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("You are a fashion stylist. Given the wardrobe items, current weather and desired vibe below, ")
	b.WriteString("pick a coherent outfit using only the provided item ids.\n\n")
	b.Write(payload)
	b.WriteString("\n\nRespond with ONLY a JSON object of this exact shape:\n")
	b.WriteString(`{"title": string, "description": string, "item_ids": string[], "style_category": string}`)
	b.WriteString("\nitem_ids must be a subset of the ids above. Write title and description in the same language as the item names.")
	return b.String(), nil
}

// parseResponse tolerates markdown code fences around the JSON body
func parseResponse(output string) (*recommender.OutfitResponse, error) {
	cleaned := strings.TrimSpace(output)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var out recommender.OutfitResponse
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	return &out, nil
}
