package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yuqianw/smart-wardrobe/internal/api/middleware"
	"github.com/yuqianw/smart-wardrobe/internal/api/response"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/service"
)

// WeatherProvider resolves current conditions for a city
type WeatherProvider interface {
	FetchWeather(ctx context.Context, city string) (*domain.WeatherData, error)
}

// RecommendationHandler handles outfit recommendation and weather requests
type RecommendationHandler struct {
	assistant *service.AssistantService
	weather   WeatherProvider
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(assistant *service.AssistantService, weather WeatherProvider) *RecommendationHandler {
	return &RecommendationHandler{assistant: assistant, weather: weather}
}

type recommendationRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

// Recommend handles POST /api/v1/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.assistant.GetSmartRecommendation(r.Context(), userID, req.City)
	if err != nil {
		writeWeatherError(w, err)
		return
	}

	response.OK(w, result)
}

// Weather handles GET /api/v1/weather?city=
func (h *RecommendationHandler) Weather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		response.BadRequest(w, "city query parameter is required")
		return
	}

	weather, err := h.weather.FetchWeather(r.Context(), city)
	if err != nil {
		writeWeatherError(w, err)
		return
	}

	response.OK(w, weather)
}

func writeWeatherError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCityNotFound):
		response.NotFound(w, "city not found")
	case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrTokenTTLTooLong):
		response.InternalError(w, "weather service misconfigured")
	default:
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			response.Error(w, http.StatusBadGateway, ue.Error())
			return
		}
		response.InternalError(w, "failed to process request")
	}
}
