package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yuqianw/smart-wardrobe/internal/api/handler"
	"github.com/yuqianw/smart-wardrobe/internal/api/middleware"
	"github.com/yuqianw/smart-wardrobe/internal/config"
	"github.com/yuqianw/smart-wardrobe/internal/recommender"
	"github.com/yuqianw/smart-wardrobe/internal/recommender/aiservice"
	"github.com/yuqianw/smart-wardrobe/internal/recommender/gemini"
	"github.com/yuqianw/smart-wardrobe/internal/repository/postgres"
	redisrepo "github.com/yuqianw/smart-wardrobe/internal/repository/redis"
	"github.com/yuqianw/smart-wardrobe/internal/security"
	"github.com/yuqianw/smart-wardrobe/internal/service"
	"github.com/yuqianw/smart-wardrobe/internal/weather"
)

// NewRouter builds the HTTP router and wires all application components
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redisrepo.Client) http.Handler {
	// Repositories
	itemRepo := postgres.NewItemRepository(db)
	weatherCache := redisrepo.NewWeatherCache(redisClient)
	rateLimiter := redisrepo.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Weather pipeline
	tokens := weather.NewTokenIssuer(cfg.Weather)
	weatherClient := weather.NewClient(cfg.Weather, tokens)
	weatherService := weather.NewService(weatherClient, weatherCache, cfg.Weather.CacheTTL)

	// Recommendation providers
	registry := recommender.NewRegistry(cfg.Recommender.DefaultProvider)
	registry.Register(aiservice.NewProvider(cfg.Recommender.AIServiceURL, cfg.Recommender.Vibe))
	registry.Register(gemini.NewProvider(cfg.Recommender.Gemini, cfg.Recommender.Vibe))

	// Services
	assistantService := service.NewAssistantService(weatherService, itemRepo, registry, nil)
	wardrobeService := service.NewWardrobeService(itemRepo)

	// Auth
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Handlers
	healthHandler := handler.NewHealthHandler(db, redisClient)
	itemHandler := handler.NewItemHandler(wardrobeService)
	recHandler := handler.NewRecommendationHandler(assistantService, weatherService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ready", healthHandler.Ready)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtManager))
			r.Use(middleware.RateLimitMiddleware(rateLimiter))

			r.Get("/weather", recHandler.Weather)
			r.Post("/recommendations", recHandler.Recommend)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", itemHandler.List)
				r.Post("/", itemHandler.Create)
				r.Get("/{itemID}", itemHandler.Get)
				r.Patch("/{itemID}/status", itemHandler.UpdateStatus)
			})
		})
	})

	return r
}
