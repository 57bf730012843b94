package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/yuqianw/smart-wardrobe/internal/api/response"
	redisrepo "github.com/yuqianw/smart-wardrobe/internal/repository/redis"
)

// RateLimitMiddleware limits requests per client using the Redis-backed
// limiter. Authenticated requests are keyed by user ID, anonymous ones
// by remote IP. Limiter outages fail open.
func RateLimitMiddleware(limiter *redisrepo.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, remaining, resetTime, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
