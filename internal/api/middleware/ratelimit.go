package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/citaplan/booking-service/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimiter лимитер запросов с отдельным бакетом на пользователя
// Анонимные запросы лимитируются по удаленному адресу
type RateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
	logger   Logger
}

// NewRateLimiter создает новый лимитер
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
	}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// Middleware отклоняет запросы сверх лимита со статусом 429
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(UserIDHeader)
		if key == "" {
			key = r.RemoteAddr
		}

		if !l.getLimiter(key).Allow() {
			l.logger.Warn("ratelimit: request rejected for %s %s, key=%s", r.Method, r.URL.Path, key)
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
