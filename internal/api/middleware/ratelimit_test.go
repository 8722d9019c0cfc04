package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	limiter := NewRateLimiter(1, 2, nopLogger{})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
		req.Header.Set(UserIDHeader, "100")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SeparateBucketsPerUser(t *testing.T) {
	limiter := NewRateLimiter(1, 1, nopLogger{})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	first.Header.Set(UserIDHeader, "100")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Бакет первого пользователя исчерпан, второй не затронут
	second := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	second.Header.Set(UserIDHeader, "200")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)

	repeat := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
	repeat.Header.Set(UserIDHeader, "100")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, repeat)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_DefaultBurst(t *testing.T) {
	limiter := NewRateLimiter(10, 0, nopLogger{})
	assert.Equal(t, 5, limiter.burst)
}
