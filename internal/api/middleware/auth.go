package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/internal/service/identity"
)

const (
	// UserIDHeader заголовок с ID учетной записи пользователя
	// Заполняется вышестоящим API gateway после аутентификации
	UserIDHeader = "X-User-ID"

	msgMissingUserID   = "отсутствует заголовок X-User-ID"
	msgInvalidUserID   = "некорректный X-User-ID"
	msgUnknownUser     = "пользователь не зарегистрирован"
	msgIdentityFailure = "не удалось определить пользователя"
)

type principalContextKey struct{}

// PrincipalFromContext извлекает принципала, установленного Auth middleware
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(domain.Principal)
	return principal, ok
}

// WithPrincipal кладет принципала в контекст, минуя Auth middleware
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// Auth разрешает X-User-ID в принципала и кладет его в контекст запроса
// Запросы без валидного принципала до обработчиков не доходят
func Auth(identitySvc IdentityService, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(UserIDHeader)
			if header == "" {
				logger.Warn("auth: missing %s header for %s %s", UserIDHeader, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(header, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid %s header %q", UserIDHeader, header)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			principal, err := identitySvc.Resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, identity.ErrUnknownPrincipal) {
					logger.Warn("auth: user=%d has no profile", userID)
					handlers.RespondForbidden(w, msgUnknownUser)
					return
				}
				logger.Error("auth: failed to resolve user=%d: %v", userID, err)
				handlers.RespondError(w, http.StatusInternalServerError, msgIdentityFailure)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth разрешает принципала на публичных маршрутах, если заголовок
// передан и корректен. Запросы без заголовка или с нераспознанным
// пользователем проходят дальше анонимно
func OptionalAuth(identitySvc IdentityService, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(UserIDHeader)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := strconv.ParseInt(header, 10, 64)
			if err != nil || userID <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := identitySvc.Resolve(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, identity.ErrUnknownPrincipal) {
					logger.Warn("auth: failed to resolve optional user=%d: %v", userID, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
