package middleware

import (
	"context"

	"github.com/citaplan/booking-service/internal/domain"
)

// IdentityService интерфейс сервиса разрешения идентичности
type IdentityService interface {
	Resolve(ctx context.Context, userID int64) (domain.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
