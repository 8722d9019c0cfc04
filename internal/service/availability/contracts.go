package availability

import (
	"context"

	"github.com/citaplan/booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельного шаблона
type AvailabilityRepository interface {
	GetWeek(ctx context.Context, businessID int64) ([]*domain.DayAvailability, error)
	SeedWeek(ctx context.Context, days []*domain.DayAvailability) error
	UpdateDay(ctx context.Context, day *domain.DayAvailability) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
