package get_availability

import (
	"context"

	"github.com/citaplan/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	GetWeek(ctx context.Context, businessID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
