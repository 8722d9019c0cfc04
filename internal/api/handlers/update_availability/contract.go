package update_availability

import (
	"context"

	"github.com/citaplan/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
