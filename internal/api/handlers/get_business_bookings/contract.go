package get_business_bookings

import (
	"context"

	"github.com/citaplan/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	ListByBusiness(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
