package delete_service

import (
	"context"

	"github.com/citaplan/booking-service/internal/domain"
)

type CatalogService interface {
	Delete(ctx context.Context, businessID, serviceID int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
