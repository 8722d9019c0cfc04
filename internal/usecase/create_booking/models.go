package create_booking

import (
	"time"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID   int64            // ID клиента (из принципала)
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	Weekday    domain.Weekday   // День недели (должен совпадать с датой)
	Date       time.Time        // Календарная дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время конца
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	ClientID     int64
	BusinessID   int64
	ServiceID    int64
	Weekday      domain.Weekday
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	ServiceName  string
	ServicePrice float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
