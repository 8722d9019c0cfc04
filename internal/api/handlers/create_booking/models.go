package create_booking

import (
	"time"

	"github.com/citaplan/booking-service/internal/domain"
	createBooking "github.com/citaplan/booking-service/internal/usecase/create_booking"
	"github.com/citaplan/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	Weekday    string `json:"weekday"`   // "friday"
	Date       string `json:"date"`      // "2025-10-17"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "10:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"clientId"`
	BusinessID   int64   `json:"businessId"`
	ServiceID    int64   `json:"serviceId"`
	Weekday      string  `json:"weekday"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом даты, времени и дня недели)
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	weekday, err := domain.ParseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:   clientID,
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		Weekday:    weekday,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		BusinessID:   resp.BusinessID,
		ServiceID:    resp.ServiceID,
		Weekday:      string(resp.Weekday),
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
