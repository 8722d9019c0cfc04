package get_available_slots

import (
	"github.com/citaplan/booking-service/internal/domain"
	getAvailableSlots "github.com/citaplan/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "08:30"
	Label     string `json:"label"`     // "08:00 - 08:30"
}

// AvailableSlotsResponse HTTP ответ со списком свободных слотов
type AvailableSlotsResponse struct {
	BusinessID int64          `json:"businessId"`
	ServiceID  int64          `json:"serviceId"`
	Weekday    string         `json:"weekday"`
	Date       string         `json:"date"` // "2025-10-17"
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Label:     s.Label,
		})
	}

	return &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Weekday:    string(resp.Weekday),
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
