package models

import (
	"errors"
	"fmt"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")
)

// Request модели

// DayPayload шаблон одного дня в запросе обновления недели
type DayPayload struct {
	Weekday        string  `json:"weekday"`
	MorningStart   *string `json:"morningStart,omitempty"`   // "08:00"
	MorningEnd     *string `json:"morningEnd,omitempty"`     // "12:00"
	AfternoonStart *string `json:"afternoonStart,omitempty"` // "14:00"
	AfternoonEnd   *string `json:"afternoonEnd,omitempty"`   // "18:00"
	Active         bool    `json:"active"`
}

// UpdateWeekRequest запрос на обновление недельного шаблона
type UpdateWeekRequest struct {
	BusinessID int64
	Principal  domain.Principal
	Days       []DayPayload
}

// ToDomainDay конвертирует payload дня в domain модель
func (p *DayPayload) ToDomainDay(businessID int64) (*domain.DayAvailability, error) {
	weekday, err := domain.ParseWeekday(p.Weekday)
	if err != nil {
		return nil, err
	}

	day := &domain.DayAvailability{
		BusinessID: businessID,
		Weekday:    weekday,
		Active:     p.Active,
	}

	if day.MorningStart, err = parseOptionalTime(p.MorningStart); err != nil {
		return nil, fmt.Errorf("%w: %s morningStart", ErrInvalidTime, weekday)
	}
	if day.MorningEnd, err = parseOptionalTime(p.MorningEnd); err != nil {
		return nil, fmt.Errorf("%w: %s morningEnd", ErrInvalidTime, weekday)
	}
	if day.AfternoonStart, err = parseOptionalTime(p.AfternoonStart); err != nil {
		return nil, fmt.Errorf("%w: %s afternoonStart", ErrInvalidTime, weekday)
	}
	if day.AfternoonEnd, err = parseOptionalTime(p.AfternoonEnd); err != nil {
		return nil, fmt.Errorf("%w: %s afternoonEnd", ErrInvalidTime, weekday)
	}

	return day, nil
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Response модели

// DayResponse шаблон одного дня в ответе
type DayResponse struct {
	Weekday        string  `json:"weekday"`
	MorningStart   *string `json:"morningStart,omitempty"`
	MorningEnd     *string `json:"morningEnd,omitempty"`
	AfternoonStart *string `json:"afternoonStart,omitempty"`
	AfternoonEnd   *string `json:"afternoonEnd,omitempty"`
	Active         bool    `json:"active"`
}

// WeekResponse недельный шаблон в порядке Monday..Sunday
type WeekResponse struct {
	BusinessID int64         `json:"businessId"`
	Days       []DayResponse `json:"days"`
}

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(d *domain.DayAvailability) DayResponse {
	return DayResponse{
		Weekday:        string(d.Weekday),
		MorningStart:   formatOptionalTime(d.MorningStart),
		MorningEnd:     formatOptionalTime(d.MorningEnd),
		AfternoonStart: formatOptionalTime(d.AfternoonStart),
		AfternoonEnd:   formatOptionalTime(d.AfternoonEnd),
		Active:         d.Active,
	}
}

// FromDomainWeek конвертирует список дней в DTO, сортируя Monday..Sunday
func FromDomainWeek(businessID int64, days []*domain.DayAvailability) *WeekResponse {
	byWeekday := make(map[domain.Weekday]*domain.DayAvailability, len(days))
	for _, d := range days {
		byWeekday[d.Weekday] = d
	}

	resp := &WeekResponse{
		BusinessID: businessID,
		Days:       make([]DayResponse, 0, len(days)),
	}
	for _, weekday := range domain.AllWeekdays {
		if d, ok := byWeekday[weekday]; ok {
			resp.Days = append(resp.Days, FromDomainDay(d))
		}
	}
	return resp
}

func formatOptionalTime(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
