package create_booking

import (
	"fmt"
	"time"

	"github.com/citaplan/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и что указанный день недели
// совпадает с фактическим днем недели даты
func validateDate(req *Request, now time.Time) error {
	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	if actual := domain.WeekdayOf(req.Date); actual != req.Weekday {
		return fmt.Errorf("%w: %s is a %s, not a %s",
			ErrInvalidDate, req.Date.Format(domain.DateFormat), actual, req.Weekday)
	}

	return nil
}

// validateDuration проверяет, что длина интервала равна длительности услуги
func validateDuration(req *Request, service *domain.Service) error {
	minutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if minutes != service.DurationMinutes {
		return fmt.Errorf("%w: requested %d minutes, service takes %d",
			ErrDurationMismatch, minutes, service.DurationMinutes)
	}

	return nil
}

// validateWithinWindows проверяет, что интервал целиком помещается
// в одно из рабочих окон дня
func validateWithinWindows(req *Request, day *domain.DayAvailability) error {
	for _, window := range day.Windows() {
		if !req.StartTime.IsBefore(window.Start) && !req.EndTime.IsAfter(window.End) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours, req.StartTime, req.EndTime)
}
