package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/citaplan/booking-service/pkg/types"
)

// Ошибки валидации шаблона доступности
var (
	// ErrIncompleteDay активный день должен иметь оба окна полностью заданными
	ErrIncompleteDay = errors.New("active day must have all four time bounds set")

	// ErrInvalidWindow начало окна должно быть строго раньше конца
	ErrInvalidWindow = errors.New("window start must be before window end")

	// ErrWindowsOverlap дневное окно не может начинаться раньше конца утреннего
	ErrWindowsOverlap = errors.New("afternoon window must not start before morning window ends")
)

// DayAvailability шаблон рабочих часов бизнеса на один день недели:
// до двух окон (утро и день) и флаг активности
type DayAvailability struct {
	ID         int64
	BusinessID int64
	Weekday    Weekday

	MorningStart   *types.TimeString
	MorningEnd     *types.TimeString
	AfternoonStart *types.TimeString
	AfternoonEnd   *types.TimeString

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Windows возвращает настроенные окна в хронологическом порядке (утро, затем день)
// У дня может быть одно окно, оба или ни одного
func (d *DayAvailability) Windows() []Slot {
	windows := make([]Slot, 0, 2)
	if d.MorningStart != nil && d.MorningEnd != nil {
		windows = append(windows, Slot{Start: *d.MorningStart, End: *d.MorningEnd})
	}
	if d.AfternoonStart != nil && d.AfternoonEnd != nil {
		windows = append(windows, Slot{Start: *d.AfternoonStart, End: *d.AfternoonEnd})
	}
	return windows
}

// Validate проверяет инварианты шаблона
// Для активного дня: все четыре времени заданы и корректны, начало каждого окна
// строго раньше его конца, дневное окно начинается не раньше конца утреннего
// Неактивный день может быть заполнен частично
func (d *DayAvailability) Validate() error {
	if d.Active {
		if d.MorningStart == nil || d.MorningEnd == nil || d.AfternoonStart == nil || d.AfternoonEnd == nil {
			return fmt.Errorf("%w: %s", ErrIncompleteDay, d.Weekday)
		}
	}

	for _, t := range []*types.TimeString{d.MorningStart, d.MorningEnd, d.AfternoonStart, d.AfternoonEnd} {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}

	if d.MorningStart != nil && d.MorningEnd != nil && !d.MorningStart.IsBefore(*d.MorningEnd) {
		return fmt.Errorf("%w: %s morning %s-%s", ErrInvalidWindow, d.Weekday, *d.MorningStart, *d.MorningEnd)
	}
	if d.AfternoonStart != nil && d.AfternoonEnd != nil && !d.AfternoonStart.IsBefore(*d.AfternoonEnd) {
		return fmt.Errorf("%w: %s afternoon %s-%s", ErrInvalidWindow, d.Weekday, *d.AfternoonStart, *d.AfternoonEnd)
	}
	if d.MorningEnd != nil && d.AfternoonStart != nil && d.AfternoonStart.IsBefore(*d.MorningEnd) {
		return fmt.Errorf("%w: %s", ErrWindowsOverlap, d.Weekday)
	}

	return nil
}

// DefaultDayAvailability шаблон дня по умолчанию: 08:00-12:00 и 14:00-18:00,
// активен каждый день кроме воскресенья
func DefaultDayAvailability(businessID int64, weekday Weekday) *DayAvailability {
	morningStart := types.TimeString(DefaultMorningStart)
	morningEnd := types.TimeString(DefaultMorningEnd)
	afternoonStart := types.TimeString(DefaultAfternoonStart)
	afternoonEnd := types.TimeString(DefaultAfternoonEnd)

	return &DayAvailability{
		BusinessID:     businessID,
		Weekday:        weekday,
		MorningStart:   &morningStart,
		MorningEnd:     &morningEnd,
		AfternoonStart: &afternoonStart,
		AfternoonEnd:   &afternoonEnd,
		Active:         weekday != Sunday,
	}
}
