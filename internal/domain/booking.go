package domain

import (
	"time"

	"github.com/citaplan/booking-service/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CancelActor кто отменил бронирование
type CancelActor string

const (
	CancelledByClient   CancelActor = "client"
	CancelledByBusiness CancelActor = "business"
)

// Booking запись о бронировании услуги на конкретную дату и время
type Booking struct {
	ID         int64
	ClientID   int64
	BusinessID int64
	ServiceID  int64

	Weekday   Weekday   // Избыточное поле: день недели даты (для истории)
	Date      time.Time // Календарная дата (без времени)
	StartTime types.TimeString
	EndTime   types.TimeString

	Status             BookingStatus
	CancelledBy        *CancelActor
	CancellationReason *string
	CancelledAt        *time.Time

	// Денормализованные данные услуги на момент бронирования
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот (не отменено)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeConfirmed подтверждение допустимо только из pending
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelledByClient клиент может отменить только ожидающее бронирование
func (b *Booking) CanBeCancelledByClient() bool {
	return b.Status == StatusPending
}

// CanBeCancelledByBusiness бизнес может отменить ожидающее или подтвержденное бронирование
func (b *Booking) CanBeCancelledByBusiness() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Range возвращает занимаемый бронированием интервал как слот
func (b *Booking) Range() Slot {
	return Slot{Start: b.StartTime, End: b.EndTime}
}

// BusinessBookingsFilter фильтр для выборки бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID       int64          // Обязательный параметр
	Date             *time.Time     // Конкретная дата (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}

// ParseBookingStatus проверяет, что строка является допустимым статусом
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}
