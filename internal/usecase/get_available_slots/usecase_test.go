package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/internal/domain"
	availabilityRepo "github.com/citaplan/booking-service/internal/infra/storage/availability"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
	"github.com/citaplan/booking-service/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeAvailabilityRepo struct {
	days map[domain.Weekday]*domain.DayAvailability
}

func (f *fakeAvailabilityRepo) GetByBusinessAndWeekday(_ context.Context, _ int64, weekday domain.Weekday) (*domain.DayAvailability, error) {
	day, ok := f.days[weekday]
	if !ok {
		return nil, availabilityRepo.ErrDayNotFound
	}
	return day, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func workingDay(t *testing.T, weekday domain.Weekday) *domain.DayAvailability {
	t.Helper()
	return &domain.DayAvailability{
		BusinessID:     1,
		Weekday:        weekday,
		MorningStart:   ptr.Ptr(mustTime(t, "08:00")),
		MorningEnd:     ptr.Ptr(mustTime(t, "12:00")),
		AfternoonStart: ptr.Ptr(mustTime(t, "14:00")),
		AfternoonEnd:   ptr.Ptr(mustTime(t, "18:00")),
		Active:         true,
	}
}

func newTestUseCase(
	t *testing.T,
	bookings []*domain.Booking,
	days map[domain.Weekday]*domain.DayAvailability,
	now time.Time,
) *UseCase {
	t.Helper()

	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeServiceRepo{services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true},
			11: {ID: 11, BusinessID: 1, Name: "Архивная услуга", DurationMinutes: 30, Active: false},
			12: {ID: 12, BusinessID: 2, Name: "Чужая услуга", DurationMinutes: 30, Active: true},
		}},
		&fakeAvailabilityRepo{days: days},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestUseCase_Execute_FullDay(t *testing.T) {
	// 2025-10-15 - среда; запрашиваем пятницу, фильтр по текущему времени не применяется
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	days := map[domain.Weekday]*domain.DayAvailability{
		domain.Friday: workingDay(t, domain.Friday),
	}

	uc := newTestUseCase(t, nil, days, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Friday,
	})
	require.NoError(t, err)

	// Два окна по 4 часа, услуга 30 минут: 8 + 8 слотов
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, "08:00 - 08:30", resp.Slots[0].Label)
	assert.Equal(t, "14:00 - 14:30", resp.Slots[8].Label)
	assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.Local), resp.Date)
	assert.Equal(t, domain.Friday, resp.Weekday)
}

func TestUseCase_Execute_BookingExcludesSlots(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	days := map[domain.Weekday]*domain.DayAvailability{
		domain.Friday: workingDay(t, domain.Friday),
	}
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusConfirmed,
			StartTime: mustTime(t, "09:00"),
			EndTime:   mustTime(t, "09:30"),
		},
	}

	uc := newTestUseCase(t, bookings, days, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Friday,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 15)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, mustTime(t, "09:00"), slot.StartTime)
	}
}

func TestUseCase_Execute_TodayFiltersPastSlots(t *testing.T) {
	// Запрашиваем слоты на сегодня в 10:05 - утро до 10:05 включительно недоступно
	now := time.Date(2025, 10, 15, 10, 5, 0, 0, time.Local)
	days := map[domain.Weekday]*domain.DayAvailability{
		domain.Wednesday: workingDay(t, domain.Wednesday),
	}

	uc := newTestUseCase(t, nil, days, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Wednesday,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local), resp.Date)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, mustTime(t, "10:30"), resp.Slots[0].StartTime)

	for _, slot := range resp.Slots {
		assert.True(t, slot.StartTime.IsAfter(mustTime(t, "10:05")))
	}
}

func TestUseCase_Execute_InactiveDayGivesEmptyList(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	sunday := workingDay(t, domain.Sunday)
	sunday.Active = false
	days := map[domain.Weekday]*domain.DayAvailability{
		domain.Sunday: sunday,
	}

	uc := newTestUseCase(t, nil, days, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Sunday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_MissingDayGivesEmptyList(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)

	uc := newTestUseCase(t, nil, map[domain.Weekday]*domain.DayAvailability{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Monday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_ServiceErrors(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	days := map[domain.Weekday]*domain.DayAvailability{
		domain.Friday: workingDay(t, domain.Friday),
	}

	uc := newTestUseCase(t, nil, days, now)

	tests := []struct {
		name      string
		serviceID int64
	}{
		{name: "unknown service", serviceID: 999},
		{name: "inactive service", serviceID: 11},
		{name: "service of another business", serviceID: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				BusinessID: 1,
				ServiceID:  tt.serviceID,
				Weekday:    domain.Friday,
			})
			require.ErrorIs(t, err, ErrServiceNotFound)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	uc := newTestUseCase(t, nil, nil, now)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, ServiceID: 10, Weekday: domain.Friday})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Weekday: ""})
	require.ErrorIs(t, err, ErrInvalidInput)
}
