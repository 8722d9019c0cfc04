package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/internal/domain"
	availabilityRepo "github.com/citaplan/booking-service/internal/infra/storage/availability"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
	"github.com/citaplan/booking-service/pkg/ptr"
	"github.com/citaplan/booking-service/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

// fakeBookingStore in-memory хранилище бронирований
// Потокобезопасность обеспечивает fakeTxManager: чтение и запись выполняются
// внутри его мьютекса, как в настоящей сериализуемой транзакции
type fakeBookingStore struct {
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingStore) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if filter.Date != nil && !b.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

// fakeTxManager сериализует транзакции мьютексом
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

type testEnv struct {
	uc    *UseCase
	store *fakeBookingStore
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	store := &fakeBookingStore{}
	uc := NewUseCase(
		store,
		&fakeServiceRepo{services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true},
			11: {ID: 11, BusinessID: 1, Name: "Архивная услуга", DurationMinutes: 30, Active: false},
		}},
		&fakeAvailabilityRepo{days: map[domain.Weekday]*domain.DayAvailability{
			domain.Friday: workingDay(t, domain.Friday),
		}},
		&fakeTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{uc: uc, store: store}
}

// 2025-10-17 - пятница
func fridayRequest(t *testing.T, start, end string) *Request {
	t.Helper()
	return &Request{
		ClientID:   5,
		BusinessID: 1,
		ServiceID:  10,
		Weekday:    domain.Friday,
		Date:       time.Date(2025, 10, 17, 0, 0, 0, 0, time.Local),
		StartTime:  mustTime(t, start),
		EndTime:    mustTime(t, end),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	resp, err := env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, domain.Friday, resp.Weekday)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	require.Len(t, env.store.bookings, 1)
}

func TestUseCase_Execute_OverlapRejected(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
	}{
		{name: "identical interval", start: "09:00", end: "09:30"},
		{name: "overlapping from the left", start: "08:45", end: "09:15"},
		{name: "overlapping from the right", start: "09:15", end: "09:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), fridayRequest(t, tt.start, tt.end))
			require.ErrorIs(t, err, ErrSlotTaken)
		})
	}

	// Бронирование занимает ровно один слот, история не растет при отказах
	assert.Len(t, env.store.bookings, 1)
}

func TestUseCase_Execute_AdjacentIntervalsAllowed(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), fridayRequest(t, "09:30", "10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), fridayRequest(t, "08:30", "09:00"))
	require.NoError(t, err)

	assert.Len(t, env.store.bookings, 3)
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	resp, err := env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
	require.NoError(t, err)

	// Отменяем напрямую в хранилище
	for _, b := range env.store.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}

	_, err = env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
	require.NoError(t, err)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "start after end",
			mutate:  func(req *Request) { req.StartTime = mustTime(t, "10:00"); req.EndTime = mustTime(t, "09:30") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero client id",
			mutate:  func(req *Request) { req.ClientID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "date in the past",
			mutate:  func(req *Request) { req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.Local); req.Weekday = domain.Friday },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "weekday does not match date",
			mutate:  func(req *Request) { req.Weekday = domain.Monday },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "duration mismatch",
			mutate:  func(req *Request) { req.EndTime = mustTime(t, "10:00") },
			wantErr: ErrDurationMismatch,
		},
		{
			name:    "unknown service",
			mutate:  func(req *Request) { req.ServiceID = 999 },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "inactive service",
			mutate:  func(req *Request) { req.ServiceID = 11 },
			wantErr: ErrServiceNotFound,
		},
		{
			name: "outside working hours",
			mutate: func(req *Request) {
				req.StartTime = mustTime(t, "12:30")
				req.EndTime = mustTime(t, "13:00")
			},
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name: "interval crosses window boundary",
			mutate: func(req *Request) {
				req.StartTime = mustTime(t, "11:45")
				req.EndTime = mustTime(t, "12:15")
			},
			wantErr: ErrOutsideWorkingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, now)
			req := fridayRequest(t, "09:00", "09:30")
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.store.bookings)
		})
	}
}

func TestUseCase_Execute_ClosedDayRejected(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	// 2025-10-19 - воскресенье, шаблона дня нет
	req := fridayRequest(t, "09:00", "09:30")
	req.Weekday = domain.Sunday
	req.Date = time.Date(2025, 10, 19, 0, 0, 0, 0, time.Local)

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrBusinessClosed)
}

func TestUseCase_Execute_ConcurrentIdenticalBookings(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)
	env := newTestEnv(t, now)

	const attempts = 2
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), fridayRequest(t, "09:00", "09:30"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotTaken)
			conflicted++
		}
	}

	// Ровно одно из двух одинаковых конкурентных бронирований проходит
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, env.store.bookings, 1)
}
