package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/internal/service/availability/models"
	"github.com/citaplan/booking-service/pkg/ptr"
)

type fakeAvailabilityRepo struct {
	days map[domain.Weekday]*domain.DayAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{days: make(map[domain.Weekday]*domain.DayAvailability)}
}

func (f *fakeAvailabilityRepo) GetWeek(_ context.Context, _ int64) ([]*domain.DayAvailability, error) {
	result := make([]*domain.DayAvailability, 0, len(f.days))
	for _, weekday := range domain.AllWeekdays {
		if d, ok := f.days[weekday]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeAvailabilityRepo) SeedWeek(_ context.Context, days []*domain.DayAvailability) error {
	for _, d := range days {
		if _, exists := f.days[d.Weekday]; !exists {
			f.days[d.Weekday] = d
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) UpdateDay(_ context.Context, day *domain.DayAvailability) error {
	f.days[day.Weekday] = day
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var businessOwner = domain.Principal{UserID: 200, Role: domain.RoleBusiness, BusinessID: 1}

func defaultWeekPayload() []models.DayPayload {
	days := make([]models.DayPayload, 0, len(domain.AllWeekdays))
	for _, weekday := range domain.AllWeekdays {
		days = append(days, models.DayPayload{
			Weekday:        string(weekday),
			MorningStart:   ptr.Ptr("09:00"),
			MorningEnd:     ptr.Ptr("13:00"),
			AfternoonStart: ptr.Ptr("15:00"),
			AfternoonEnd:   ptr.Ptr("19:00"),
			Active:         weekday != domain.Sunday,
		})
	}
	return days
}

func TestService_GetWeek_SeedsDefaults(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, fakeTxManager{}, noopLogger{})

	resp, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, "monday", resp.Days[0].Weekday)
	assert.Equal(t, "sunday", resp.Days[6].Weekday)

	// Дефолтные окна и выходное воскресенье
	require.NotNil(t, resp.Days[0].MorningStart)
	assert.Equal(t, "08:00", *resp.Days[0].MorningStart)
	assert.True(t, resp.Days[0].Active)
	assert.False(t, resp.Days[6].Active)
}

func TestService_GetWeek_Idempotent(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, fakeTxManager{}, noopLogger{})

	first, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)

	// Повторный вызов не перезаписывает существующие дни
	repo.days[domain.Monday].Active = false
	second, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, second.Days, 7)
	assert.False(t, second.Days[0].Active)
	assert.True(t, first.Days[0].Active)
}

func TestService_UpdateWeek(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewService(repo, fakeTxManager{}, noopLogger{})

	resp, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{
		BusinessID: 1,
		Principal:  businessOwner,
		Days:       defaultWeekPayload(),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	require.NotNil(t, resp.Days[0].MorningStart)
	assert.Equal(t, "09:00", *resp.Days[0].MorningStart)
	assert.False(t, resp.Days[6].Active)
}

func TestService_UpdateWeek_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(days []models.DayPayload)
		wantErr error
	}{
		{
			name: "active day with missing window",
			mutate: func(days []models.DayPayload) {
				days[0].AfternoonStart = nil
				days[0].AfternoonEnd = nil
			},
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "window start after end",
			mutate: func(days []models.DayPayload) {
				days[2].MorningStart = ptr.Ptr("13:00")
				days[2].MorningEnd = ptr.Ptr("09:00")
			},
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "afternoon overlaps morning",
			mutate: func(days []models.DayPayload) {
				days[4].AfternoonStart = ptr.Ptr("12:00")
			},
			wantErr: ErrInvalidTemplate,
		},
		{
			name: "unknown weekday",
			mutate: func(days []models.DayPayload) {
				days[0].Weekday = "someday"
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "duplicate weekday",
			mutate: func(days []models.DayPayload) {
				days[1].Weekday = days[0].Weekday
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "bad time format",
			mutate: func(days []models.DayPayload) {
				days[0].MorningStart = ptr.Ptr("9am")
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAvailabilityRepo()
			svc := NewService(repo, fakeTxManager{}, noopLogger{})

			days := defaultWeekPayload()
			tt.mutate(days)

			_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{
				BusinessID: 1,
				Principal:  businessOwner,
				Days:       days,
			})
			require.ErrorIs(t, err, tt.wantErr)

			// Отклоненное обновление не оставляет частичных записей
			assert.Empty(t, repo.days)
		})
	}
}

func TestService_UpdateWeek_AccessControl(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), fakeTxManager{}, noopLogger{})

	client := domain.Principal{UserID: 100, Role: domain.RoleClient, ClientID: 5}
	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{
		BusinessID: 1,
		Principal:  client,
		Days:       defaultWeekPayload(),
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	otherBusiness := domain.Principal{UserID: 201, Role: domain.RoleBusiness, BusinessID: 2}
	_, err = svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{
		BusinessID: 1,
		Principal:  otherBusiness,
		Days:       defaultWeekPayload(),
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_UpdateWeek_PartialWeekRejected(t *testing.T) {
	svc := NewService(newFakeAvailabilityRepo(), fakeTxManager{}, noopLogger{})

	_, err := svc.UpdateWeek(context.Background(), &models.UpdateWeekRequest{
		BusinessID: 1,
		Principal:  businessOwner,
		Days:       defaultWeekPayload()[:5],
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
