package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/internal/domain"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
	"github.com/citaplan/booking-service/internal/service/catalog/models"
	"github.com/citaplan/booking-service/pkg/ptr"
)

type fakeServiceRepo struct {
	nextID   int64
	services map[int64]*domain.Service
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[int64]*domain.Service)}
	for _, s := range services {
		repo.services[s.ID] = s
		if s.ID > repo.nextID {
			repo.nextID = s.ID
		}
	}
	return repo
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	f.nextID++
	svc.ID = f.nextID
	f.services[svc.ID] = svc
	return svc, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeServiceRepo) GetByBusiness(_ context.Context, businessID int64, activeOnly bool) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	for _, s := range f.services {
		if s.BusinessID != businessID {
			continue
		}
		if activeOnly && !s.Active {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	delete(f.services, id)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var (
	businessOwner = domain.Principal{UserID: 200, Role: domain.RoleBusiness, BusinessID: 1}
	client        = domain.Principal{UserID: 100, Role: domain.RoleClient, ClientID: 5}
)

func TestService_List(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Active: true},
		&domain.Service{ID: 2, BusinessID: 1, Name: "Архив", DurationMinutes: 30, Active: false},
	)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.List(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 1)

	resp, err = svc.List(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 2)
}

func TestService_Create(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), noopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		BusinessID:      1,
		Principal:       businessOwner,
		Name:            "Маникюр",
		DurationMinutes: 45,
		Price:           2000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.Active)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateServiceRequest
		wantErr error
	}{
		{
			name:    "empty name",
			req:     models.CreateServiceRequest{BusinessID: 1, Principal: businessOwner, Name: "  ", DurationMinutes: 30},
			wantErr: ErrInvalidInput,
		},
		{
			name: "name too long",
			req: models.CreateServiceRequest{
				BusinessID: 1, Principal: businessOwner,
				Name: strings.Repeat("а", domain.MaxServiceNameLength+1), DurationMinutes: 30,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero duration",
			req:     models.CreateServiceRequest{BusinessID: 1, Principal: businessOwner, Name: "Услуга", DurationMinutes: 0},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duration too long",
			req:     models.CreateServiceRequest{BusinessID: 1, Principal: businessOwner, Name: "Услуга", DurationMinutes: 481},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			req:     models.CreateServiceRequest{BusinessID: 1, Principal: businessOwner, Name: "Услуга", DurationMinutes: 30, Price: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "client cannot create",
			req:     models.CreateServiceRequest{BusinessID: 1, Principal: client, Name: "Услуга", DurationMinutes: 30},
			wantErr: ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeServiceRepo(), noopLogger{})
			_, err := svc.Create(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Update(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true},
	)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateServiceRequest{
		BusinessID: 1,
		ServiceID:  1,
		Principal:  businessOwner,
		Price:      ptr.Ptr(1800.0),
		Active:     ptr.Ptr(false),
	})
	require.NoError(t, err)

	// Nil-поля не изменились
	assert.Equal(t, "Стрижка", resp.Name)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 1800.0, resp.Price)
	assert.False(t, resp.Active)
}

func TestService_Update_ForeignServiceNotFound(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BusinessID: 2, Name: "Чужая", DurationMinutes: 30, Active: true},
	)
	svc := NewService(repo, noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateServiceRequest{
		BusinessID: 1,
		ServiceID:  1,
		Principal:  businessOwner,
		Price:      ptr.Ptr(100.0),
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Active: true},
	)
	svc := NewService(repo, noopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 1, 1, businessOwner))
	assert.NotContains(t, repo.services, int64(1))

	err := svc.Delete(context.Background(), 1, 999, businessOwner)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Delete_ClientDenied(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Active: true},
	)
	svc := NewService(repo, noopLogger{})

	err := svc.Delete(context.Background(), 1, 1, client)
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, repo.services, int64(1))
}
