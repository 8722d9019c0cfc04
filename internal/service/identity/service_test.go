package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citaplan/booking-service/internal/domain"
	businessRepo "github.com/citaplan/booking-service/internal/infra/storage/business"
	clientRepo "github.com/citaplan/booking-service/internal/infra/storage/client"
)

type fakeClientRepo struct {
	clients map[int64]*domain.Client
}

func (f *fakeClientRepo) GetByUserID(_ context.Context, userID int64) (*domain.Client, error) {
	c, ok := f.clients[userID]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

type fakeBusinessRepo struct {
	businesses map[int64]*domain.Business
}

func (f *fakeBusinessRepo) GetByUserID(_ context.Context, userID int64) (*domain.Business, error) {
	b, ok := f.businesses[userID]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return b, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestService_Resolve(t *testing.T) {
	svc := NewService(
		&fakeClientRepo{clients: map[int64]*domain.Client{
			100: {ID: 5, UserID: 100, Name: "Анна"},
		}},
		&fakeBusinessRepo{businesses: map[int64]*domain.Business{
			200: {ID: 1, UserID: 200, Name: "Салон"},
		}},
		noopLogger{},
	)

	t.Run("client", func(t *testing.T) {
		p, err := svc.Resolve(context.Background(), 100)
		require.NoError(t, err)
		assert.True(t, p.IsClient())
		assert.Equal(t, int64(5), p.ClientID)
		assert.Equal(t, int64(100), p.UserID)
	})

	t.Run("business", func(t *testing.T) {
		p, err := svc.Resolve(context.Background(), 200)
		require.NoError(t, err)
		assert.True(t, p.IsBusiness())
		assert.Equal(t, int64(1), p.BusinessID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), 999)
		require.ErrorIs(t, err, ErrUnknownPrincipal)
	})
}
