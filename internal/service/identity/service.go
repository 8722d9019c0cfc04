package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaplan/booking-service/internal/domain"
	businessRepo "github.com/citaplan/booking-service/internal/infra/storage/business"
	clientRepo "github.com/citaplan/booking-service/internal/infra/storage/client"
)

// Service сервис разрешения идентичности пользователя
// Вызывается один раз на запрос из middleware аутентификации
type Service struct {
	clientRepo   ClientRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса идентичности
func NewService(clientRepo ClientRepository, businessRepo BusinessRepository, logger Logger) *Service {
	return &Service{
		clientRepo:   clientRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Resolve определяет роль пользователя по его учетной записи
// Сначала ищется профиль клиента, затем профиль бизнеса.
// Пользователь без профиля - неизвестный принципал
func (s *Service) Resolve(ctx context.Context, userID int64) (domain.Principal, error) {
	client, err := s.clientRepo.GetByUserID(ctx, userID)
	if err == nil {
		return domain.Principal{
			UserID:   userID,
			Role:     domain.RoleClient,
			ClientID: client.ID,
		}, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("Resolve: client lookup failed for user=%d: %v", userID, err)
		return domain.Principal{}, fmt.Errorf("%w: Resolve - client lookup: %v", ErrInternal, err)
	}

	business, err := s.businessRepo.GetByUserID(ctx, userID)
	if err == nil {
		return domain.Principal{
			UserID:     userID,
			Role:       domain.RoleBusiness,
			BusinessID: business.ID,
		}, nil
	}
	if !errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Error("Resolve: business lookup failed for user=%d: %v", userID, err)
		return domain.Principal{}, fmt.Errorf("%w: Resolve - business lookup: %v", ErrInternal, err)
	}

	s.logger.Warn("Resolve: user=%d has no client or business profile", userID)
	return domain.Principal{}, ErrUnknownPrincipal
}
