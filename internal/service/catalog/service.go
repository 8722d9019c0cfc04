package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/citaplan/booking-service/internal/domain"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
	"github.com/citaplan/booking-service/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает услуги бизнеса
// Публичный вызов возвращает только активные услуги; бизнес видит весь каталог
func (s *Service) List(ctx context.Context, businessID int64, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for business=%d, activeOnly=%t", businessID, activeOnly)

	services, err := s.serviceRepo.GetByBusiness(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d services for business=%d", len(services), businessID)
	return models.FromDomainServiceList(services), nil
}

// Create создает новую услугу
// Доступно только самому бизнесу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for business=%d by user=%d",
		req.Name, req.BusinessID, req.Principal.UserID)

	if err := s.checkBusinessAccess(req.Principal, req.BusinessID, "Create"); err != nil {
		return nil, err
	}

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	svc := &domain.Service{
		BusinessID:      req.BusinessID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainService(created), nil
}

// Update обновляет услугу
// Доступно только самому бизнесу; nil-поля запроса не изменяются
func (s *Service) Update(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d for business=%d by user=%d",
		req.ServiceID, req.BusinessID, req.Principal.UserID)

	if err := s.checkBusinessAccess(req.Principal, req.BusinessID, "Update"); err != nil {
		return nil, err
	}

	svc, err := s.getOwnedService(ctx, req.ServiceID, req.BusinessID, "Update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := validateServiceFields(svc.Name, svc.DurationMinutes, svc.Price); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", req.ServiceID)
	return models.FromDomainService(svc), nil
}

// Delete удаляет услугу вместе с ее бронированиями (каскад на уровне схемы)
func (s *Service) Delete(ctx context.Context, businessID, serviceID int64, principal domain.Principal) error {
	s.logger.Info("Delete: deleting service id=%d for business=%d by user=%d",
		serviceID, businessID, principal.UserID)

	if err := s.checkBusinessAccess(principal, businessID, "Delete"); err != nil {
		return err
	}

	if _, err := s.getOwnedService(ctx, serviceID, businessID, "Delete"); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", serviceID)
	return nil
}

// checkBusinessAccess проверяет, что принципал - владеющий бизнес
func (s *Service) checkBusinessAccess(principal domain.Principal, businessID int64, op string) error {
	if !principal.IsBusiness() || principal.BusinessID != businessID {
		s.logger.Warn("%s: user=%d denied access to business=%d catalog", op, principal.UserID, businessID)
		return ErrAccessDenied
	}
	return nil
}

// getOwnedService получает услугу и проверяет принадлежность бизнесу
func (s *Service) getOwnedService(ctx context.Context, serviceID, businessID int64, op string) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, serviceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if svc.BusinessID != businessID {
		s.logger.Warn("%s: service id=%d does not belong to business=%d", op, serviceID, businessID)
		return nil, ErrServiceNotFound
	}

	return svc, nil
}

// validateServiceFields проверяет бизнес-ограничения полей услуги
func validateServiceFields(name string, durationMinutes int, price float64) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	return nil
}
