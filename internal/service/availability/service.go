package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/internal/service/availability/models"
)

// Service сервис управления недельным шаблоном доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWeek возвращает недельный шаблон бизнеса в порядке Monday..Sunday
// Отсутствующие дни досоздаются идемпотентно из шаблона по умолчанию:
// 08:00-12:00 / 14:00-18:00, понедельник-суббота активны, воскресенье нет
func (s *Service) GetWeek(ctx context.Context, businessID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching week template for business=%d", businessID)

	days, err := s.availabilityRepo.GetWeek(ctx, businessID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	if len(days) < len(domain.AllWeekdays) {
		if days, err = s.seedWeek(ctx, businessID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("GetWeek: returning %d days for business=%d", len(days), businessID)
	return models.FromDomainWeek(businessID, days), nil
}

// UpdateWeek обновляет недельный шаблон целиком
// Доступно только самому бизнесу. Все семь дней проходят валидацию инвариантов
// до первой записи: нарушение в любом дне отклоняет все обновление
func (s *Service) UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: updating week template for business=%d by user=%d",
		req.BusinessID, req.Principal.UserID)

	if !req.Principal.IsBusiness() || req.Principal.BusinessID != req.BusinessID {
		s.logger.Warn("UpdateWeek: user=%d denied access to business=%d template",
			req.Principal.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	if len(req.Days) != len(domain.AllWeekdays) {
		s.logger.Warn("UpdateWeek: expected %d days, got %d", len(domain.AllWeekdays), len(req.Days))
		return nil, fmt.Errorf("%w: week template must contain all %d days",
			ErrInvalidInput, len(domain.AllWeekdays))
	}

	// Конвертируем и валидируем все дни до первой записи
	days := make([]*domain.DayAvailability, 0, len(req.Days))
	seen := make(map[domain.Weekday]bool, len(req.Days))

	for _, payload := range req.Days {
		day, err := payload.ToDomainDay(req.BusinessID)
		if err != nil {
			s.logger.Warn("UpdateWeek: invalid day payload %q: %v", payload.Weekday, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if seen[day.Weekday] {
			s.logger.Warn("UpdateWeek: duplicate weekday %s", day.Weekday)
			return nil, fmt.Errorf("%w: duplicate weekday %s", ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true

		if err := day.Validate(); err != nil {
			s.logger.Warn("UpdateWeek: template validation failed for %s: %v", day.Weekday, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}

		days = append(days, day)
	}

	// Гарантируем наличие строк недели, затем обновляем все дни в одной транзакции
	if _, err := s.seedWeek(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, day := range days {
			if err := s.availabilityRepo.UpdateDay(txCtx, day); err != nil {
				return fmt.Errorf("update %s: %w", day.Weekday, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateWeek: failed to update week for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeek: successfully updated week template for business=%d", req.BusinessID)

	updated, err := s.availabilityRepo.GetWeek(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("UpdateWeek: failed to re-read week for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(req.BusinessID, updated), nil
}

// seedWeek идемпотентно создает семь дней по умолчанию и перечитывает неделю
func (s *Service) seedWeek(ctx context.Context, businessID int64) ([]*domain.DayAvailability, error) {
	defaults := make([]*domain.DayAvailability, 0, len(domain.AllWeekdays))
	for _, weekday := range domain.AllWeekdays {
		defaults = append(defaults, domain.DefaultDayAvailability(businessID, weekday))
	}

	if err := s.availabilityRepo.SeedWeek(ctx, defaults); err != nil {
		s.logger.Error("seedWeek: failed to seed week for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: seedWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("seedWeek: ensured default week template for business=%d", businessID)

	days, err := s.availabilityRepo.GetWeek(ctx, businessID)
	if err != nil {
		s.logger.Error("seedWeek: failed to re-read week for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: seedWeek - repository error: %v", ErrInternal, err)
	}

	if len(days) != len(domain.AllWeekdays) {
		err := errors.New("week template incomplete after seed")
		s.logger.Error("seedWeek: %v for business=%d", err, businessID)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return days, nil
}
