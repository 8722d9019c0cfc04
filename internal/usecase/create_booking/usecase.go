package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaplan/booking-service/internal/domain"
	availabilityRepo "github.com/citaplan/booking-service/internal/infra/storage/availability"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции:
// из двух гонящихся запросов на пересекающиеся интервалы зафиксируется не больше одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, business=%d, service=%d, date=%s, time=%s-%s",
		req.ClientID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не в прошлом, день недели совпадает с датой
	if err := validateDate(req, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу и проверяем, что она принадлежит бизнесу и доступна
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.BusinessID != req.BusinessID || !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d not bookable for business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 5. Длина интервала равна длительности услуги
	if err := validateDuration(req, service); err != nil {
		uc.logger.Warn("CreateBooking: duration validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем шаблон дня и проверяем рабочие окна
	day, err := uc.availabilityRepo.GetByBusinessAndWeekday(ctx, req.BusinessID, req.Weekday)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDayNotFound) {
			uc.logger.Warn("CreateBooking: no availability for business=%d on %s",
				req.BusinessID, req.Weekday)
			return nil, ErrBusinessClosed
		}
		uc.logger.Error("CreateBooking: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if !day.Active {
		uc.logger.Warn("CreateBooking: business=%d is closed on %s", req.BusinessID, req.Weekday)
		return nil, ErrBusinessClosed
	}

	if err := validateWithinWindows(req, day); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	candidate := domain.Slot{Start: req.StartTime, End: req.EndTime}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Перечитываем активные бронирования дня с блокировкой (FOR UPDATE)
		filter := domain.BusinessBookingsFilter{
			BusinessID:       req.BusinessID,
			Date:             &req.Date,
			IncludeCancelled: false,
		}

		bookings, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Проверяем пересечение с каждым активным бронированием
		for _, existing := range bookings {
			if !existing.IsActive() {
				continue
			}
			if candidate.Overlaps(existing.Range()) {
				uc.logger.Warn("CreateBooking: slot %s-%s overlaps booking id=%d (%s-%s)",
					req.StartTime, req.EndTime, existing.ID, existing.StartTime, existing.EndTime)
				return ErrSlotTaken
			}
		}

		// 7.3. Создаем бронирование со статусом pending и денормализацией услуги
		// День недели пересчитывается из даты: избыточная колонка не может разойтись
		booking := &domain.Booking{
			ClientID:     req.ClientID,
			BusinessID:   req.BusinessID,
			ServiceID:    req.ServiceID,
			Weekday:      domain.WeekdayOf(req.Date),
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       domain.StatusPending,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		ClientID:     result.ClientID,
		BusinessID:   result.BusinessID,
		ServiceID:    result.ServiceID,
		Weekday:      result.Weekday,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
