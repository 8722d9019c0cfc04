package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citaplan/booking-service/internal/domain"
	availabilityRepo "github.com/citaplan/booking-service/internal/infra/storage/availability"
	serviceRepo "github.com/citaplan/booking-service/internal/infra/storage/service"
	"github.com/citaplan/booking-service/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, business=%d, service=%d, weekday=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.Weekday)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и проверяем, что она принадлежит бизнесу и доступна
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.BusinessID != req.BusinessID || !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d not bookable for business id=%d",
			req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 4. Разрешаем день недели в ближайшую дату
	date := req.Weekday.NextOccurrence(now)

	// 5. Получаем шаблон дня: отсутствующий или неактивный день - пустой список слотов
	day, err := uc.availabilityRepo.GetByBusinessAndWeekday(ctx, req.BusinessID, req.Weekday)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDayNotFound) {
			uc.logger.Info("GetAvailableSlots: no availability for business=%d on %s",
				req.BusinessID, req.Weekday)
			return uc.emptyResponse(req, date), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if !day.Active {
		uc.logger.Info("GetAvailableSlots: business=%d is closed on %s", req.BusinessID, req.Weekday)
		return uc.emptyResponse(req, date), nil
	}

	// 6. Генерируем слоты: утреннее окно, затем дневное, шаг = длительность услуги
	slots := generateDaySlots(day, service.DurationMinutes)

	// 7. Получаем активные бронирования на разрешенную дату
	filter := domain.BusinessBookingsFilter{
		BusinessID:       req.BusinessID,
		Date:             &date,
		IncludeCancelled: false,
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Убираем занятые слоты
	slots = filterConflicting(slots, bookings)

	// 9. Если дата - сегодня, убираем слоты, начинающиеся не позже текущего времени
	if isSameDay(date, now) {
		slots = filterPast(slots, types.NewTimeString(now))
	}

	uc.logger.Info("GetAvailableSlots: %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Weekday:    req.Weekday,
		Date:       date,
		Slots:      toResponseSlots(slots),
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, date time.Time) *Response {
	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Weekday:    req.Weekday,
		Date:       date,
		Slots:      []Slot{},
	}
}

// toResponseSlots конвертирует доменные слоты в модель ответа с метками "HH:MM - HH:MM"
func toResponseSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			StartTime: slot.Start,
			EndTime:   slot.End,
			Label:     slot.Label(),
		}
	}
	return result
}
