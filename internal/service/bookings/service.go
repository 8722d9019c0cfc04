package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/citaplan/booking-service/internal/domain"
	bookingRepo "github.com/citaplan/booking-service/internal/infra/storage/booking"
	"github.com/citaplan/booking-service/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и переходов статусов
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видимость: клиент-владелец или бизнес, которому принадлежит бронирование.
// Для остальных бронирование не существует
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.getVisibleBooking(ctx, id, principal, "GetByID")
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListByClient получает историю бронирований клиента
// Клиент видит только собственную историю
func (s *Service) ListByClient(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByClient: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if !req.Principal.IsClient() || req.Principal.ClientID != req.ClientID {
		s.logger.Warn("ListByClient: user=%d denied access to client=%d history",
			req.Principal.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// ListByBusiness получает бронирования бизнеса с фильтрацией по дате и статусу
// Доступно только самому бизнесу
func (s *Service) ListByBusiness(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByBusiness: fetching bookings for business=%d by user=%d",
		req.BusinessID, req.Principal.UserID)

	if !req.Principal.IsBusiness() || req.Principal.BusinessID != req.BusinessID {
		s.logger.Warn("ListByBusiness: user=%d denied access to business=%d bookings",
			req.Principal.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByBusiness: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBusiness: successfully fetched %d bookings for business=%d",
		len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование
// Доступно только бизнесу; допустим единственный переход pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", id, principal.UserID)

	if !principal.IsBusiness() {
		s.logger.Warn("Confirm: user=%d is not a business", principal.UserID)
		return nil, ErrAccessDenied
	}

	booking, err := s.getVisibleBooking(ctx, id, principal, "Confirm")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed from status=%s", id, booking.Status)
		return nil, fmt.Errorf("%w: cannot confirm booking in status %s", ErrInvalidTransition, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed

	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только собственное ожидающее бронирование:
// отмена подтвержденного запрещена (нужно обращаться к бизнесу).
// Бизнес может отменить ожидающее или подтвержденное; повторная отмена
// уже отмененного бронирования для бизнеса - идемпотентный no-op
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	principal := req.Principal
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, principal.UserID)

	booking, err := s.getVisibleBooking(ctx, id, principal, "Cancel")
	if err != nil {
		return nil, err
	}

	var actor domain.CancelActor

	switch {
	case principal.IsClient():
		if !booking.CanBeCancelledByClient() {
			s.logger.Warn("Cancel: client=%d cannot cancel booking id=%d in status=%s",
				principal.ClientID, id, booking.Status)
			return nil, ErrAccessDenied
		}
		actor = domain.CancelledByClient

	case principal.IsBusiness():
		if booking.IsCancelled() {
			s.logger.Info("Cancel: booking id=%d already cancelled, no-op", id)
			return models.FromDomainBooking(booking), nil
		}
		if !booking.CanBeCancelledByBusiness() {
			s.logger.Warn("Cancel: business=%d cannot cancel booking id=%d in status=%s",
				principal.BusinessID, id, booking.Status)
			return nil, fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidTransition, booking.Status)
		}
		actor = domain.CancelledByBusiness

	default:
		return nil, ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, id, actor, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", id, actor)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to re-read booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

// getVisibleBooking получает бронирование и проверяет видимость для принципала
// Чужие бронирования не раскрываются: возвращается not found, а не access denied
func (s *Service) getVisibleBooking(ctx context.Context, id int64, principal domain.Principal, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	isOwnerClient := principal.IsClient() && principal.ClientID == booking.ClientID
	isOwnerBusiness := principal.IsBusiness() && principal.BusinessID == booking.BusinessID

	if !isOwnerClient && !isOwnerBusiness {
		s.logger.Warn("%s: user=%d has no access to booking id=%d", op, principal.UserID, id)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
