package create_booking

import (
	"errors"
	"net/http"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/api/middleware"
	createBooking "github.com/citaplan/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRequestField = "некорректный формат даты, времени или дня недели"
	msgMissingPrincipal    = "отсутствует ID пользователя"
	msgOnlyClients         = "создавать бронирования могут только клиенты"
	msgSlotTaken           = "выбранный временной слот уже занят"
	msgServiceNotFound     = "услуга не найдена"
	msgBusinessClosed      = "бизнес не работает в выбранный день"
	msgOutsideHours        = "интервал вне рабочих часов бизнеса"
	msgInvalidDate         = "некорректная дата бронирования"
	msgDurationMismatch    = "длительность интервала не совпадает с длительностью услуги"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if !principal.IsClient() {
		h.logger.Warn("POST /bookings - Non-client principal: user_id=%d, role=%s", principal.UserID, principal.Role)
		handlers.RespondForbidden(w, msgOnlyClients)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(principal.ClientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestField)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: client_id=%d, business_id=%d, date=%s, start=%s",
				principal.ClientID, req.BusinessID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: client_id=%d, business_id=%d, service_id=%d",
				principal.ClientID, req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrBusinessClosed):
			h.logger.Warn("POST /bookings - Business closed: client_id=%d, business_id=%d, weekday=%s",
				principal.ClientID, req.BusinessID, req.Weekday)
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: client_id=%d, business_id=%d, start=%s, end=%s",
				principal.ClientID, req.BusinessID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, business_id=%d, date=%s",
				principal.ClientID, req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDurationMismatch):
			h.logger.Warn("POST /bookings - Duration mismatch: client_id=%d, business_id=%d, service_id=%d",
				principal.ClientID, req.BusinessID, req.ServiceID)
			handlers.RespondBadRequest(w, msgDurationMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, business_id=%d, error=%v",
				principal.ClientID, req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, business_id=%d, error=%v",
				principal.ClientID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, client_id=%d, business_id=%d, date=%s, start=%s",
		result.ID, principal.ClientID, req.BusinessID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
