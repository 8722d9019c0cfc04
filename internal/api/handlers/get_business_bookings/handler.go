package get_business_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/api/middleware"
	"github.com/citaplan/booking-service/internal/domain"
	"github.com/citaplan/booking-service/internal/service/bookings"
	"github.com/citaplan/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBusinessID       = "некорректный ID бизнеса"
	msgInvalidDate             = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus           = "некорректный статус бронирования"
	msgInvalidIncludeCancelled = "некорректное значение includeCancelled, ожидается true или false"
	msgMissingPrincipal        = "отсутствует ID пользователя"
	msgForbidden               = "доступ к бронированиям этого бизнеса запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/bookings
// Query params: date (optional, YYYY-MM-DD), status (optional),
// includeCancelled (optional, true|false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/bookings - Missing principal: business_id=%d", businessID)
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req := &models.GetBusinessBookingsRequest{
		BusinessID: businessID,
		Principal:  principal,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid date: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := r.URL.Query().Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid includeCancelled: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidIncludeCancelled)
			return
		}
		req.IncludeCancelled = include
	}

	result, err := h.service.ListByBusiness(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/bookings - Access denied: business_id=%d, user_id=%d", businessID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/bookings - Invalid status filter: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /businesses/{id}/bookings - Failed to list bookings: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/bookings - Bookings retrieved: business_id=%d, count=%d", businessID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
