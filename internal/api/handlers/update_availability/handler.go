package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/api/middleware"
	"github.com/citaplan/booking-service/internal/service/availability"
	"github.com/citaplan/booking-service/internal/service/availability/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "отсутствует ID пользователя"
	msgForbidden          = "изменять расписание может только владелец бизнеса"
	msgInvalidTemplate    = "некорректный шаблон недели"
	msgInvalidInput       = "некорректные данные шаблона"
)

// UpdateWeekRequest HTTP request model
type UpdateWeekRequest struct {
	Days []models.DayPayload `json:"days"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/availability - Missing principal: business_id=%d", businessID)
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpdateWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWeek(r.Context(), &models.UpdateWeekRequest{
		BusinessID: businessID,
		Principal:  principal,
		Days:       req.Days,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/availability - Access denied: business_id=%d, user_id=%d", businessID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidTemplate):
			h.logger.Warn("PUT /businesses/{id}/availability - Invalid template: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/availability - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /businesses/{id}/availability - Failed to update week: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/availability - Week updated: business_id=%d, user_id=%d", businessID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
