package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/api/middleware"
	"github.com/citaplan/booking-service/internal/domain"
	getAvailableSlots "github.com/citaplan/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingWeekday    = "день недели обязателен"
	msgInvalidWeekday    = "некорректный день недели, ожидается monday..sunday"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidRequest    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services/{serviceId}/available-slots
// Query params: weekday (required, monday..sunday)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	weekdayStr := r.URL.Query().Get("weekday")
	if weekdayStr == "" {
		h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Missing weekday: business_id=%d", businessID)
		handlers.RespondBadRequest(w, msgMissingWeekday)
		return
	}

	weekday, err := domain.ParseWeekday(weekdayStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	// Эндпоинт публичный, принципал опционален
	var userID int64
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		userID = principal.UserID
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:     userID,
		BusinessID: businessID,
		ServiceID:  serviceID,
		Weekday:    weekday,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/services/{id}/available-slots - Invalid input: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /businesses/{id}/services/{id}/available-slots - Failed to get slots: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/services/{id}/available-slots - Slots retrieved: business_id=%d, service_id=%d, weekday=%s, slots_count=%d",
		businessID, serviceID, weekday, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
