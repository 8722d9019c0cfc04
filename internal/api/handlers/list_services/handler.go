package list_services

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citaplan/booking-service/internal/api/handlers"
	"github.com/citaplan/booking-service/internal/api/middleware"
)

const msgInvalidBusinessID = "некорректный ID бизнеса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services
// Публичный эндпоинт возвращает только активные услуги,
// владелец бизнеса видит весь каталог
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	activeOnly := true
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		if principal.IsBusiness() && principal.BusinessID == businessID {
			activeOnly = false
		}
	}

	result, err := h.service.List(r.Context(), businessID, activeOnly)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/services - Services retrieved: business_id=%d, count=%d, active_only=%t",
		businessID, len(result.Services), activeOnly)
	handlers.RespondJSON(w, http.StatusOK, result)
}
