package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
)

const msgInvalidAvailable = "параметр available должен быть true или false"

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

// Handle GET /api/v1/services
// Query params: available (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	available, err := handlers.ParseOptionalBool(r, "available")
	if err != nil {
		h.logger.Warn("GET /services - Invalid available flag: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailable)
		return
	}

	services, err := h.service.List(r.Context(), available)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /services", err)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, services)
}
