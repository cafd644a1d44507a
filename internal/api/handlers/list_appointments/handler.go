package list_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments (только администратор)
// Query params: status, date, userId, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, limit, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	serviceReq, err := ToServiceRequest(r.URL.Query(), page, limit)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /appointments", err)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d, total=%d",
		len(result.Items), result.Pagination.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
