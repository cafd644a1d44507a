package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateName      = "услуга с таким названием уже существует"
)

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

// Handle POST /api/v1/services (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateName) {
			h.logger.Warn("POST /services - Duplicate name: name=%s", req.Name)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateName)
			return
		}
		handlers.RespondFailure(w, h.logger, "POST /services", err)
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%s, name=%s", service.ID, service.Name)
	handlers.RespondJSON(w, http.StatusCreated, service)
}
