package create_notification

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	notification, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /notifications", err)
		return
	}

	h.logger.Info("POST /notifications - Notification created: notification_id=%s, user_id=%s, type=%s",
		notification.ID, notification.UserID, notification.Type)
	handlers.RespondJSON(w, http.StatusCreated, notification)
}
