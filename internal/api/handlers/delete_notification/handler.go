package delete_notification

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
)

const (
	msgInvalidID     = "некорректный идентификатор"
	msgMissingCaller = "отсутствует ID пользователя"
)

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

// Handle DELETE /api/v1/users/{userId}/notifications/{notificationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := handlers.ParseUUID(vars["userId"])
	if err != nil {
		h.logger.Warn("DELETE /users/{userId}/notifications/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	notificationID, err := handlers.ParseUUID(vars["notificationId"])
	if err != nil {
		h.logger.Warn("DELETE /users/{userId}/notifications/{id} - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	if err := h.service.Delete(r.Context(), caller, userID, notificationID); err != nil {
		handlers.RespondFailure(w, h.logger, "DELETE /users/{userId}/notifications/{id}", err)
		return
	}

	h.logger.Info("DELETE /users/{userId}/notifications/{id} - Notification deleted: notification_id=%s", notificationID)
	handlers.RespondNoContent(w)
}
