package mark_notification_read

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

// Handle PUT /api/v1/users/{userId}/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := handlers.ParseUUID(vars["userId"])
	if err != nil {
		h.logger.Warn("PUT /users/{userId}/notifications/{id}/read - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	notificationID, err := handlers.ParseUUID(vars["notificationId"])
	if err != nil {
		h.logger.Warn("PUT /users/{userId}/notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	if err := h.service.MarkRead(r.Context(), caller, userID, notificationID); err != nil {
		handlers.RespondFailure(w, h.logger, "PUT /users/{userId}/notifications/{id}/read", err)
		return
	}

	handlers.RespondNoContent(w)
}
