package mark_all_notifications_read

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle PUT /api/v1/users/{userId}/notifications/read-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseUUID(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("PUT /users/{userId}/notifications/read-all - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	result, err := h.service.MarkAllRead(r.Context(), caller, userID)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "PUT /users/{userId}/notifications/read-all", err)
		return
	}

	h.logger.Info("PUT /users/{userId}/notifications/read-all - Marked read: user_id=%s, updated=%d", userID, result.Updated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
