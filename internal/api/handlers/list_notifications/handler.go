package list_notifications

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/users/{userId}/notifications
// Query params: isRead, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseUUID(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	isRead, err := handlers.ParseOptionalBool(r, "isRead")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid isRead: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	page, limit, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), caller, &models.ListRequest{
		UserID: userID,
		IsRead: isRead,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /users/{userId}/notifications", err)
		return
	}

	h.logger.Info("GET /users/{userId}/notifications - Notifications retrieved: user_id=%s, count=%d", userID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
