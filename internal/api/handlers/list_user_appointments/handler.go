package list_user_appointments

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidPage   = "некорректные параметры страницы"
	msgMissingCaller = "отсутствует ID пользователя"
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

// Handle GET /api/v1/users/{userId}/appointments
// Query params: status, page, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseUUID(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/appointments - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	page, limit, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	serviceReq := &models.ListUserAppointmentsRequest{
		UserID: userID,
		Status: handlers.OptionalString(r.URL.Query().Get("status")),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.service.ListByUser(r.Context(), caller, serviceReq)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /users/{userId}/appointments", err)
		return
	}

	h.logger.Info("GET /users/{userId}/appointments - Appointments retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
