package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, caller domain.Caller, id uuid.UUID) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, UserID: caller.UserID, Status: "scheduled"}, nil
}

func serve(svc *fakeService, id string, withCaller bool) int {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	if withCaller {
		req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{UserID: uuid.New()}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec.Code
}

func TestHandle(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, http.StatusOK, serve(&fakeService{}, id, true))
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "42", true))
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, id, false))
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: appointments.ErrAppointmentNotFound}, id, true))
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: appointments.ErrAccessDenied}, id, true))
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: appointments.ErrInternal}, id, true))
}
