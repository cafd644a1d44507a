package update_appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeUseCase struct {
	got *updateAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateAppointment.Request) (*updateAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &updateAppointment.Response{ID: req.AppointmentID, StartTime: "10:00:00", Status: "scheduled"}, nil
}

func serve(uc *fakeUseCase, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_PartialUpdate(t *testing.T) {
	id := uuid.New()
	uc := &fakeUseCase{}

	rec := serve(uc, id.String(), `{"startTime":"10:00","notes":"перенос"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, id, uc.got.AppointmentID)
	require.NotNil(t, uc.got.StartTime)
	assert.Equal(t, types.TimeString("10:00:00"), *uc.got.StartTime)
	assert.Nil(t, uc.got.Date)
	assert.Nil(t, uc.got.ServiceID)
	assert.Nil(t, uc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "x", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, id, `{"date":"tomorrow"}`).Code)

	tests := []struct {
		err  error
		want int
	}{
		{updateAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{updateAppointment.ErrAccessDenied, http.StatusForbidden},
		{updateAppointment.ErrTimeConflict, http.StatusConflict},
		{updateAppointment.ErrAlreadyCancelled, http.StatusConflict},
		{fmt.Errorf("%w: cancelled -> completed", updateAppointment.ErrInvalidTransition), http.StatusConflict},
		{updateAppointment.ErrServiceUnavailable, http.StatusUnprocessableEntity},
		{updateAppointment.ErrInvalidTimeRange, http.StatusBadRequest},
		{updateAppointment.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeUseCase{err: tt.err}, id, `{"status":"completed"}`).Code)
		})
	}
}
