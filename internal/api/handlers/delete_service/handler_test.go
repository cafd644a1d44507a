package delete_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Delete(context.Context, uuid.UUID) error {
	return f.err
}

func serve(svc *fakeService, id string) int {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/services/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec.Code
}

func TestHandle(t *testing.T) {
	id := uuid.NewString()
	assert.Equal(t, http.StatusNoContent, serve(&fakeService{}, id))
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "1"))
	assert.Equal(t, http.StatusConflict, serve(&fakeService{err: catalog.ErrServiceInUse}, id))
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: catalog.ErrServiceNotFound}, id))
}
