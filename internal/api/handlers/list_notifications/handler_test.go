package list_notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) List(_ context.Context, _ domain.Caller, req *models.ListRequest) (*models.NotificationListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.NotificationListResponse{Items: []models.NotificationResponse{}}, nil
}

func serve(svc *fakeService, userID, query string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/notifications"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	req = req.WithContext(middleware.WithCaller(req.Context(), domain.Caller{UserID: uuid.New()}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec.Code
}

func TestHandle(t *testing.T) {
	userID := uuid.New()
	svc := &fakeService{}

	require.Equal(t, http.StatusOK, serve(svc, userID.String(), "?isRead=false&page=2&limit=5"))
	assert.Equal(t, userID, svc.got.UserID)
	require.NotNil(t, svc.got.IsRead)
	assert.False(t, *svc.got.IsRead)
	assert.Equal(t, 2, svc.got.Page)
	assert.Equal(t, 5, svc.got.Limit)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, userID.String(), "?isRead=yes"))
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: notifications.ErrAccessDenied}, userID.String(), ""))
}
