package userservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

func TestClient_GetUser(t *testing.T) {
	known := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/users/"+known.String() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: known, Name: "Ann", Role: "client"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	user, err := client.GetUser(context.Background(), known)
	require.NoError(t, err)
	assert.Equal(t, known, user.ID)

	_, err = client.GetUserWithGracefulDegradation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_GracefulDegradation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetUserWithGracefulDegradation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("", time.Second, logger.NewNop())

	_, err := client.GetUserWithGracefulDegradation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
