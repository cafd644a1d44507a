package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/pkg/apperr"
)

func TestRespondAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantText   string
	}{
		{"validation", apperr.New(apperr.KindValidation, "bad input"), http.StatusBadRequest, "validation_error", "bad input"},
		{"not found wrapped", fmt.Errorf("%w: id=1", apperr.New(apperr.KindNotFound, "missing")), http.StatusNotFound, "not_found", "missing: id=1"},
		{"unavailable", apperr.New(apperr.KindUnavailable, "closed"), http.StatusUnprocessableEntity, "unavailable", "closed"},
		{"conflict", apperr.New(apperr.KindConflict, "taken"), http.StatusConflict, "conflict", "taken"},
		{"forbidden", apperr.New(apperr.KindForbidden, "no"), http.StatusForbidden, "forbidden", "no"},
		{"internal hides cause", fmt.Errorf("%w: db: %w", apperr.New(apperr.KindInternal, "x"), errors.New("password leaked")), http.StatusInternalServerError, "internal_error", msgInternalError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error", msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantText, body.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "x", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)
}

func TestParsePage(t *testing.T) {
	page, limit, err := ParsePage(httptest.NewRequest(http.MethodGet, "/?page=2&limit=50", nil))
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)

	page, limit, err = ParsePage(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Zero(t, page)
	assert.Zero(t, limit)

	_, _, err = ParsePage(httptest.NewRequest(http.MethodGet, "/?page=0", nil))
	assert.Error(t, err)
	_, _, err = ParsePage(httptest.NewRequest(http.MethodGet, "/?limit=abc", nil))
	assert.Error(t, err)
}

func TestParseUUID(t *testing.T) {
	_, err := ParseUUID("00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
	_, err = ParseUUID("42")
	assert.Error(t, err)
	_, err = ParseUUID("6f1c1c3e-7d3a-4f57-9a51-0b1b8d7f2c10")
	assert.NoError(t, err)
}
