package list_appointments

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	userID := uuid.New()
	query := url.Values{
		"status": {"cancelled"},
		"date":   {"2025-09-16"},
		"userId": {userID.String()},
	}

	req, err := ToServiceRequest(query, 2, 10)
	require.NoError(t, err)
	require.NotNil(t, req.Status)
	assert.Equal(t, "cancelled", *req.Status)
	require.NotNil(t, req.Date)
	assert.Equal(t, time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC), *req.Date)
	require.NotNil(t, req.UserID)
	assert.Equal(t, userID, *req.UserID)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 10, req.Limit)

	req, err = ToServiceRequest(url.Values{}, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.Date)
	assert.Nil(t, req.UserID)

	_, err = ToServiceRequest(url.Values{"date": {"16.09.2025"}}, 0, 0)
	assert.Error(t, err)
	_, err = ToServiceRequest(url.Values{"userId": {"7"}}, 0, 0)
	assert.Error(t, err)
}
