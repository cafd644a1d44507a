package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

func newNotification(userID uuid.UUID, title string) *domain.Notification {
	return &domain.Notification{
		UserID:   userID,
		Type:     domain.NotificationSystem,
		Title:    title,
		Message:  "Clinic will be closed on Monday",
		Priority: domain.PriorityMedium,
	}
}

func TestRepository_Inbox(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first, err := repo.Create(ctx, newNotification(userID, "first"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newNotification(userID, "second"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newNotification(uuid.New(), "foreign"))
	require.NoError(t, err)

	all, err := repo.ListByUser(ctx, domain.NotificationsFilter{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.MarkRead(ctx, first.ID))

	unread, err := repo.CountByUser(ctx, domain.NotificationsFilter{UserID: userID, IsRead: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	updated, err := repo.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, repo.MarkRead(ctx, first.ID), ErrNotificationNotFound)
}
