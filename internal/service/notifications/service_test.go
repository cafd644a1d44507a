package notifications

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ClinicService/pkg/apperr"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

func seedInbox(repo *fakeNotificationRepo, userID uuid.UUID, read, unread int) {
	for i := 0; i < read; i++ {
		repo.seed(domain.Notification{UserID: userID, Type: domain.NotificationSystem, Title: "t", Message: "m", IsRead: true})
	}
	for i := 0; i < unread; i++ {
		repo.seed(domain.Notification{UserID: userID, Type: domain.NotificationSystem, Title: "t", Message: "m"})
	}
}

func TestList_OwnInbox(t *testing.T) {
	repo := newFakeNotificationRepo()
	userID := uuid.New()
	seedInbox(repo, userID, 2, 3)
	seedInbox(repo, uuid.New(), 0, 4)

	svc := NewService(repo, nil, logger.NewNop())

	resp, err := svc.List(context.Background(), domain.Caller{UserID: userID}, &models.ListRequest{UserID: userID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 5, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 1, resp.Pagination.Page)

	resp, err = svc.List(context.Background(), domain.Caller{UserID: userID}, &models.ListRequest{UserID: userID, IsRead: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.Total)
	for _, item := range resp.Items {
		assert.False(t, item.IsRead)
	}
}

func TestList_ForeignInboxForbidden(t *testing.T) {
	svc := NewService(newFakeNotificationRepo(), nil, logger.NewNop())

	_, err := svc.List(context.Background(), domain.Caller{UserID: uuid.New()}, &models.ListRequest{UserID: uuid.New()})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestList_AdminSeesAnyInbox(t *testing.T) {
	repo := newFakeNotificationRepo()
	userID := uuid.New()
	seedInbox(repo, userID, 1, 1)

	svc := NewService(repo, nil, logger.NewNop())

	resp, err := svc.List(context.Background(), domain.Caller{UserID: uuid.New(), IsAdmin: true}, &models.ListRequest{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.Total)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	userID := uuid.New()
	seedInbox(repo, userID, 1, 4)
	caller := domain.Caller{UserID: userID}

	svc := NewService(repo, nil, logger.NewNop())

	count, err := svc.UnreadCount(context.Background(), caller, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count.Count)

	marked, err := svc.MarkAllRead(context.Background(), caller, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), marked.Updated)

	count, err = svc.UnreadCount(context.Background(), caller, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count.Count)
}

func TestMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	userID := uuid.New()
	id := repo.seed(domain.Notification{UserID: userID, Type: domain.NotificationSystem, Title: "t", Message: "m"})

	svc := NewService(repo, nil, logger.NewNop())

	require.NoError(t, svc.MarkRead(context.Background(), domain.Caller{UserID: userID}, userID, id))

	n, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
}

func TestMarkRead_NotificationOfAnotherUserIsNotFound(t *testing.T) {
	repo := newFakeNotificationRepo()
	owner := uuid.New()
	intruder := uuid.New()
	id := repo.seed(domain.Notification{UserID: owner, Type: domain.NotificationSystem, Title: "t", Message: "m"})

	svc := NewService(repo, nil, logger.NewNop())

	err := svc.MarkRead(context.Background(), domain.Caller{UserID: intruder}, intruder, id)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	err = svc.MarkRead(context.Background(), domain.Caller{UserID: intruder}, owner, id)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete(t *testing.T) {
	repo := newFakeNotificationRepo()
	userID := uuid.New()
	id := repo.seed(domain.Notification{UserID: userID, Type: domain.NotificationSystem, Title: "t", Message: "m"})

	svc := NewService(repo, nil, logger.NewNop())

	require.NoError(t, svc.Delete(context.Background(), domain.Caller{UserID: userID}, userID, id))

	err := svc.Delete(context.Background(), domain.Caller{UserID: userID}, userID, id)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestCreate(t *testing.T) {
	repo := newFakeNotificationRepo()
	pub := &fakePublisher{}
	svc := NewService(repo, pub, logger.NewNop())

	userID := uuid.New()
	resp, err := svc.Create(context.Background(), &models.CreateRequest{
		UserID:  userID,
		Type:    string(domain.NotificationAppointmentReminder),
		Title:   "  Напоминание  ",
		Message: "Завтра приём",
	})
	require.NoError(t, err)
	assert.Equal(t, "Напоминание", resp.Title)
	assert.Equal(t, string(domain.PriorityHigh), resp.Priority)
	assert.False(t, resp.IsRead)
	require.Len(t, pub.published, 1)
	assert.Equal(t, userID, pub.published[0].UserID)
}

func TestCreate_Validation(t *testing.T) {
	long := make([]rune, domain.MaxNotificationTitleLength+1)
	for i := range long {
		long[i] = 'а'
	}

	tests := []struct {
		name string
		req  models.CreateRequest
	}{
		{name: "no user", req: models.CreateRequest{Type: "system_notification", Title: "t", Message: "m"}},
		{name: "unknown type", req: models.CreateRequest{UserID: uuid.New(), Type: "spam", Title: "t", Message: "m"}},
		{name: "empty title", req: models.CreateRequest{UserID: uuid.New(), Type: "system_notification", Title: "  ", Message: "m"}},
		{name: "long title", req: models.CreateRequest{UserID: uuid.New(), Type: "system_notification", Title: string(long), Message: "m"}},
		{name: "empty message", req: models.CreateRequest{UserID: uuid.New(), Type: "system_notification", Title: "t"}},
		{name: "bad priority", req: models.CreateRequest{UserID: uuid.New(), Type: "system_notification", Title: "t", Message: "m", Priority: ptr.Ptr("urgent")}},
	}

	svc := NewService(newFakeNotificationRepo(), nil, logger.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestCreate_PublishFailureIsIgnored(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo, &fakePublisher{err: assert.AnError}, logger.NewNop())

	_, err := svc.Create(context.Background(), &models.CreateRequest{
		UserID: uuid.New(), Type: "system_notification", Title: "t", Message: "m",
	})
	require.NoError(t, err)
	assert.Len(t, repo.all(), 1)
}
