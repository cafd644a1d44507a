package mark_all_notifications_read

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
)

type NotificationService interface {
	MarkAllRead(ctx context.Context, caller domain.Caller, userID uuid.UUID) (*models.MarkAllReadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
