package create_notification

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
)

type NotificationService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
