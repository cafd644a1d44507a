package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// ConflictDetector проверки пересечений и дублей
type ConflictDetector interface {
	HasTimeConflict(ctx context.Context, date time.Time, start types.TimeString, end *types.TimeString, excludeID *uuid.UUID) (bool, error)
	HasDuplicate(ctx context.Context, userID uuid.UUID, date time.Time, start types.TimeString, excludeID *uuid.UUID) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID uuid.UUID) (*userservice.User, error)
}

// NotificationEmitter best-effort уведомления о событиях записи
type NotificationEmitter interface {
	AppointmentEvent(ctx context.Context, typ domain.NotificationType, appt domain.Appointment)
}

// SlotCache сброс кэша свободных слотов на дату
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// MetricsRecorder счетчик событий жизненного цикла
type MetricsRecorder interface {
	RecordAppointmentEvent(event string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
