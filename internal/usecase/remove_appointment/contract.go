package remove_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
}

// ServiceRepository переключение доступности услуги
type ServiceRepository interface {
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
