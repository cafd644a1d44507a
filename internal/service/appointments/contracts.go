package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Count(ctx context.Context, filter domain.AppointmentsFilter) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceRepository освобождение услуги в модели singleResource
type ServiceRepository interface {
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache сброс кэша свободных слотов на дату
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// MetricsRecorder счетчик событий жизненного цикла
type MetricsRecorder interface {
	RecordAppointmentEvent(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
