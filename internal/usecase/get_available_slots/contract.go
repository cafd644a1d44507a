package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// OccupancyReader занятые интервалы дня
type OccupancyReader interface {
	// OccupiedIntervals возвращает интервалы scheduled записей на дату, независимо от услуги
	OccupiedIntervals(ctx context.Context, date time.Time) ([]domain.Interval, error)
}

// SlotCache кэш рассчитанных слотов. Get отдает версию даты, Set пишет под ней
type SlotCache interface {
	Get(ctx context.Context, date time.Time, serviceID uuid.UUID, durationMinutes int) ([]domain.Interval, int64, bool, error)
	Set(ctx context.Context, date time.Time, version int64, serviceID uuid.UUID, durationMinutes int, slots []domain.Interval) error
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
