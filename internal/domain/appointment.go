package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// AppointmentStatus статус записи на приём
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// AllStatuses закрытый список статусов
var AllStatuses = []AppointmentStatus{StatusScheduled, StatusCancelled, StatusCompleted}

// IsValid проверяет, что статус входит в перечисление
func (s AppointmentStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// allowedTransitions допустимые переходы статусов.
// Возврат в scheduled из завершённых статусов дополнительно требует доступности услуги
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCancelled, StatusCompleted},
	StatusCancelled: {StatusScheduled},
	StatusCompleted: {StatusScheduled},
}

// CanTransitionTo true, если из текущего статуса можно перейти в next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment запись клиента на услугу клиники
type Appointment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time        // Дата приёма (без времени)
	StartTime types.TimeString // HH:MM:SS
	EndTime   *types.TimeString
	Status    AppointmentStatus
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled true для активной (не отменённой и не завершённой) записи
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled true для отменённой записи
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Interval возвращает интервал [start, end) записи. ok=false, если конец не задан
func (a *Appointment) Interval() (Interval, bool) {
	if a.EndTime == nil || a.EndTime.IsZero() {
		return Interval{}, false
	}
	return Interval{Start: a.StartTime, End: *a.EndTime}, true
}

// Snapshot копия записи, нужна для уведомлений после изменения/отмены
func (a *Appointment) Snapshot() Appointment {
	cp := *a
	if a.EndTime != nil {
		cp.EndTime = ptr.Ptr(*a.EndTime)
	}
	if a.Notes != nil {
		cp.Notes = ptr.Ptr(*a.Notes)
	}
	return cp
}
