// Package conflicts проверяет запрашиваемый интервал против сохранённых записей.
//
// Чтение идёт через репозиторий: если в контексте есть транзакция, строки дня
// блокируются, и последующая вставка в той же транзакции видит то же состояние.
package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/scheduling"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Detector детектор конфликтов расписания
type Detector struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewDetector создает новый экземпляр детектора
func NewDetector(appointmentRepo AppointmentRepository, logger Logger) *Detector {
	return &Detector{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// HasDuplicate true, если у пользователя уже есть неотменённая запись ровно на (date, start)
func (d *Detector) HasDuplicate(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	start types.TimeString,
	excludeID *uuid.UUID,
) (bool, error) {
	existing, err := d.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		UserID:    &userID,
		Date:      &date,
		Statuses:  []domain.AppointmentStatus{domain.StatusScheduled, domain.StatusCompleted},
		ExcludeID: excludeID,
	})
	if err != nil {
		d.logger.Error("HasDuplicate: failed to list appointments for user=%s: %v", userID, err)
		return false, fmt.Errorf("%w: HasDuplicate: %w", ErrInternal, err)
	}

	return scheduling.HasDuplicate(existing, userID, date, start, excludeID), nil
}

// HasTimeConflict true, если другая scheduled запись на date пересекает [start, end).
// Без end конфликт установить нельзя - возвращается false без обращения к хранилищу
func (d *Detector) HasTimeConflict(
	ctx context.Context,
	date time.Time,
	start types.TimeString,
	end *types.TimeString,
	excludeID *uuid.UUID,
) (bool, error) {
	if end == nil || end.IsZero() {
		d.logger.Warn("HasTimeConflict: no end time for date=%s start=%s, skipping check",
			date.Format(domain.DateFormat), start)
		return false, nil
	}

	existing, err := d.scheduledOn(ctx, date, excludeID)
	if err != nil {
		return false, err
	}

	return scheduling.HasTimeConflict(existing, date, start, end, excludeID), nil
}

// OccupiedIntervals интервалы scheduled записей на дату (любых услуг)
func (d *Detector) OccupiedIntervals(ctx context.Context, date time.Time) ([]domain.Interval, error) {
	existing, err := d.scheduledOn(ctx, date, nil)
	if err != nil {
		return nil, err
	}
	return scheduling.OccupiedIntervals(existing), nil
}

func (d *Detector) scheduledOn(ctx context.Context, date time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error) {
	existing, err := d.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		Date:      &date,
		Statuses:  []domain.AppointmentStatus{domain.StatusScheduled},
		ExcludeID: excludeID,
	})
	if err != nil {
		d.logger.Error("scheduledOn: failed to list appointments for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list scheduled appointments: %w", ErrInternal, err)
	}
	return existing, nil
}
