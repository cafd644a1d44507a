package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// HasTimeConflict true, если какая-либо другая запись со статусом scheduled на ту же дату
// пересекает [start, end).
//
// Записи без времени окончания не участвуют в сравнении. Если end не задан,
// конфликт установить нельзя и функция возвращает false.
// Граница полуоткрытая: запись, закончившаяся ровно в start, не конфликтует
func HasTimeConflict(
	existing []*domain.Appointment,
	date time.Time,
	start types.TimeString,
	end *types.TimeString,
	excludeID *uuid.UUID,
) bool {
	if end == nil || end.IsZero() {
		return false
	}

	candidate := domain.Interval{Start: start, End: *end}

	for _, appt := range existing {
		if isExcluded(appt, excludeID) || !appt.IsScheduled() || !SameDate(appt.Date, date) {
			continue
		}

		interval, ok := appt.Interval()
		if !ok {
			continue
		}

		if interval.Overlaps(candidate) {
			return true
		}
	}

	return false
}

// HasDuplicate true, если у пользователя уже есть неотменённая запись
// ровно на ту же дату и время начала (точное совпадение, не пересечение)
func HasDuplicate(
	existing []*domain.Appointment,
	userID uuid.UUID,
	date time.Time,
	start types.TimeString,
	excludeID *uuid.UUID,
) bool {
	for _, appt := range existing {
		if isExcluded(appt, excludeID) || appt.IsCancelled() {
			continue
		}
		if appt.UserID == userID && SameDate(appt.Date, date) && appt.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

// OccupiedIntervals интервалы записей scheduled с заданным временем окончания
func OccupiedIntervals(existing []*domain.Appointment) []domain.Interval {
	result := make([]domain.Interval, 0, len(existing))
	for _, appt := range existing {
		if !appt.IsScheduled() {
			continue
		}
		if interval, ok := appt.Interval(); ok {
			result = append(result, interval)
		}
	}
	return result
}

// SameDate сравнивает только календарную дату
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isExcluded(appt *domain.Appointment, excludeID *uuid.UUID) bool {
	return excludeID != nil && appt.ID == *excludeID
}
