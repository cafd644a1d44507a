package scheduling

import "github.com/m04kA/SMC-ClinicService/internal/domain"

// FreeSlots перебирает начала слотов в window с шагом stepMinutes, строит слот длиной
// durationMinutes и оставляет только те, что целиком помещаются в window и
// не пересекают ни один занятый интервал. Результат упорядочен по времени
func FreeSlots(window domain.Interval, stepMinutes, durationMinutes int, occupied []domain.Interval) []domain.Interval {
	result := make([]domain.Interval, 0)
	if durationMinutes <= 0 || !window.IsValid() {
		return result
	}

	for start := range EnumerateSlots(window.Start, window.End, stepMinutes) {
		end, err := ComputeEndTime(start, durationMinutes)
		if err != nil || end.IsAfter(window.End) {
			// дальше слоты только позже - они тоже не поместятся
			break
		}

		slot := domain.Interval{Start: start, End: end}
		if overlapsAny(slot, occupied) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// WorkingDay рабочий день клиники
func WorkingDay() domain.Interval {
	return domain.Interval{Start: domain.WorkDayStart, End: domain.WorkDayEnd}
}

func overlapsAny(slot domain.Interval, occupied []domain.Interval) bool {
	for _, busy := range occupied {
		if slot.Overlaps(busy) {
			return true
		}
	}
	return false
}
