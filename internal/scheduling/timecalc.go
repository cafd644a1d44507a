// Package scheduling содержит чистую арифметику времени приёма и предикаты
// пересечения интервалов. Пакет не делает I/O.
package scheduling

import (
	"errors"
	"fmt"
	"iter"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var (
	// ErrNegativeDuration возвращается при отрицательной длительности
	ErrNegativeDuration = errors.New("scheduling: duration must not be negative")

	// ErrEndBeyondDay возвращается, когда конец приёма переходит через полночь
	ErrEndBeyondDay = errors.New("scheduling: end time is beyond the end of the day")
)

// ComputeEndTime вычисляет время окончания: start + durationMinutes.
// Переход через полночь не выполняется - такая запись отклоняется ErrEndBeyondDay
func ComputeEndTime(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	if durationMinutes < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeDuration, durationMinutes)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		if errors.Is(err, types.ErrOutOfDay) {
			return "", fmt.Errorf("%w: %s + %d min", ErrEndBeyondDay, start, durationMinutes)
		}
		return "", err
	}

	return end, nil
}

// EnumerateSlots перебирает кандидатов на начало слота от workStart (включительно)
// до workEnd (не включительно) с шагом stepMinutes.
// Последовательность ленивая и перезапускаемая: каждый range начинает заново
func EnumerateSlots(workStart, workEnd types.TimeString, stepMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if stepMinutes <= 0 {
			return
		}

		current := workStart
		for current.IsBefore(workEnd) {
			if !yield(current) {
				return
			}

			next, err := current.AddMinutes(stepMinutes)
			if err != nil {
				return
			}
			current = next
		}
	}
}
