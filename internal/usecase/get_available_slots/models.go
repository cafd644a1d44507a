package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID uuid.UUID
	Date      time.Time // Дата без времени
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	ServiceID       uuid.UUID
	DurationMinutes int
	Slots           []Slot // В хронологическом порядке, может быть пустым
}

// Slot свободный интервал [Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}
