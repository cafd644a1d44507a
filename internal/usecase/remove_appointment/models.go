package remove_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request запрос на отмену записи
type Request struct {
	Caller        domain.Caller
	AppointmentID uuid.UUID
}

// Response итог отмены: снимок записи до отмены и новый статус
type Response struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   *types.TimeString
	Status    string
}
