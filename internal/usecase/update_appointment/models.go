package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request частичное изменение записи, nil поля не меняются
type Request struct {
	Caller        domain.Caller
	AppointmentID uuid.UUID

	ServiceID *uuid.UUID
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Status    *string
	Notes     *string
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   *types.TimeString
	Status    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
