package remove_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	removeAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/remove_appointment"
)

// RemoveAppointmentResponse HTTP response model
type RemoveAppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	Status    string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *removeAppointment.Response) *RemoveAppointmentResponse {
	return &RemoveAppointmentResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		Status:    resp.Status,
	}
}
