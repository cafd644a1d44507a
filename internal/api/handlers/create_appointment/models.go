package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	createAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
	errInvalidID   = errors.New("invalid id")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	UserID    *string `json:"userId,omitempty"` // только для администратора
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"date"`              // "2025-10-15"
	StartTime string  `json:"startTime"`         // "10:00" или "10:00:00"
	EndTime   *string `json:"endTime,omitempty"` // по умолчанию по длительности услуги
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	ServiceID   uuid.UUID `json:"serviceId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     *string   `json:"endTime,omitempty"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	ServiceName string    `json:"serviceName"`
	Price       float64   `json:"price"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Без userId запись создаётся на вызывающего
func (r *CreateAppointmentRequest) ToUseCaseRequest(caller domain.Caller) (*createAppointment.Request, error) {
	userID := caller.UserID
	if r.UserID != nil {
		parsed, err := uuid.Parse(*r.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: userId: %w", errInvalidID, err)
		}
		userID = parsed
	}

	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: serviceId: %w", errInvalidID, err)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %w", errInvalidTime, err)
	}

	var endTime *types.TimeString
	if r.EndTime != nil {
		parsed, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %w", errInvalidTime, err)
		}
		endTime = &parsed
	}

	return &createAppointment.Request{
		Caller:    caller,
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	var endTime *string
	if resp.EndTime != nil {
		s := resp.EndTime.String()
		endTime = &s
	}

	return &AppointmentResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		ServiceID:   resp.ServiceID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     endTime,
		Status:      resp.Status,
		Notes:       resp.Notes,
		ServiceName: resp.ServiceName,
		Price:       resp.Price,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
