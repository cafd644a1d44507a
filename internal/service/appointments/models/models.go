package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListUserAppointmentsRequest записи одного пользователя
type ListUserAppointmentsRequest struct {
	UserID uuid.UUID
	Status *string
	Page   int
	Limit  int
}

// ListAppointmentsRequest административная выборка
type ListAppointmentsRequest struct {
	UserID *uuid.UUID
	Status *string
	Date   *time.Time
	Page   int
	Limit  int
}

// Response модели

// AppointmentResponse запись в ответе API
type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ServiceID uuid.UUID `json:"serviceId"`
	Date      string    `json:"date"`              // "2025-10-15"
	StartTime string    `json:"startTime"`         // "10:00:00"
	EndTime   *string   `json:"endTime,omitempty"` // "10:30:00"
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaginationResponse метаданные страницы
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// AppointmentListResponse страница записей
type AppointmentListResponse struct {
	Items      []AppointmentResponse `json:"items"`
	Pagination PaginationResponse    `json:"pagination"`
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		ServiceID: a.ServiceID,
		Date:      a.Date.Format(domain.DateFormat),
		StartTime: a.StartTime.String(),
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.EndTime != nil {
		end := a.EndTime.String()
		resp.EndTime = &end
	}
	return resp
}

// FromDomainAppointmentList конвертирует страницу записей
func FromDomainAppointmentList(items []*domain.Appointment, p domain.Pagination) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Items: make([]AppointmentResponse, 0, len(items)),
		Pagination: PaginationResponse{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
	for _, a := range items {
		resp.Items = append(resp.Items, *FromDomainAppointment(a))
	}
	return resp
}
