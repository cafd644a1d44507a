package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// CreateServiceRequest запрос на добавление услуги
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
	Available       *bool   `json:"available,omitempty"` // по умолчанию true
}

// UpdateServiceRequest частичное обновление услуги, nil поля не меняются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Available       *bool    `json:"available,omitempty"`
}

// SetAvailabilityRequest запрос на смену доступности
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration"`
	Price           float64   `json:"price"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FromDomainService конвертирует доменную услугу в ответ
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Available:       s.Available,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(items []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(items))
	for _, s := range items {
		result = append(result, *FromDomainService(s))
	}
	return result
}
