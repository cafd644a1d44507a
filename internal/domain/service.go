package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationModel политика бронирования услуги
type ReservationModel string

const (
	// ReservationSlot услуга - повторяемый тип приёма, ограничение только по пересечению времени
	ReservationSlot ReservationModel = "slot"

	// ReservationSingleResource услуга - единственный ресурс: запись делает её недоступной
	// до отмены или завершения приёма
	ReservationSingleResource ReservationModel = "singleResource"
)

// IsValid проверяет значение политики
func (m ReservationModel) IsValid() bool {
	return m == ReservationSlot || m == ReservationSingleResource
}

// Service медицинская услуга клиники
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	Available       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable true, если на услугу можно записаться
func (s *Service) IsBookable() bool {
	return s.Available && s.DurationMinutes > 0
}

// ServicesFilter фильтр каталога услуг
type ServicesFilter struct {
	Available *bool
}
