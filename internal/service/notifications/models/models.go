package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ListRequest запрос на получение уведомлений пользователя
type ListRequest struct {
	UserID uuid.UUID
	IsRead *bool
	Page   int
	Limit  int
}

// CreateRequest ручное создание уведомления администратором
type CreateRequest struct {
	UserID        uuid.UUID  `json:"userId"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Priority      *string    `json:"priority,omitempty"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
}

// NotificationResponse уведомление в ответе API
type NotificationResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	IsRead        bool       `json:"isRead"`
	Priority      string     `json:"priority"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PaginationResponse метаданные страницы
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NotificationListResponse страница уведомлений
type NotificationListResponse struct {
	Items      []NotificationResponse `json:"items"`
	Pagination PaginationResponse     `json:"pagination"`
}

// UnreadCountResponse количество непрочитанных
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse количество отмеченных прочитанными
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// FromDomainNotification конвертирует доменное уведомление в ответ
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:            n.ID,
		UserID:        n.UserID,
		AppointmentID: n.AppointmentID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		IsRead:        n.IsRead,
		Priority:      string(n.Priority),
		ScheduledFor:  n.ScheduledFor,
		CreatedAt:     n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует страницу уведомлений
func FromDomainNotificationList(items []*domain.Notification, p domain.Pagination) *NotificationListResponse {
	resp := &NotificationListResponse{
		Items: make([]NotificationResponse, 0, len(items)),
		Pagination: PaginationResponse{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
	for _, n := range items {
		resp.Items = append(resp.Items, *FromDomainNotification(n))
	}
	return resp
}
