package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType тип уведомления
type NotificationType string

const (
	NotificationAppointmentCreated   NotificationType = "appointment_created"
	NotificationAppointmentCancelled NotificationType = "appointment_cancelled"
	NotificationAppointmentReminder  NotificationType = "appointment_reminder"
	NotificationAppointmentCompleted NotificationType = "appointment_completed"
	NotificationSystem               NotificationType = "system_notification"
	NotificationServiceUpdated       NotificationType = "service_updated"
)

// IsValid проверяет, что тип входит в закрытый список
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationAppointmentCreated,
		NotificationAppointmentCancelled,
		NotificationAppointmentReminder,
		NotificationAppointmentCompleted,
		NotificationSystem,
		NotificationServiceUpdated:
		return true
	default:
		return false
	}
}

// NotificationPriority приоритет уведомления
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// IsValid проверяет значение приоритета
func (p NotificationPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// DefaultPriority приоритет по умолчанию для типа: напоминания - high, остальное - medium
func DefaultPriority(t NotificationType) NotificationPriority {
	if t == NotificationAppointmentReminder {
		return PriorityHigh
	}
	return PriorityMedium
}

// Notification уведомление пользователя
type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AppointmentID *uuid.UUID
	Type          NotificationType
	Title         string
	Message       string
	IsRead        bool
	Priority      NotificationPriority
	ScheduledFor  *time.Time

	CreatedAt time.Time
}

// NotificationsFilter фильтр уведомлений пользователя
type NotificationsFilter struct {
	UserID uuid.UUID
	IsRead *bool
	Page   Page
}
