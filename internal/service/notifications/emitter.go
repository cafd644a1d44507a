package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Emitter создает уведомления о событиях записи.
// Ошибки только логируются: уведомление не должно влиять на операцию, которая его вызвала
type Emitter struct {
	notificationRepo NotificationRepository
	serviceRepo      ServiceRepository
	publisher        EventPublisher
	logger           Logger
}

// NewEmitter создает новый экземпляр эмиттера. publisher может быть nil
func NewEmitter(
	notificationRepo NotificationRepository,
	serviceRepo ServiceRepository,
	publisher EventPublisher,
	logger Logger,
) *Emitter {
	return &Emitter{
		notificationRepo: notificationRepo,
		serviceRepo:      serviceRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// AppointmentEvent сохраняет и публикует уведомление по снимку записи
func (e *Emitter) AppointmentEvent(ctx context.Context, typ domain.NotificationType, appt domain.Appointment) {
	serviceName := "услуга"
	if svc, err := e.serviceRepo.GetByID(ctx, appt.ServiceID); err != nil {
		e.logger.Warn("AppointmentEvent: failed to resolve service=%s for notification: %v", appt.ServiceID, err)
	} else {
		serviceName = svc.Name
	}

	title, message, ok := render(typ, serviceName, appt)
	if !ok {
		e.logger.Warn("AppointmentEvent: unsupported notification type=%s", typ)
		return
	}

	appointmentID := appt.ID
	n := &domain.Notification{
		UserID:        appt.UserID,
		AppointmentID: &appointmentID,
		Type:          typ,
		Title:         title,
		Message:       message,
		Priority:      domain.DefaultPriority(typ),
	}

	created, err := e.notificationRepo.Create(ctx, n)
	if err != nil {
		e.logger.Error("AppointmentEvent: failed to store %s notification for appointment=%s: %v", typ, appt.ID, err)
		return
	}

	if e.publisher != nil {
		if err := e.publisher.PublishNotification(ctx, created); err != nil {
			e.logger.Warn("AppointmentEvent: failed to publish notification=%s: %v", created.ID, err)
		}
	}

	e.logger.Info("AppointmentEvent: %s notification created for user=%s", typ, appt.UserID)
}

func render(typ domain.NotificationType, serviceName string, appt domain.Appointment) (string, string, bool) {
	date := appt.Date.Format(domain.DateFormat)
	start := shortTime(appt)

	switch typ {
	case domain.NotificationAppointmentCreated:
		return "Запись создана",
			fmt.Sprintf("Вы записаны на услугу «%s» %s в %s.", serviceName, date, start), true
	case domain.NotificationAppointmentCancelled:
		return "Запись отменена",
			fmt.Sprintf("Ваша запись на услугу «%s» %s в %s отменена.", serviceName, date, start), true
	case domain.NotificationAppointmentReminder:
		return "Напоминание о записи",
			fmt.Sprintf("Напоминаем: %s в %s у вас приём «%s».", date, start, serviceName), true
	case domain.NotificationAppointmentCompleted:
		return "Приём завершён",
			fmt.Sprintf("Ваш приём «%s» завершён. Спасибо за визит.", serviceName), true
	default:
		return "", "", false
	}
}

// shortTime время начала в формате HH:MM
func shortTime(appt domain.Appointment) string {
	s := appt.StartTime.String()
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
