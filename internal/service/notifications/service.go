package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ClinicService/internal/service/notifications/models"
)

// Service сервис входящих уведомлений пользователя
type Service struct {
	notificationRepo NotificationRepository
	publisher        EventPublisher
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений.
// publisher может быть nil, если публикация событий отключена
func NewService(notificationRepo NotificationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// List уведомления пользователя с пагинацией и фильтром по прочитанности
func (s *Service) List(ctx context.Context, caller domain.Caller, req *models.ListRequest) (*models.NotificationListResponse, error) {
	s.logger.Info("ListNotifications: user=%s, caller=%s, isRead=%v", req.UserID, caller.UserID, req.IsRead)

	if !caller.CanAccess(req.UserID) {
		s.logger.Warn("ListNotifications: access denied for caller=%s to user=%s", caller.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.NotificationsFilter{
		UserID: req.UserID,
		IsRead: req.IsRead,
		Page:   domain.Page{Number: req.Page, Limit: req.Limit}.Normalize(),
	}

	items, err := s.notificationRepo.ListByUser(ctx, filter)
	if err != nil {
		s.logger.Error("ListNotifications: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListNotifications - repository error: %w", ErrInternal, err)
	}

	total, err := s.notificationRepo.CountByUser(ctx, filter)
	if err != nil {
		s.logger.Error("ListNotifications: count error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListNotifications - count error: %w", ErrInternal, err)
	}

	return models.FromDomainNotificationList(items, domain.NewPagination(filter.Page, total)), nil
}

// UnreadCount количество непрочитанных уведомлений пользователя
func (s *Service) UnreadCount(ctx context.Context, caller domain.Caller, userID uuid.UUID) (*models.UnreadCountResponse, error) {
	if !caller.CanAccess(userID) {
		s.logger.Warn("UnreadCount: access denied for caller=%s to user=%s", caller.UserID, userID)
		return nil, ErrAccessDenied
	}

	unread := false
	count, err := s.notificationRepo.CountByUser(ctx, domain.NotificationsFilter{UserID: userID, IsRead: &unread})
	if err != nil {
		s.logger.Error("UnreadCount: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: UnreadCount - repository error: %w", ErrInternal, err)
	}

	return &models.UnreadCountResponse{Count: count}, nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (s *Service) MarkRead(ctx context.Context, caller domain.Caller, userID, notificationID uuid.UUID) error {
	s.logger.Info("MarkRead: notification=%s, user=%s, caller=%s", notificationID, userID, caller.UserID)

	if _, err := s.getOwned(ctx, caller, userID, notificationID); err != nil {
		return err
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification=%s: %v", notificationID, err)
		return fmt.Errorf("%w: MarkRead - repository error: %w", ErrInternal, err)
	}

	return nil
}

// MarkAllRead помечает прочитанными все уведомления пользователя
func (s *Service) MarkAllRead(ctx context.Context, caller domain.Caller, userID uuid.UUID) (*models.MarkAllReadResponse, error) {
	if !caller.CanAccess(userID) {
		s.logger.Warn("MarkAllRead: access denied for caller=%s to user=%s", caller.UserID, userID)
		return nil, ErrAccessDenied
	}

	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: MarkAllRead - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: %d notifications marked read for user=%s", updated, userID)
	return &models.MarkAllReadResponse{Updated: updated}, nil
}

// Delete удаляет уведомление пользователя
func (s *Service) Delete(ctx context.Context, caller domain.Caller, userID, notificationID uuid.UUID) error {
	s.logger.Info("DeleteNotification: notification=%s, user=%s, caller=%s", notificationID, userID, caller.UserID)

	if _, err := s.getOwned(ctx, caller, userID, notificationID); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(ctx, notificationID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("DeleteNotification: repository error for notification=%s: %v", notificationID, err)
		return fmt.Errorf("%w: DeleteNotification - repository error: %w", ErrInternal, err)
	}

	return nil
}

// Create создает уведомление вручную (напоминание или системное сообщение)
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.NotificationResponse, error) {
	s.logger.Info("CreateNotification: user=%s, type=%s", req.UserID, req.Type)

	n, err := toDomainNotification(req)
	if err != nil {
		s.logger.Warn("CreateNotification: validation failed: %v", err)
		return nil, err
	}

	created, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		s.logger.Error("CreateNotification: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateNotification - repository error: %w", ErrInternal, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(ctx, created); err != nil {
			s.logger.Warn("CreateNotification: publish failed for notification=%s: %v", created.ID, err)
		}
	}

	return models.FromDomainNotification(created), nil
}

// getOwned загружает уведомление и проверяет, что оно принадлежит userID, а caller имеет доступ
func (s *Service) getOwned(ctx context.Context, caller domain.Caller, userID, notificationID uuid.UUID) (*domain.Notification, error) {
	if !caller.CanAccess(userID) {
		s.logger.Warn("access denied for caller=%s to notifications of user=%s", caller.UserID, userID)
		return nil, ErrAccessDenied
	}

	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		s.logger.Error("failed to get notification=%s: %v", notificationID, err)
		return nil, fmt.Errorf("%w: get notification: %w", ErrInternal, err)
	}

	// чужое уведомление выглядит как отсутствующее
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	return n, nil
}

func toDomainNotification(req *models.CreateRequest) (*domain.Notification, error) {
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	typ := domain.NotificationType(req.Type)
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, req.Type)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > domain.MaxNotificationTitleLength {
		return nil, fmt.Errorf("%w: title must be 1..%d characters", ErrInvalidInput, domain.MaxNotificationTitleLength)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" || utf8.RuneCountInString(message) > domain.MaxNotificationMessageLength {
		return nil, fmt.Errorf("%w: message must be 1..%d characters", ErrInvalidInput, domain.MaxNotificationMessageLength)
	}

	priority := domain.DefaultPriority(typ)
	if req.Priority != nil {
		priority = domain.NotificationPriority(*req.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
		}
	}

	return &domain.Notification{
		UserID:        req.UserID,
		AppointmentID: req.AppointmentID,
		Type:          typ,
		Title:         title,
		Message:       message,
		Priority:      priority,
		ScheduledFor:  req.ScheduledFor,
	}, nil
}
