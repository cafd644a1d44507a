package notifications

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/notification"
)

type fakeNotificationRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*domain.Notification
	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{items: make(map[uuid.UUID]*domain.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *n
	cp.ID = uuid.New()
	f.items[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok {
		return nil, notificationRepo.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotificationRepo) matching(filter domain.NotificationsFilter) []*domain.Notification {
	result := make([]*domain.Notification, 0)
	for _, n := range f.items {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.IsRead != nil && n.IsRead != *filter.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, filter domain.NotificationsFilter) ([]*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.matching(filter)
	offset := filter.Page.Offset()
	if offset >= len(all) {
		return []*domain.Notification{}, nil
	}
	end := offset + filter.Page.Normalize().Limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeNotificationRepo) CountByUser(_ context.Context, filter domain.NotificationsFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matching(filter)), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.items[id]
	if !ok {
		return notificationRepo.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return notificationRepo.ErrNotificationNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeNotificationRepo) seed(n domain.Notification) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uuid.New()
	f.items[n.ID] = &n
	return n.ID
}

func (f *fakeNotificationRepo) all() []*domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Notification, 0, len(f.items))
	for _, n := range f.items {
		result = append(result, n)
	}
	return result
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	if f.service == nil {
		return nil, errors.New("service not found")
	}
	return f.service, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domain.Notification
	err       error
}

func (f *fakePublisher) PublishNotification(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, n)
	return nil
}
