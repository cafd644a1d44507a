package usecasetest

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// TxManager выполняет функцию без транзакции и считает вызовы.
// Если задан Store, при ошибке возвращает его к состоянию до вызова
type TxManager struct {
	Calls int
	Store *Store
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Store == nil {
		return fn(ctx)
	}

	snapshot := m.Store.snapshot()
	if err := fn(ctx); err != nil {
		m.Store.restore(snapshot)
		return err
	}
	return nil
}

// Clock фиксированное время
type Clock struct {
	At time.Time
}

func (c Clock) Now() time.Time {
	return c.At
}

// EmittedEvent одно уведомление, переданное эмиттеру
type EmittedEvent struct {
	Type        domain.NotificationType
	Appointment domain.Appointment
}

// Emitter записывает события уведомлений
type Emitter struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

func (e *Emitter) AppointmentEvent(_ context.Context, typ domain.NotificationType, appt domain.Appointment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Events = append(e.Events, EmittedEvent{Type: typ, Appointment: appt})
}

// Cache записывает даты сброса кэша слотов
type Cache struct {
	Invalidated []time.Time
}

func (c *Cache) Invalidate(_ context.Context, date time.Time) error {
	c.Invalidated = append(c.Invalidated, date)
	return nil
}

// Metrics записывает события жизненного цикла
type Metrics struct {
	Events []string
}

func (m *Metrics) RecordAppointmentEvent(event string) {
	m.Events = append(m.Events, event)
}

// Logger заглушка логгера, запоминающая сообщения уровня Error
type Logger struct {
	mu     sync.Mutex
	Errors []string
}

func (l *Logger) Info(string, ...interface{}) {}
func (l *Logger) Warn(string, ...interface{}) {}
func (l *Logger) Error(format string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, format)
}
