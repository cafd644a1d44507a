// Package events публикует события уведомлений в kafka.
//
// Отправка идёт через circuit breaker: при серии ошибок брокера публикация
// на время отключается и сразу возвращает ошибку, не задерживая запросы.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// EventNotificationCreated тип события о новом уведомлении
const EventNotificationCreated = "notification.created"

// Настройки circuit breaker
const (
	breakerMaxFailures = 5
	breakerOpenTimeout = 30 * time.Second
)

// MessageWriter интерфейс writer'а kafka (реализуется *kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// NotificationPayload тело события
type NotificationPayload struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Priority      string     `json:"priority"`
	ScheduledFor  *time.Time `json:"scheduledFor,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Event конверт события
type Event struct {
	EventID    uuid.UUID           `json:"eventId"`
	EventType  string              `json:"eventType"`
	OccurredAt time.Time           `json:"occurredAt"`
	Payload    NotificationPayload `json:"payload"`
}

// Publisher публикатор событий
type Publisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  Logger
}

// NewKafkaWriter создает writer для топика. Ключ сообщения - пользователь,
// поэтому события одного пользователя попадают в одну партицию
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// NewPublisher создает публикатор поверх writer'а
func NewPublisher(writer MessageWriter, logger Logger) *Publisher {
	settings := gobreaker.Settings{
		Name:    "kafka-notifications",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &Publisher{
		writer:  writer,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		logger:  logger,
	}
}

// PublishNotification отправляет событие notification.created
func (p *Publisher) PublishNotification(ctx context.Context, n *domain.Notification) error {
	event := Event{
		EventID:    uuid.New(),
		EventType:  EventNotificationCreated,
		OccurredAt: time.Now().UTC(),
		Payload: NotificationPayload{
			ID:            n.ID,
			UserID:        n.UserID,
			AppointmentID: n.AppointmentID,
			Type:          string(n.Type),
			Title:         n.Title,
			Message:       n.Message,
			Priority:      string(n.Priority),
			ScheduledFor:  n.ScheduledFor,
			CreatedAt:     n.CreatedAt,
		},
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	carrier := &headerCarrier{headers: []kafka.Header{
		{Key: "event_id", Value: []byte(event.EventID.String())},
		{Key: "event_type", Value: []byte(event.EventType)},
	}}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msg := kafka.Message{
		Key:     []byte(n.UserID.String()),
		Value:   value,
		Headers: carrier.headers,
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("%w: notification id=%s: %w", ErrPublish, n.ID, err)
	}

	p.logger.Info("Published %s event_id=%s notification id=%s", EventNotificationCreated, event.EventID, n.ID)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
