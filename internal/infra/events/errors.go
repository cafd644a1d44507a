package events

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось отправить в kafka
	ErrPublish = errors.New("events.publisher: failed to publish event")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events.publisher: failed to encode event")
)
