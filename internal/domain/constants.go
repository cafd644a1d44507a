package domain

import "github.com/m04kA/SMC-ClinicService/pkg/types"

// Рабочий день клиники и шаг перебора слотов
var (
	WorkDayStart = types.MustTimeString("05:00:00")
	WorkDayEnd   = types.MustTimeString("23:00:00")
)

const (
	// SlotStepMinutes шаг перебора кандидатов при поиске свободных слотов
	// (не зависит от длительности услуги)
	SlotStepMinutes = 30
)

// Ограничения бизнес-валидации
const (
	MaxNotesLength = 1000

	MinServiceDurationExclusive = 10
	MinServiceNameLength        = 5
	MaxServiceNameLength        = 50
	MinServiceDescriptionLength = 10
	MaxServiceDescriptionLength = 200

	MaxNotificationTitleLength   = 200
	MaxNotificationMessageLength = 1000
)

// Пагинация
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Форматы
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = types.TimeLayout
)
