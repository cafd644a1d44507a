package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// TimeLayout формат времени суток с точностью до секунды
	TimeLayout = "15:04:05"

	secondsPerDay = 24 * 60 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time is out of day bounds")
)

// TimeString время суток в формате HH:MM:SS (24 часа)
// Хранится в нормализованном виде, поэтому строки можно сравнивать как время
type TimeString string

// NewTimeString создает TimeString из time.Time (дата и часовой пояс игнорируются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeLayout))
}

// NewTimeStringFromString парсит "HH:MM:SS" или "HH:MM" и нормализует к HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	seconds, err := parseSeconds(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromSeconds(seconds), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке
// Используется для констант и в тестах
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	_, err := parseSeconds(string(t))
	return err
}

// Seconds возвращает количество секунд от начала суток
func (t TimeString) Seconds() (int, error) {
	return parseSeconds(string(t))
}

// AddMinutes прибавляет минуты. Переход через полночь не выполняется:
// если результат выходит за 23:59:59 или уходит в минус, возвращается ErrOutOfDay
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	seconds, err := parseSeconds(string(t))
	if err != nil {
		return "", err
	}

	result := seconds + minutes*60
	if result < 0 || result >= secondsPerDay {
		return "", fmt.Errorf("%w: %s %+d min", ErrOutOfDay, t, minutes)
	}

	return fromSeconds(result), nil
}

// IsBefore true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// Equal true, если моменты совпадают
func (t TimeString) Equal(other TimeString) bool {
	return t.compare(other) == 0
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	// postgres может вернуть дробные секунды ("09:00:00.000000")
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeString) compare(other TimeString) int {
	a, errA := parseSeconds(string(t))
	b, errB := parseSeconds(string(other))
	if errA != nil || errB != nil {
		return strings.Compare(string(t), string(other))
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func parseSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, part := range parts {
		if len(part) < 1 || len(part) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		values[i] = n
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}

func fromSeconds(seconds int) TimeString {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", h, m, s))
}
