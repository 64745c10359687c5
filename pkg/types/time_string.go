package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	timeStringLayout      = "15:04:05"
	timeStringShortLayout = "15:04"
)

// TimeString время суток без даты и часового пояса в формате HH:MM:SS
// Хранится как количество секунд от начала суток, поэтому сравнение не зависит от строкового представления
type TimeString struct {
	seconds int
	valid   bool
}

// NewTimeString создает TimeString из времени суток значения time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString{
		seconds: t.Hour()*3600 + t.Minute()*60 + t.Second(),
		valid:   true,
	}
}

// NewTimeStringFromString парсит строку "HH:MM:SS" или "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeString{}, ErrInvalidTimeString
	}

	layout := timeStringLayout
	if strings.Count(s, ":") == 1 {
		layout = timeStringShortLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(t), nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке. Для констант и тестов.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeString) IsZero() bool { return !t.valid }

func (t TimeString) Hour() int   { return t.seconds / 3600 }
func (t TimeString) Minute() int { return t.seconds % 3600 / 60 }
func (t TimeString) Second() int { return t.seconds % 60 }

// Validate проверяет, что значение задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid || t.seconds < 0 || t.seconds >= 24*3600 {
		return ErrInvalidTimeString
	}
	return nil
}

// Compare возвращает -1, 0 или 1
func (t TimeString) Compare(other TimeString) int {
	switch {
	case t.seconds < other.seconds:
		return -1
	case t.seconds > other.seconds:
		return 1
	default:
		return 0
	}
}

func (t TimeString) IsBefore(other TimeString) bool { return t.seconds < other.seconds }
func (t TimeString) IsAfter(other TimeString) bool  { return t.seconds > other.seconds }

// AddMinutes возвращает время, сдвинутое на minutes минут
// Переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	next := t.seconds + minutes*60
	if next < 0 || next >= 24*3600 {
		return TimeString{}, fmt.Errorf("%w: %s %+d minutes crosses day boundary", ErrInvalidTimeString, t, minutes)
	}
	return TimeString{seconds: next, valid: true}, nil
}

// String возвращает время в формате HH:MM:SS (пустая строка для нулевого значения)
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeString{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TimeString{}
		return nil
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner (колонки TIME приходят строкой или time.Time)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
