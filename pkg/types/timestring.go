package types

import (
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM (24-часовой)
const timeLayout = "15:04"

// TimeString время в формате "HH:MM" без даты и таймзоны.
// Используется для рабочих часов и времени начала/конца слотов.
// Хранится в БД как строка, сравнение корректно лексикографически.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %v", err)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение соответствует формату HH:MM
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут.
// Результат за пределами суток считается ошибкой - слоты не пересекают полночь.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %v", err)
	}

	shifted := t.Add(time.Duration(minutes) * time.Minute)
	if shifted.Day() != t.Day() {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", ts, minutes)
	}

	return TimeString(shifted.Format(timeLayout)), nil
}

// MinutesUntil возвращает количество минут от ts до other.
// Отрицательное значение означает, что other раньше ts.
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	to, err := time.Parse(timeLayout, string(other))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	return int(to.Sub(from).Minutes()), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}
