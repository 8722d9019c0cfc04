package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday день недели
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays дни недели в порядке Monday..Sunday
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ErrUnknownWeekday возвращается при неизвестной метке дня недели
// Неизвестный день - ошибка вызывающей стороны, молчаливый fallback недопустим
var ErrUnknownWeekday = errors.New("unknown weekday label")

// ParseWeekday парсит метку дня недели (без учета регистра)
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllWeekdays {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// WeekdayOf возвращает день недели для даты
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// timeWeekday соответствие с time.Weekday
func (w Weekday) timeWeekday() time.Weekday {
	switch w {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// Order порядковый номер дня (Monday = 0 .. Sunday = 6), для сортировки недели
func (w Weekday) Order() int {
	for i, known := range AllWeekdays {
		if w == known {
			return i
		}
	}
	return len(AllWeekdays)
}

// String возвращает метку дня недели
func (w Weekday) String() string {
	return string(w)
}

// NextOccurrence возвращает ближайшую дату (сегодня или в пределах 1-6 дней вперед),
// приходящуюся на этот день недели; время обнуляется до начала суток
func (w Weekday) NextOccurrence(ref time.Time) time.Time {
	date := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := (int(w.timeWeekday()) - int(date.Weekday()) + 7) % 7
	return date.AddDate(0, 0, offset)
}
