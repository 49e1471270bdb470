// Package clock предоставляет источник текущего времени в часовом поясе Бразилиа
// и функции перевода между локальным временем пользователя и UTC.
package clock

import (
	"fmt"
	"time"
)

// DateLayout формат локальных дат, принимаемых от клиента.
const DateLayout = "2006-01-02"

// Brasilia фиксированный пояс UTC−3. Летнее время в Бразилии отменено с 2019 года.
var Brasilia = time.FixedZone("BRT", -3*60*60)

// Clock источник текущего времени.
type Clock interface {
	Now() time.Time
}

// Local часы, возвращающие текущее время в поясе Бразилиа.
type Local struct{}

// Now возвращает текущее время в поясе Бразилиа.
func (Local) Now() time.Time {
	return time.Now().In(Brasilia)
}

// Fixed часы, всегда возвращающие одно и то же время. Используются в тестах.
type Fixed time.Time

// Now возвращает зафиксированное время в поясе Бразилиа.
func (f Fixed) Now() time.Time {
	return time.Time(f).In(Brasilia)
}

// ToUTC переводит локальное время Бразилиа в UTC для хранения.
// Время без пояса (time.UTC из парсера) трактуется как локальное.
func ToUTC(local time.Time) time.Time {
	if local.Location() == time.UTC {
		local = time.Date(local.Year(), local.Month(), local.Day(),
			local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), Brasilia)
	}
	return local.UTC()
}

// ToLocal переводит сохранённое UTC-время в пояс Бразилиа.
func ToLocal(utc time.Time) time.Time {
	return utc.In(Brasilia)
}

// ToLocalPtr как ToLocal, но для необязательных дат.
func ToLocalPtr(utc *time.Time) *time.Time {
	if utc == nil {
		return nil
	}
	local := ToLocal(*utc)
	return &local
}

// ParseLocalDate разбирает дату 2006-01-02 как полночь по Бразилиа и возвращает её в UTC.
func ParseLocalDate(s string) (time.Time, error) {
	const op = "clock.ParseLocalDate"
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return ToUTC(d), nil
}
