// Package month содержит календарную арифметику для помесячных агрегатов:
// сдвиг на целые месяцы назад, границы месяца и короткие подписи для графиков.
package month

import (
	"time"
)

// Month календарный месяц конкретного года.
type Month struct {
	Year  int
	Month time.Month
}

// Of возвращает календарный месяц, в который попадает t в его собственном поясе.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Back возвращает месяц, отстоящий от anchor на n календарных месяцев назад.
// Считается от первого числа, поэтому 31 марта минус один месяц даёт февраль.
func Back(anchor time.Time, n int) Month {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return Of(first.AddDate(0, -n, 0))
}

// Bounds возвращает полуинтервал [start, end) месяца в поясе loc, переведённый в UTC.
func (m Month) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// Label короткая английская подпись месяца: Jan, Feb, ...
func (m Month) Label() string {
	return m.Month.String()[:3]
}

// Key ключ месяца в формате 2006-01.
func (m Month) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Series возвращает n месяцев, заканчивающихся месяцем anchor, от старого к новому.
func Series(anchor time.Time, n int) []Month {
	if n <= 0 {
		return nil
	}
	res := make([]Month, n)
	for i := 0; i < n; i++ {
		res[n-1-i] = Back(anchor, i)
	}
	return res
}
