package domain

import "time"

// CancelMark is a durable same-day cancellation marker.
// Записывается при отмене бронирования и блокирует повторное
// бронирование той же даты до конца календарного дня отмены.
type CancelMark struct {
	ID          int64
	StudentID   int64
	DutyDate    time.Time // дата дежурства, на которую действует блокировка
	CancelledOn time.Time // календарный день, когда была сделана отмена

	CreatedAt time.Time
}

// BlocksRebooking reports whether the marker still blocks booking dutyDate
// on the given calendar day
func (m *CancelMark) BlocksRebooking(dutyDate, today time.Time) bool {
	return SameCalendarDay(m.DutyDate, dutyDate) && SameCalendarDay(m.CancelledOn, today)
}

// SameCalendarDay reports whether two timestamps fall on the same calendar day
func SameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a timestamp to its calendar day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
