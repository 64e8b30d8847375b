package book_duty

import "time"

// Request запрос на бронирование дежурства
type Request struct {
	StudentID  int64
	ScheduleID int64
}

// Response результат бронирования дежурства
type Response struct {
	ID         int64
	ScheduleID int64
	StudentID  int64
	Status     string

	Date       string // "2026-03-02"
	Location   string
	ShiftStart string // "08:00"
	ShiftEnd   string // "20:00"

	BookingTime time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
