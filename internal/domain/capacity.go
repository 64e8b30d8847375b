package domain

// Capacity evaluation over a schedule's booking set.
// Всегда вычисляется от текущего набора бронирований, без кэширования:
// вызывающая сторона обязана загрузить актуальные бронирования
// (внутри транзакции - с блокировкой).

// ActiveBookings returns the bookings that occupy a seat (status != cancelled)
func ActiveBookings(bookings []*Booking) []*Booking {
	active := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// ActiveCount returns the number of seats taken under the schedule
func ActiveCount(bookings []*Booking) int {
	count := 0
	for _, b := range bookings {
		if b.IsActive() {
			count++
		}
	}
	return count
}

// IsFull reports whether the schedule has no free seats left
func IsFull(schedule *Schedule, bookings []*Booking) bool {
	return ActiveCount(bookings) >= schedule.MaxStudents
}

// Remaining returns the number of free seats, never negative
func Remaining(schedule *Schedule, bookings []*Booking) int {
	remaining := schedule.MaxStudents - ActiveCount(bookings)
	if remaining < 0 {
		return 0
	}
	return remaining
}
