package reject_schedule

// Request запрос на отклонение расписания
type Request struct {
	ScheduleID int64
	AdminID    int64
}

// Response результат отклонения расписания
type Response struct {
	ScheduleID        int64
	Status            string
	CancelledBookings int // сколько бронирований отменено каскадом
}
