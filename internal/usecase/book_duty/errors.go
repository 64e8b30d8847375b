package book_duty

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("book_duty: duty schedule not found")

	// ErrScheduleNotBookable возвращается, когда расписание отменено
	// или его дата уже прошла
	ErrScheduleNotBookable = errors.New("book_duty: duty schedule is not bookable")

	// ErrScheduleFull возвращается, когда все места расписания заняты
	ErrScheduleFull = errors.New("book_duty: duty schedule is fully booked")

	// ErrDuplicateBooking возвращается при повторном бронировании того же расписания
	ErrDuplicateBooking = errors.New("book_duty: student already booked this schedule")

	// ErrDateConflict возвращается, когда у студента уже есть дежурство на эту дату
	ErrDateConflict = errors.New("book_duty: student already has a duty on this date")

	// ErrSameDayRebookBlocked возвращается, когда студент отменил дежурство
	// на эту дату сегодня и пытается забронировать её снова
	ErrSameDayRebookBlocked = errors.New("book_duty: date was cancelled today, rebooking blocked until tomorrow")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_duty: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_duty: internal error")
)
