package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateActiveBooking возвращается, когда у студента уже есть
	// активное бронирование на это расписание (частичный уникальный индекс)
	ErrDuplicateActiveBooking = errors.New("booking.repository: student already has an active booking for this schedule")

	// ErrScheduleFull возвращается, когда триггер БД отклонил вставку
	// из-за исчерпанной вместимости расписания
	ErrScheduleFull = errors.New("booking.repository: schedule is fully booked")

	// ErrDateConflict возвращается, когда триггер БД отклонил вставку
	// из-за другого активного дежурства студента на ту же дату
	ErrDateConflict = errors.New("booking.repository: student already has a duty on this date")

	// ErrNotBooked возвращается, когда условный переход статуса не сработал,
	// потому что бронирование уже не в статусе booked
	ErrNotBooked = errors.New("booking.repository: booking is not in booked status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
