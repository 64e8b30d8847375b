package reject_schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("reject_schedule: duty schedule not found")

	// ErrInvalidTransition возвращается, когда расписание уже не в статусе pending
	ErrInvalidTransition = errors.New("reject_schedule: schedule is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_schedule: internal error")
)
