package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("duty schedule not found")

	// ErrScheduleExists возвращается, когда на эту дату и локацию
	// расписание уже существует
	ErrScheduleExists = errors.New("duty schedule already exists for this date and location")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid schedule status transition")

	// ErrPastDate возвращается при попытке создать расписание на прошедшую дату
	ErrPastDate = errors.New("schedule date is in the past")

	// ErrUnknownLocation возвращается при неизвестной локации
	ErrUnknownLocation = errors.New("unknown hospital location")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
