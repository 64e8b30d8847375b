package duties

import "errors"

var (
	// ErrDutyNotFound возвращается, когда бронирование дежурства не найдено
	ErrDutyNotFound = errors.New("duty booking not found")

	// ErrScheduleNotFound возвращается, когда расписание дежурства не найдено
	ErrScheduleNotFound = errors.New("duty schedule not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrSameDayCancelForbidden возвращается при попытке отменить дежурство
	// в день самого дежурства
	ErrSameDayCancelForbidden = errors.New("duty cannot be cancelled on the day of the duty")

	// ErrCannotCancel возвращается, когда статус бронирования не допускает отмену
	ErrCannotCancel = errors.New("duty cannot be cancelled")

	// ErrScheduleNotApproved возвращается при попытке завершить дежурство
	// в неподтверждённом расписании
	ErrScheduleNotApproved = errors.New("duty schedule is not approved")

	// ErrCannotComplete возвращается, когда статус бронирования не допускает завершение
	ErrCannotComplete = errors.New("duty cannot be completed")

	// ErrCannotDelete возвращается, когда бронирование нельзя удалить
	// (удаление доступно только пока расписание ожидает подтверждения)
	ErrCannotDelete = errors.New("duty cannot be deleted")

	// ErrNoLinkedStudent возвращается, когда у родителя нет привязанного студента
	ErrNoLinkedStudent = errors.New("parent has no linked student")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
