package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrScheduleExists возвращается при нарушении уникальности (date, location)
	ErrScheduleExists = errors.New("schedule.repository: schedule for this date and location already exists")

	// ErrNotPending возвращается, когда условный переход статуса не сработал,
	// потому что расписание уже не в статусе pending
	ErrNotPending = errors.New("schedule.repository: schedule is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
