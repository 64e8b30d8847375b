package delete_duty

import "context"

type DutyService interface {
	DeletePending(ctx context.Context, dutyID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
