package reject_schedule

import (
	"context"

	rejectSchedule "github.com/m04kA/CDS-DutyRosterService/internal/usecase/reject_schedule"
)

type RejectScheduleUseCase interface {
	Execute(ctx context.Context, req *rejectSchedule.Request) (*rejectSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
