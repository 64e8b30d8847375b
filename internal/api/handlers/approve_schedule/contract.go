package approve_schedule

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
)

type ScheduleService interface {
	Approve(ctx context.Context, id int64, adminID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
