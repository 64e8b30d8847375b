package bulk_create_schedules

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
)

type ScheduleService interface {
	BulkCreate(ctx context.Context, req *models.BulkCreateRequest) (*models.BulkCreateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
