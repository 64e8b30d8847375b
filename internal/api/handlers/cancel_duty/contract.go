package cancel_duty

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

type DutyService interface {
	Cancel(ctx context.Context, dutyID int64, req *models.CancelDutyRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
