package get_duty

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

type DutyService interface {
	GetByID(ctx context.Context, id int64, requesterID int64, role domain.Role) (*models.DutyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
