package get_parent_duties

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

type DutyService interface {
	ListChildDuties(ctx context.Context, parentID int64, requesterID int64, role domain.Role, status *string) (*models.DutyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
