package get_student_duties

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

type DutyService interface {
	ListStudentDuties(ctx context.Context, req *models.ListStudentDutiesRequest) (*models.DutyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
