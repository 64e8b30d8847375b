package get_locations

import "github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"

type ScheduleService interface {
	Locations() []models.LocationResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
