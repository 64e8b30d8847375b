package create_schedule

import "github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"

// CreateScheduleRequest HTTP request model
type CreateScheduleRequest struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string  `json:"location" validate:"required"`
	ShiftStart  *string `json:"shiftStart,omitempty"`
	ShiftEnd    *string `json:"shiftEnd,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	MaxStudents *int    `json:"maxStudents,omitempty" validate:"omitempty,gte=1,lte=20"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateScheduleRequest) ToServiceRequest(adminID int64) *models.CreateScheduleRequest {
	return &models.CreateScheduleRequest{
		AdminID:     adminID,
		Date:        r.Date,
		Location:    r.Location,
		ShiftStart:  r.ShiftStart,
		ShiftEnd:    r.ShiftEnd,
		Description: r.Description,
		MaxStudents: r.MaxStudents,
	}
}
