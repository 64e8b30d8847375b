package bulk_create_schedules

import "github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"

// BulkCreateRequest HTTP request model
type BulkCreateRequest struct {
	StartDate  string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	DaysOfWeek []string `json:"daysOfWeek,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BulkCreateRequest) ToServiceRequest(adminID int64) *models.BulkCreateRequest {
	return &models.BulkCreateRequest{
		AdminID:    adminID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		DaysOfWeek: r.DaysOfWeek,
	}
}
