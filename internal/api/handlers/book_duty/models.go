package book_duty

import (
	"time"

	bookDuty "github.com/m04kA/CDS-DutyRosterService/internal/usecase/book_duty"
)

// BookDutyRequest HTTP request model
type BookDutyRequest struct {
	ScheduleID int64 `json:"scheduleId" validate:"required,gt=0"`
}

// DutyResponse HTTP response model
type DutyResponse struct {
	ID          int64  `json:"id"`
	ScheduleID  int64  `json:"scheduleId"`
	StudentID   int64  `json:"studentId"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ShiftStart  string `json:"shiftStart"`
	ShiftEnd    string `json:"shiftEnd"`
	BookingTime string `json:"bookingTime"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookDuty.Response) *DutyResponse {
	return &DutyResponse{
		ID:          resp.ID,
		ScheduleID:  resp.ScheduleID,
		StudentID:   resp.StudentID,
		Status:      resp.Status,
		Date:        resp.Date,
		Location:    resp.Location,
		ShiftStart:  resp.ShiftStart,
		ShiftEnd:    resp.ShiftEnd,
		BookingTime: resp.BookingTime.Format(time.RFC3339),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
