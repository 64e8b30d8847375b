package reject_schedule

import rejectSchedule "github.com/m04kA/CDS-DutyRosterService/internal/usecase/reject_schedule"

// RejectScheduleResponse HTTP response model
type RejectScheduleResponse struct {
	ScheduleID        int64  `json:"scheduleId"`
	Status            string `json:"status"`
	CancelledBookings int    `json:"cancelledBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectSchedule.Response) *RejectScheduleResponse {
	return &RejectScheduleResponse{
		ScheduleID:        resp.ScheduleID,
		Status:            resp.Status,
		CancelledBookings: resp.CancelledBookings,
	}
}
