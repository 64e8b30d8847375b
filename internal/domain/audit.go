package domain

import "time"

// Audit actions recorded in duty_logs
const (
	AuditActionBooked          = "booked"
	AuditActionCancelled       = "cancelled"
	AuditActionCompleted       = "completed"
	AuditActionDeleted         = "deleted"
	AuditActionStatusApproved  = "status_approved"
	AuditActionStatusCancelled = "status_cancelled"
	AuditActionScheduleCreated = "schedule_created"
	AuditActionScheduleDeleted = "schedule_deleted"
)

// DutyLog represents an audit log entry for a schedule or booking action
type DutyLog struct {
	ID          int64
	ScheduleID  int64
	BookingID   *int64 // schedule_student_id, если действие относится к бронированию
	Action      string
	PerformedBy int64
	TargetUser  *int64
	Notes       string

	CreatedAt time.Time
}
