package domain

import (
	"time"

	"github.com/m04kA/CDS-DutyRosterService/pkg/types"
)

// ScheduleStatus represents the approval status of a duty schedule
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusApproved  ScheduleStatus = "approved"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Schedule represents a duty slot at a hospital location on a calendar date
type Schedule struct {
	ID          int64
	Date        time.Time // calendar day, no time component
	Location    string    // hospital site identifier
	ShiftStart  types.TimeString
	ShiftEnd    types.TimeString
	Description string
	MaxStudents int
	Status      ScheduleStatus

	CreatedBy  int64
	ApprovedBy *int64
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the schedule awaits an admin decision
func (s *Schedule) IsPending() bool {
	return s.Status == ScheduleStatusPending
}

// IsApproved returns true if the schedule has been approved
func (s *Schedule) IsApproved() bool {
	return s.Status == ScheduleStatusApproved
}

// IsCancelled returns true if the schedule has been cancelled
func (s *Schedule) IsCancelled() bool {
	return s.Status == ScheduleStatusCancelled
}

// IsTerminal returns true once no further status transition is allowed.
// pending → approved | cancelled; ни approved, ни cancelled не откатываются.
func (s *Schedule) IsTerminal() bool {
	return s.Status == ScheduleStatusApproved || s.Status == ScheduleStatusCancelled
}

// ScheduleFilter фильтр для выборки расписаний
type ScheduleFilter struct {
	StartDate *time.Time      // Начало периода (опционально)
	EndDate   *time.Time      // Конец периода (опционально)
	Location  *string         // Фильтр по локации (опционально)
	Status    *ScheduleStatus // Фильтр по статусу (опционально)
}
