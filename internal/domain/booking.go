package domain

import "time"

// BookingStatus represents the status of a duty booking,
// independent of the owning schedule's status
type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking represents a student's claim on a duty schedule (schedule_students)
type Booking struct {
	ID          int64
	ScheduleID  int64
	StudentID   int64
	BookingTime time.Time
	Status      BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies a seat
// (both booked and completed count toward capacity)
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// IsBooked returns true while the duty is claimed but not yet completed
func (b *Booking) IsBooked() bool {
	return b.Status == BookingStatusBooked
}

// IsCompleted returns true once the duty has been marked completed
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}

// CanBeCancelled returns true if the booking status allows cancellation.
// Date and ownership rules are enforced by the cancellation policy.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusBooked
}

// CanBeCompleted returns true if the booking status allows completion.
// The owning schedule must additionally be approved.
func (b *Booking) CanBeCompleted() bool {
	return b.Status == BookingStatusBooked
}
