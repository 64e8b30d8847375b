package domain

// Default values
const (
	DefaultMaxStudents = 2
	DefaultShiftStart  = "08:00"
	DefaultShiftEnd    = "20:00"
	DefaultDescription = "Community Health Center Duty"
)

// Business validation constants
const (
	MinMaxStudents              = 1
	MaxMaxStudents              = 20
	MaxDescriptionLength        = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelReasonScheduleRejected причина отмены, проставляемая каскадом
// при отклонении расписания админом
const CancelReasonScheduleRejected = "Schedule rejected by admin"

// ActiveBookingStatuses статусы бронирований, занимающих место в расписании.
// Завершённое дежурство продолжает занимать своё место.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusBooked,
	BookingStatusCompleted,
}
