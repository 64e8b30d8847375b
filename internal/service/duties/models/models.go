package models

import (
	"errors"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid duty status")
)

// Request модели

// CancelDutyRequest запрос на отмену дежурства
type CancelDutyRequest struct {
	UserID             int64       `json:"userId"`
	Role               domain.Role `json:"role"`
	CancellationReason string      `json:"cancellationReason"`
}

// CompleteDutyRequest запрос на завершение дежурства
type CompleteDutyRequest struct {
	UserID int64       `json:"userId"`
	Role   domain.Role `json:"role"`
}

// ListStudentDutiesRequest запрос на получение дежурств студента
type ListStudentDutiesRequest struct {
	StudentID   int64       `json:"studentId"`
	RequesterID int64       `json:"requesterId"`
	Role        domain.Role `json:"role"`
	Status      *string     `json:"status,omitempty"`
}

// Response модели

// DutyResponse ответ с данными дежурства.
// Включает денормализованные поля расписания, чтобы клиенту
// не приходилось делать второй запрос.
type DutyResponse struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	StudentID  int64  `json:"studentId"`
	Status     string `json:"status"`

	Date       string `json:"date"`       // "2026-03-02"
	Location   string `json:"location"`
	ShiftStart string `json:"shiftStart"` // "08:00"
	ShiftEnd   string `json:"shiftEnd"`   // "20:00"

	BookingTime        time.Time `json:"bookingTime"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CancelledAt        *string   `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string   `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DutyListResponse ответ со списком дежурств
type DutyListResponse struct {
	Duties []DutyResponse `json:"duties"`
}

// Методы конвертации

// FromDomainDuty конвертирует бронирование и его расписание в DTO
func FromDomainDuty(b *domain.Booking, s *domain.Schedule) *DutyResponse {
	if b == nil {
		return nil
	}

	resp := &DutyResponse{
		ID:                 b.ID,
		ScheduleID:         b.ScheduleID,
		StudentID:          b.StudentID,
		Status:             string(b.Status),
		BookingTime:        b.BookingTime,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if s != nil {
		resp.Date = s.Date.Format(domain.DateFormat)
		resp.Location = s.Location
		resp.ShiftStart = s.ShiftStart.String()
		resp.ShiftEnd = s.ShiftEnd.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.CompletedAt != nil {
		completedStr := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.BookingStatusBooked,
		domain.BookingStatusCancelled,
		domain.BookingStatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
