package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid schedule status")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid day of week")
)

// Request модели

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	AdminID     int64   `json:"adminId"`
	Date        string  `json:"date"` // "2026-03-02"
	Location    string  `json:"location"`
	ShiftStart  *string `json:"shiftStart,omitempty"`  // "08:00", по умолчанию из домена
	ShiftEnd    *string `json:"shiftEnd,omitempty"`    // "20:00", по умолчанию из домена
	Description *string `json:"description,omitempty"`
	MaxStudents *int    `json:"maxStudents,omitempty"` // по умолчанию лимит локации
}

// BulkCreateRequest запрос на массовое создание расписаний за период.
// Локация и лимит мест берутся из помесячной ротации площадок.
type BulkCreateRequest struct {
	AdminID    int64    `json:"adminId"`
	StartDate  string   `json:"startDate"` // "2026-03-01"
	EndDate    string   `json:"endDate"`   // "2026-03-31"
	DaysOfWeek []string `json:"daysOfWeek,omitempty"` // по умолчанию будни
}

// ListSchedulesRequest запрос на получение расписаний
type ListSchedulesRequest struct {
	RequesterID int64       `json:"requesterId"`
	Role        domain.Role `json:"role"`
	StartDate   *string     `json:"startDate,omitempty"`
	EndDate     *string     `json:"endDate,omitempty"`
	Location    *string     `json:"location,omitempty"`
	Status      *string     `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSchedulesRequest) ToDomainFilter() (domain.ScheduleFilter, error) {
	var filter domain.ScheduleFilter

	if r.StartDate != nil {
		start, err := ParseDate(*r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if r.EndDate != nil {
		end, err := ParseDate(*r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	filter.Location = r.Location

	if r.Status != nil {
		status, err := ToDomainScheduleStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ScheduleBookingResponse бронирование в составе расписания
type ScheduleBookingResponse struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"` // заполняется только для админа
	Status      string    `json:"status"`
	BookingTime time.Time `json:"bookingTime"`
}

// ScheduleResponse ответ с данными расписания.
// Состав полей зависит от роли: админ видит все бронирования с именами,
// студент - занятость и своё бронирование, родитель - только занятость.
type ScheduleResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ShiftStart  string `json:"shiftStart"`
	ShiftEnd    string `json:"shiftEnd"`
	Description string `json:"description"`
	MaxStudents int    `json:"maxStudents"`
	Status      string `json:"status"`

	ActiveCount int `json:"activeCount"`
	Remaining   int `json:"remaining"`

	CreatedBy  int64   `json:"createdBy"`
	ApprovedBy *int64  `json:"approvedBy,omitempty"`
	ApprovedAt *string `json:"approvedAt,omitempty"` // ISO 8601

	Bookings  []ScheduleBookingResponse `json:"bookings,omitempty"`  // только для админа
	MyBooking *ScheduleBookingResponse  `json:"myBooking,omitempty"` // только для студента

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// BulkCreateResponse результат массового создания расписаний
type BulkCreateResponse struct {
	Created      []ScheduleResponse `json:"created"`
	SkippedDates []string           `json:"skippedDates"` // даты, на которые расписание уже было
}

// LocationResponse площадка дежурств
type LocationResponse struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO без данных о занятости
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		Location:    s.Location,
		ShiftStart:  s.ShiftStart.String(),
		ShiftEnd:    s.ShiftEnd.String(),
		Description: s.Description,
		MaxStudents: s.MaxStudents,
		Status:      string(s.Status),
		Remaining:   s.MaxStudents,
		CreatedBy:   s.CreatedBy,
		ApprovedBy:  s.ApprovedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.ApprovedAt != nil {
		approvedStr := s.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedStr
	}

	return resp
}

// FromDomainScheduleBooking конвертирует бронирование в DTO
func FromDomainScheduleBooking(b *domain.Booking) ScheduleBookingResponse {
	return ScheduleBookingResponse{
		ID:          b.ID,
		StudentID:   b.StudentID,
		Status:      string(b.Status),
		BookingTime: b.BookingTime,
	}
}

// ToDomainScheduleStatus конвертирует строку в domain.ScheduleStatus с валидацией
func ToDomainScheduleStatus(status string) (domain.ScheduleStatus, error) {
	s := domain.ScheduleStatus(status)

	validStatuses := []domain.ScheduleStatus{
		domain.ScheduleStatusPending,
		domain.ScheduleStatusApproved,
		domain.ScheduleStatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DefaultDaysOfWeek будние дни, используемые при массовом создании,
// когда дни недели не указаны явно
var DefaultDaysOfWeek = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// ToDomainWeekdays конвертирует имена дней недели с валидацией.
// Пустой список означает будние дни.
func ToDomainWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return DefaultDaysOfWeek, nil
	}

	weekdays := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		weekday, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, ErrInvalidWeekday
		}
		weekdays = append(weekdays, weekday)
	}
	return weekdays, nil
}
