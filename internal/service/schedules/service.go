package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
	"github.com/m04kA/CDS-DutyRosterService/pkg/types"
)

// Предел периода массового создания расписаний
const maxBulkRangeDays = 366

// Service сервис для работы с расписаниями дежурств
type Service struct {
	schedules     ScheduleRepository
	bookings      BookingRepository
	auditLog      AuditRepository
	notifications NotificationRepository
	users         UserRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	schedules ScheduleRepository,
	bookings BookingRepository,
	auditLog AuditRepository,
	notifications NotificationRepository,
	users UserRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		schedules:     schedules,
		bookings:      bookings,
		auditLog:      auditLog,
		notifications: notifications,
		users:         users,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Create создает расписание дежурства
// Лимит мест по умолчанию берётся из справочника локации
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for date=%s, location=%s by admin=%d",
		req.Date, req.Location, req.AdminID)

	schedule, err := s.buildSchedule(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for date=%s: %v", req.Date, err)
		return nil, err
	}

	created, err := s.schedules.Create(ctx, schedule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleExists) {
			s.logger.Warn("Create: schedule already exists for date=%s, location=%s", req.Date, req.Location)
			return nil, ErrScheduleExists
		}
		s.logger.Error("Create: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  created.ID,
		Action:      domain.AuditActionScheduleCreated,
		PerformedBy: req.AdminID,
		Notes:       fmt.Sprintf("%s at %s", created.Date.Format(domain.DateFormat), created.Location),
	})

	s.logger.Info("Create: successfully created schedule id=%d", created.ID)
	return models.FromDomainSchedule(created), nil
}

// BulkCreate создает расписания на каждый подходящий день периода
// Локация и лимит мест определяются помесячной ротацией площадок.
// Даты, на которые расписание уже существует, пропускаются.
func (s *Service) BulkCreate(ctx context.Context, req *models.BulkCreateRequest) (*models.BulkCreateResponse, error) {
	s.logger.Info("BulkCreate: creating schedules for period %s..%s by admin=%d",
		req.StartDate, req.EndDate, req.AdminID)

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	if endDate.Sub(startDate) > maxBulkRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period exceeds %d days", ErrInvalidInput, maxBulkRangeDays)
	}

	weekdays, err := models.ToDomainWeekdays(req.DaysOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today := domain.DateOnly(s.timeProvider.Now())
	resp := &models.BulkCreateResponse{
		Created:      make([]models.ScheduleResponse, 0),
		SkippedDates: make([]string, 0),
	}

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if !matchesWeekday(date, weekdays) {
			continue
		}
		if date.Before(today) {
			resp.SkippedDates = append(resp.SkippedDates, date.Format(domain.DateFormat))
			continue
		}

		location := domain.LocationForMonth(date)
		created, err := s.schedules.Create(ctx, &domain.Schedule{
			Date:        date,
			Location:    location.Name,
			ShiftStart:  types.TimeString(domain.DefaultShiftStart),
			ShiftEnd:    types.TimeString(domain.DefaultShiftEnd),
			Description: domain.DefaultDescription,
			MaxStudents: location.Capacity,
			Status:      domain.ScheduleStatusPending,
			CreatedBy:   req.AdminID,
		})
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleExists) {
				resp.SkippedDates = append(resp.SkippedDates, date.Format(domain.DateFormat))
				continue
			}
			s.logger.Error("BulkCreate: repository error for date=%s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: BulkCreate - repository error: %v", ErrInternal, err)
		}

		s.recordAudit(ctx, &domain.DutyLog{
			ScheduleID:  created.ID,
			Action:      domain.AuditActionScheduleCreated,
			PerformedBy: req.AdminID,
			Notes:       fmt.Sprintf("%s at %s (bulk)", created.Date.Format(domain.DateFormat), created.Location),
		})
		resp.Created = append(resp.Created, *models.FromDomainSchedule(created))
	}

	s.logger.Info("BulkCreate: created %d schedules, skipped %d dates",
		len(resp.Created), len(resp.SkippedDates))
	return resp, nil
}

// List получает расписания с фильтрацией
// Состав ответа зависит от роли: админ видит бронирования с именами
// студентов, студент - занятость и своё бронирование, родитель - занятость
func (s *Service) List(ctx context.Context, req *models.ListSchedulesRequest) (*models.ScheduleListResponse, error) {
	s.logger.Info("List: fetching schedules for user=%d role=%s", req.RequesterID, req.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	schedules, err := s.schedules.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleListResponse{
		Schedules: make([]models.ScheduleResponse, 0, len(schedules)),
	}
	nameCache := make(map[int64]string)

	for _, schedule := range schedules {
		bookings, err := s.bookings.GetByScheduleID(ctx, schedule.ID, false)
		if err != nil {
			s.logger.Error("List: failed to load bookings for schedule id=%d: %v", schedule.ID, err)
			return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
		}

		item := models.FromDomainSchedule(schedule)
		item.ActiveCount = domain.ActiveCount(bookings)
		item.Remaining = domain.Remaining(schedule, bookings)

		switch req.Role {
		case domain.RoleAdmin:
			item.Bookings = make([]models.ScheduleBookingResponse, 0, len(bookings))
			for _, b := range bookings {
				entry := models.FromDomainScheduleBooking(b)
				entry.StudentName = s.studentName(ctx, b.StudentID, nameCache)
				item.Bookings = append(item.Bookings, entry)
			}
		case domain.RoleStudent:
			for _, b := range bookings {
				if b.StudentID == req.RequesterID {
					own := models.FromDomainScheduleBooking(b)
					item.MyBooking = &own
					break
				}
			}
		}
		// Родителю достаётся только занятость

		resp.Schedules = append(resp.Schedules, *item)
	}

	s.logger.Info("List: successfully fetched %d schedules", len(resp.Schedules))
	return resp, nil
}

// Approve подтверждает расписание
// Переход разрешён только из статуса pending. Все студенты с активными
// бронированиями получают уведомление.
func (s *Service) Approve(ctx context.Context, id int64, adminID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Approve: approving schedule id=%d by admin=%d", id, adminID)

	if err := s.schedules.Approve(ctx, id, adminID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Approve: schedule id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		if errors.Is(err, scheduleRepo.ErrNotPending) {
			s.logger.Warn("Approve: schedule id=%d is not pending", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Approve: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Approve: failed to reload schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  id,
		Action:      domain.AuditActionStatusApproved,
		PerformedBy: adminID,
	})
	s.notifyScheduleApproved(ctx, schedule)

	s.logger.Info("Approve: successfully approved schedule id=%d", id)
	return models.FromDomainSchedule(schedule), nil
}

// Delete удаляет расписание вместе с бронированиями
// Студенты с активными бронированиями получают уведомление
func (s *Service) Delete(ctx context.Context, id int64, adminID int64) error {
	s.logger.Info("Delete: deleting schedule id=%d by admin=%d", id, adminID)

	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Бронирования уйдут каскадом - собираем получателей уведомлений заранее
	bookings, err := s.bookings.GetByScheduleID(ctx, id, false)
	if err != nil {
		s.logger.Error("Delete: failed to load bookings for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%d not found during deletion", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  id,
		Action:      domain.AuditActionScheduleDeleted,
		PerformedBy: adminID,
		Notes:       fmt.Sprintf("%s at %s", schedule.Date.Format(domain.DateFormat), schedule.Location),
	})
	s.notifyScheduleDeleted(ctx, schedule, bookings)

	s.logger.Info("Delete: successfully deleted schedule id=%d", id)
	return nil
}

// Locations возвращает справочник площадок дежурств
func (s *Service) Locations() []models.LocationResponse {
	locations := make([]models.LocationResponse, 0, len(domain.HospitalLocations))
	for _, loc := range domain.HospitalLocations {
		locations = append(locations, models.LocationResponse{
			Name:        loc.Name,
			Capacity:    loc.Capacity,
			Description: loc.Description,
		})
	}
	return locations
}

// Вспомогательные методы

// buildSchedule валидирует запрос и собирает domain модель
func (s *Service) buildSchedule(req *models.CreateScheduleRequest) (*domain.Schedule, error) {
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if date.Before(domain.DateOnly(s.timeProvider.Now())) {
		return nil, ErrPastDate
	}

	location, ok := domain.FindLocation(req.Location)
	if !ok {
		return nil, ErrUnknownLocation
	}

	schedule := &domain.Schedule{
		Date:        date,
		Location:    location.Name,
		ShiftStart:  types.TimeString(domain.DefaultShiftStart),
		ShiftEnd:    types.TimeString(domain.DefaultShiftEnd),
		Description: domain.DefaultDescription,
		MaxStudents: location.Capacity,
		Status:      domain.ScheduleStatusPending,
		CreatedBy:   req.AdminID,
	}

	if req.ShiftStart != nil {
		start, err := types.NewTimeStringFromString(*req.ShiftStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid shift start", ErrInvalidInput)
		}
		schedule.ShiftStart = start
	}
	if req.ShiftEnd != nil {
		end, err := types.NewTimeStringFromString(*req.ShiftEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid shift end", ErrInvalidInput)
		}
		schedule.ShiftEnd = end
	}
	if !schedule.ShiftStart.IsBefore(schedule.ShiftEnd) {
		return nil, fmt.Errorf("%w: shift start must be before shift end", ErrInvalidInput)
	}

	if req.Description != nil {
		if len(*req.Description) > domain.MaxDescriptionLength {
			return nil, fmt.Errorf("%w: description too long", ErrInvalidInput)
		}
		schedule.Description = *req.Description
	}
	if req.MaxStudents != nil {
		if *req.MaxStudents < domain.MinMaxStudents || *req.MaxStudents > domain.MaxMaxStudents {
			return nil, fmt.Errorf("%w: max students out of range", ErrInvalidInput)
		}
		schedule.MaxStudents = *req.MaxStudents
	}

	return schedule, nil
}

func matchesWeekday(date time.Time, weekdays []time.Weekday) bool {
	for _, weekday := range weekdays {
		if date.Weekday() == weekday {
			return true
		}
	}
	return false
}

// studentName достаёт имя студента с кэшированием в пределах запроса
func (s *Service) studentName(ctx context.Context, studentID int64, cache map[int64]string) string {
	if name, ok := cache[studentID]; ok {
		return name
	}

	profile, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrProfileNotFound) {
			s.logger.Error("studentName: failed to load profile id=%d: %v", studentID, err)
		}
		cache[studentID] = ""
		return ""
	}

	cache[studentID] = profile.FullName
	return profile.FullName
}

// recordAudit пишет запись журнала, не прерывая основной сценарий
func (s *Service) recordAudit(ctx context.Context, entry *domain.DutyLog) {
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("recordAudit: failed to record %s for schedule=%d: %v",
			entry.Action, entry.ScheduleID, err)
	}
}

// notifyScheduleApproved уведомляет студентов с активными бронированиями
func (s *Service) notifyScheduleApproved(ctx context.Context, schedule *domain.Schedule) {
	bookings, err := s.bookings.GetByScheduleID(ctx, schedule.ID, false)
	if err != nil {
		s.logger.Error("notifyScheduleApproved: failed to load bookings for schedule id=%d: %v",
			schedule.ID, err)
		return
	}

	active := domain.ActiveBookings(bookings)
	if len(active) == 0 {
		return
	}

	dateStr := schedule.Date.Format(domain.DateFormat)
	notifications := make([]*domain.Notification, 0, len(active))
	for _, b := range active {
		notifications = append(notifications, &domain.Notification{
			UserID:  b.StudentID,
			Title:   "Duty Schedule Approved",
			Message: fmt.Sprintf("Your duty on %s at %s has been approved", dateStr, schedule.Location),
			Type:    domain.NotificationSuccess,
		})
	}

	if err := s.notifications.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error("notifyScheduleApproved: failed to notify students for schedule id=%d: %v",
			schedule.ID, err)
	}
}

// notifyScheduleDeleted уведомляет студентов об удалении расписания
func (s *Service) notifyScheduleDeleted(ctx context.Context, schedule *domain.Schedule, bookings []*domain.Booking) {
	active := domain.ActiveBookings(bookings)
	if len(active) == 0 {
		return
	}

	dateStr := schedule.Date.Format(domain.DateFormat)
	notifications := make([]*domain.Notification, 0, len(active))
	for _, b := range active {
		notifications = append(notifications, &domain.Notification{
			UserID:  b.StudentID,
			Title:   "Duty Schedule Deleted",
			Message: fmt.Sprintf("The duty schedule on %s at %s was deleted", dateStr, schedule.Location),
			Type:    domain.NotificationWarning,
		})
	}

	if err := s.notifications.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error("notifyScheduleDeleted: failed to notify students for schedule id=%d: %v",
			schedule.ID, err)
	}
}
