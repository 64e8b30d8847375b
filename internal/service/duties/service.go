package duties

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

// Service сервис для работы с дежурствами студентов
type Service struct {
	bookings      BookingRepository
	schedules     ScheduleRepository
	cancelMarks   CancelMarkRepository
	auditLog      AuditRepository
	notifications NotificationRepository
	users         UserRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса дежурств
func NewService(
	bookings BookingRepository,
	schedules ScheduleRepository,
	cancelMarks CancelMarkRepository,
	auditLog AuditRepository,
	notifications NotificationRepository,
	users UserRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookings:      bookings,
		schedules:     schedules,
		cancelMarks:   cancelMarks,
		auditLog:      auditLog,
		notifications: notifications,
		users:         users,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// GetByID получает дежурство по ID
// Студент видит только своё дежурство, родитель - дежурство привязанного
// студента, админ - любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64, role domain.Role) (*models.DutyResponse, error) {
	s.logger.Info("GetByID: fetching duty id=%d for user=%d role=%s", id, requesterID, role)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkViewAccess(ctx, booking.StudentID, requesterID, role); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to duty id=%d", requesterID, id)
		return nil, err
	}

	schedule, err := s.getSchedule(ctx, booking.ScheduleID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainDuty(booking, schedule), nil
}

// ListStudentDuties получает историю дежурств студента
// Опционально фильтрует по статусу
func (s *Service) ListStudentDuties(ctx context.Context, req *models.ListStudentDutiesRequest) (*models.DutyListResponse, error) {
	s.logger.Info("ListStudentDuties: fetching duties for student=%d, requester=%d, status=%v",
		req.StudentID, req.RequesterID, req.Status)

	if err := s.checkViewAccess(ctx, req.StudentID, req.RequesterID, req.Role); err != nil {
		s.logger.Warn("ListStudentDuties: access denied for user=%d to student=%d duties",
			req.RequesterID, req.StudentID)
		return nil, err
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListStudentDuties: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookings.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("ListStudentDuties: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: ListStudentDuties - repository error: %v", ErrInternal, err)
	}

	resp, err := s.buildDutyList(ctx, bookings)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListStudentDuties: successfully fetched %d duties for student=%d",
		len(resp.Duties), req.StudentID)
	return resp, nil
}

// ListChildDuties получает дежурства студента, привязанного к родителю
func (s *Service) ListChildDuties(ctx context.Context, parentID int64, requesterID int64, role domain.Role, status *string) (*models.DutyListResponse, error) {
	s.logger.Info("ListChildDuties: fetching duties for parent=%d, requester=%d", parentID, requesterID)

	// Родитель смотрит только свою привязку; админу доступна любая
	if requesterID != parentID && role != domain.RoleAdmin {
		s.logger.Warn("ListChildDuties: access denied for user=%d to parent=%d", requesterID, parentID)
		return nil, ErrAccessDenied
	}

	profile, err := s.users.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, userRepo.ErrProfileNotFound) {
			s.logger.Warn("ListChildDuties: parent profile id=%d not found", parentID)
			return nil, ErrDutyNotFound
		}
		s.logger.Error("ListChildDuties: repository error for parent=%d: %v", parentID, err)
		return nil, fmt.Errorf("%w: ListChildDuties - repository error: %v", ErrInternal, err)
	}

	if !profile.HasLinkedStudent() {
		s.logger.Warn("ListChildDuties: parent=%d has no linked student", parentID)
		return nil, ErrNoLinkedStudent
	}

	return s.ListStudentDuties(ctx, &models.ListStudentDutiesRequest{
		StudentID:   *profile.StudentID,
		RequesterID: requesterID,
		Role:        role,
		Status:      status,
	})
}

// Cancel отменяет дежурство
// В день самого дежурства отмена запрещена любой ролью. Студент отменяет
// только своё дежурство, админ - любое. Вместе с отменой пишется метка,
// блокирующая повторное бронирование этой даты до конца дня.
func (s *Service) Cancel(ctx context.Context, dutyID int64, req *models.CancelDutyRequest) error {
	s.logger.Info("Cancel: cancelling duty id=%d by user=%d", dutyID, req.UserID)

	booking, err := s.getBooking(ctx, dutyID, "Cancel")
	if err != nil {
		return err
	}

	schedule, err := s.getSchedule(ctx, booking.ScheduleID, "Cancel")
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()

	// Запрет действует на всех, включая админа
	if domain.SameCalendarDay(schedule.Date, now) {
		s.logger.Warn("Cancel: same-day cancellation rejected for duty id=%d, date=%s",
			dutyID, schedule.Date.Format(domain.DateFormat))
		return ErrSameDayCancelForbidden
	}

	if booking.StudentID != req.UserID && req.Role != domain.RoleAdmin {
		s.logger.Warn("Cancel: access denied for user=%d to cancel duty id=%d", req.UserID, dutyID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: duty id=%d cannot be cancelled, status=%s", dutyID, booking.Status)
		return ErrCannotCancel
	}

	// Отмена и метка пишутся атомарно: метка без отмены блокировала бы
	// студента зря, отмена без метки позволила бы немедленный перезахват даты
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookings.Cancel(ctx, dutyID, req.CancellationReason); err != nil {
			return err
		}
		return s.cancelMarks.Record(ctx, &domain.CancelMark{
			StudentID:   booking.StudentID,
			DutyDate:    domain.DateOnly(schedule.Date),
			CancelledOn: domain.DateOnly(now),
		})
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: duty id=%d not found during cancellation", dutyID)
			return ErrDutyNotFound
		}
		if errors.Is(err, bookingRepo.ErrNotBooked) {
			s.logger.Warn("Cancel: duty id=%d already transitioned, cannot cancel", dutyID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for duty id=%d: %v", dutyID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  booking.ScheduleID,
		BookingID:   &booking.ID,
		Action:      domain.AuditActionCancelled,
		PerformedBy: req.UserID,
		TargetUser:  &booking.StudentID,
		Notes:       req.CancellationReason,
	})
	s.notifyCancellation(ctx, booking, schedule, req)

	s.logger.Info("Cancel: successfully cancelled duty id=%d", dutyID)
	return nil
}

// Complete отмечает дежурство выполненным
// Доступно владельцу (или админу) и только когда расписание подтверждено
func (s *Service) Complete(ctx context.Context, dutyID int64, req *models.CompleteDutyRequest) error {
	s.logger.Info("Complete: completing duty id=%d by user=%d", dutyID, req.UserID)

	booking, err := s.getBooking(ctx, dutyID, "Complete")
	if err != nil {
		return err
	}

	if booking.StudentID != req.UserID && req.Role != domain.RoleAdmin {
		s.logger.Warn("Complete: access denied for user=%d to duty id=%d", req.UserID, dutyID)
		return ErrAccessDenied
	}

	schedule, err := s.getSchedule(ctx, booking.ScheduleID, "Complete")
	if err != nil {
		return err
	}

	if !schedule.IsApproved() {
		s.logger.Warn("Complete: duty id=%d schedule id=%d is not approved, status=%s",
			dutyID, schedule.ID, schedule.Status)
		return ErrScheduleNotApproved
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: duty id=%d cannot be completed, status=%s", dutyID, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookings.Complete(ctx, dutyID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: duty id=%d not found during completion", dutyID)
			return ErrDutyNotFound
		}
		if errors.Is(err, bookingRepo.ErrNotBooked) {
			s.logger.Warn("Complete: duty id=%d already transitioned, cannot complete", dutyID)
			return ErrCannotComplete
		}
		s.logger.Error("Complete: repository error for duty id=%d: %v", dutyID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  booking.ScheduleID,
		BookingID:   &booking.ID,
		Action:      domain.AuditActionCompleted,
		PerformedBy: req.UserID,
		TargetUser:  &booking.StudentID,
	})

	s.logger.Info("Complete: successfully completed duty id=%d", dutyID)
	return nil
}

// DeletePending удаляет бронирование без следа
// Доступно только владельцу и только пока расписание ожидает подтверждения
func (s *Service) DeletePending(ctx context.Context, dutyID int64, userID int64) error {
	s.logger.Info("DeletePending: deleting duty id=%d by user=%d", dutyID, userID)

	booking, err := s.getBooking(ctx, dutyID, "DeletePending")
	if err != nil {
		return err
	}

	if booking.StudentID != userID {
		s.logger.Warn("DeletePending: access denied for user=%d to duty id=%d", userID, dutyID)
		return ErrAccessDenied
	}

	if !booking.IsBooked() {
		s.logger.Warn("DeletePending: duty id=%d is not in booked status, status=%s", dutyID, booking.Status)
		return ErrCannotDelete
	}

	schedule, err := s.getSchedule(ctx, booking.ScheduleID, "DeletePending")
	if err != nil {
		return err
	}

	if !schedule.IsPending() {
		s.logger.Warn("DeletePending: duty id=%d schedule id=%d is not pending, status=%s",
			dutyID, schedule.ID, schedule.Status)
		return ErrCannotDelete
	}

	if err := s.bookings.Delete(ctx, dutyID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeletePending: duty id=%d not found during deletion", dutyID)
			return ErrDutyNotFound
		}
		s.logger.Error("DeletePending: repository error for duty id=%d: %v", dutyID, err)
		return fmt.Errorf("%w: DeletePending - repository error: %v", ErrInternal, err)
	}

	s.recordAudit(ctx, &domain.DutyLog{
		ScheduleID:  booking.ScheduleID,
		Action:      domain.AuditActionDeleted,
		PerformedBy: userID,
		TargetUser:  &booking.StudentID,
	})

	s.logger.Info("DeletePending: successfully deleted duty id=%d", dutyID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, method string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: duty id=%d not found", method, id)
			return nil, ErrDutyNotFound
		}
		s.logger.Error("%s: repository error for duty id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) getSchedule(ctx context.Context, id int64, method string) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: schedule id=%d not found", method, id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: repository error for schedule id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return schedule, nil
}

// checkViewAccess проверяет право на просмотр дежурств студента
// Студент видит свои, родитель - привязанного студента, админ - любые
func (s *Service) checkViewAccess(ctx context.Context, studentID, requesterID int64, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}
	if role == domain.RoleStudent && requesterID == studentID {
		return nil
	}

	if role == domain.RoleParent {
		profile, err := s.users.GetByID(ctx, requesterID)
		if err != nil {
			if errors.Is(err, userRepo.ErrProfileNotFound) {
				return ErrAccessDenied
			}
			return fmt.Errorf("%w: checkViewAccess - repository error: %v", ErrInternal, err)
		}
		if profile.HasLinkedStudent() && *profile.StudentID == studentID {
			return nil
		}
	}

	return ErrAccessDenied
}

// buildDutyList обогащает бронирования данными расписаний
func (s *Service) buildDutyList(ctx context.Context, bookings []*domain.Booking) (*models.DutyListResponse, error) {
	resp := &models.DutyListResponse{
		Duties: make([]models.DutyResponse, 0, len(bookings)),
	}

	scheduleCache := make(map[int64]*domain.Schedule)
	for _, booking := range bookings {
		schedule, ok := scheduleCache[booking.ScheduleID]
		if !ok {
			var err error
			schedule, err = s.getSchedule(ctx, booking.ScheduleID, "buildDutyList")
			if err != nil {
				return nil, err
			}
			scheduleCache[booking.ScheduleID] = schedule
		}
		resp.Duties = append(resp.Duties, *models.FromDomainDuty(booking, schedule))
	}

	return resp, nil
}

// recordAudit пишет запись журнала, не прерывая основной сценарий
func (s *Service) recordAudit(ctx context.Context, entry *domain.DutyLog) {
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("recordAudit: failed to record %s for schedule=%d: %v",
			entry.Action, entry.ScheduleID, err)
	}
}

// notifyCancellation уведомляет заинтересованные стороны об отмене.
// Ошибки логируются и не прерывают сценарий.
func (s *Service) notifyCancellation(ctx context.Context, booking *domain.Booking, schedule *domain.Schedule, req *models.CancelDutyRequest) {
	dateStr := schedule.Date.Format(domain.DateFormat)

	if req.UserID != booking.StudentID {
		// Отмена админом - уведомляем студента
		err := s.notifications.Create(ctx, &domain.Notification{
			UserID:  booking.StudentID,
			Title:   "Duty Cancelled",
			Message: fmt.Sprintf("Your duty on %s at %s was cancelled by an administrator", dateStr, schedule.Location),
			Type:    domain.NotificationWarning,
		})
		if err != nil {
			s.logger.Error("notifyCancellation: failed to notify student=%d: %v", booking.StudentID, err)
		}
		return
	}

	// Отмена студентом - уведомляем админов
	adminIDs, err := s.users.GetAdminIDs(ctx)
	if err != nil {
		s.logger.Error("notifyCancellation: failed to fetch admin ids: %v", err)
		return
	}

	notifications := make([]*domain.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notifications = append(notifications, &domain.Notification{
			UserID:  adminID,
			Title:   "Duty Cancelled",
			Message: fmt.Sprintf("Student %d cancelled their duty on %s at %s", booking.StudentID, dateStr, schedule.Location),
			Type:    domain.NotificationInfo,
		})
	}
	if err := s.notifications.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error("notifyCancellation: failed to notify admins: %v", err)
	}
}
