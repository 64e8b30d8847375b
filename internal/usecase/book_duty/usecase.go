package book_duty

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
)

// UseCase use case бронирования дежурства студентом
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	cancelMarks   CancelMarkRepository
	auditLog      AuditRepository
	notifications NotificationRepository
	users         UserRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	cancelMarks CancelMarkRepository,
	auditLog AuditRepository,
	notifications NotificationRepository,
	users UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		cancelMarks:   cancelMarks,
		auditLog:      auditLog,
		notifications: notifications,
		users:         users,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет бронирование дежурства
// Пречеки дают понятные ошибки, а авторитетные гарантии (вместимость,
// уникальность, одно дежурство в день) обеспечивают ограничения БД внутри
// сериализуемой транзакции - их нарушения транслируются в те же ошибки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookDuty: student=%d, schedule=%d", req.StudentID, req.ScheduleID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookDuty: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking
	var schedule *domain.Schedule

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем расписание с блокировкой (FOR UPDATE)
		var err error
		schedule, err = uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("BookDuty: schedule id=%d not found", req.ScheduleID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("BookDuty: failed to get schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 3.2. Отменённое или прошедшее расписание бронировать нельзя
		if schedule.IsCancelled() {
			uc.logger.Warn("BookDuty: schedule id=%d is cancelled", req.ScheduleID)
			return ErrScheduleNotBookable
		}
		if schedule.Date.Before(domain.DateOnly(now)) {
			uc.logger.Warn("BookDuty: schedule id=%d date %s is in the past",
				req.ScheduleID, schedule.Date.Format(domain.DateFormat))
			return ErrScheduleNotBookable
		}

		// 3.3. Получаем активные бронирования расписания с блокировкой
		bookings, err := uc.bookingRepo.GetByScheduleID(txCtx, req.ScheduleID, false)
		if err != nil {
			uc.logger.Error("BookDuty: failed to get bookings for schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.4. Проверяем вместимость
		if domain.IsFull(schedule, bookings) {
			uc.logger.Warn("BookDuty: schedule id=%d is full, %d/%d seats taken",
				req.ScheduleID, domain.ActiveCount(bookings), schedule.MaxStudents)
			return fmt.Errorf("%w (%d/%d)", ErrScheduleFull, domain.ActiveCount(bookings), schedule.MaxStudents)
		}

		// 3.5. Проверяем повторное бронирование того же расписания
		for _, b := range bookings {
			if b.StudentID == req.StudentID && b.IsActive() {
				uc.logger.Warn("BookDuty: student=%d already booked schedule id=%d", req.StudentID, req.ScheduleID)
				return ErrDuplicateBooking
			}
		}

		// 3.6. Проверяем правило "одно дежурство в день"
		_, err = uc.bookingRepo.GetBookedByStudentAndDate(txCtx, req.StudentID, schedule.Date)
		if err == nil {
			uc.logger.Warn("BookDuty: student=%d already has a duty on %s",
				req.StudentID, schedule.Date.Format(domain.DateFormat))
			return ErrDateConflict
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("BookDuty: failed to check date conflict for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to check date conflict: %v", ErrInternal, err)
		}

		// 3.7. Проверяем метку отмены: дату, отменённую сегодня,
		// нельзя забронировать до завтра
		blocked, err := uc.cancelMarks.Exists(txCtx, req.StudentID, domain.DateOnly(schedule.Date), domain.DateOnly(now))
		if err != nil {
			uc.logger.Error("BookDuty: failed to check cancel marks for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to check cancel marks: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("BookDuty: student=%d cancelled %s today, rebooking blocked",
				req.StudentID, schedule.Date.Format(domain.DateFormat))
			return ErrSameDayRebookBlocked
		}

		// 3.8. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ScheduleID:  req.ScheduleID,
			StudentID:   req.StudentID,
			BookingTime: now,
			Status:      domain.BookingStatusBooked,
		})
		if err != nil {
			return uc.mapCreateError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookDuty: successfully booked duty id=%d for student=%d", result.ID, req.StudentID)

	// 4. Журнал и уведомления пишутся после коммита и не влияют на результат
	uc.recordAudit(ctx, result)
	uc.notifyAdmins(ctx, result, schedule)

	return &Response{
		ID:          result.ID,
		ScheduleID:  result.ScheduleID,
		StudentID:   result.StudentID,
		Status:      string(result.Status),
		Date:        schedule.Date.Format(domain.DateFormat),
		Location:    schedule.Location,
		ShiftStart:  schedule.ShiftStart.String(),
		ShiftEnd:    schedule.ShiftEnd.String(),
		BookingTime: result.BookingTime,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// mapCreateError транслирует ошибки ограничений БД в ошибки usecase.
// Сценарий гонки: пречек прошёл, но конкурентная транзакция успела занять
// место - клиент получает ту же ошибку, что и при пречеке.
func (uc *UseCase) mapCreateError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrDuplicateActiveBooking):
		uc.logger.Warn("BookDuty: duplicate booking rejected by database")
		return ErrDuplicateBooking
	case errors.Is(err, bookingRepo.ErrScheduleFull):
		uc.logger.Warn("BookDuty: full schedule rejected by database")
		return ErrScheduleFull
	case errors.Is(err, bookingRepo.ErrDateConflict):
		uc.logger.Warn("BookDuty: date conflict rejected by database")
		return ErrDateConflict
	default:
		uc.logger.Error("BookDuty: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

// recordAudit пишет запись журнала, не прерывая основной сценарий
func (uc *UseCase) recordAudit(ctx context.Context, booking *domain.Booking) {
	err := uc.auditLog.Record(ctx, &domain.DutyLog{
		ScheduleID:  booking.ScheduleID,
		BookingID:   &booking.ID,
		Action:      domain.AuditActionBooked,
		PerformedBy: booking.StudentID,
		TargetUser:  &booking.StudentID,
	})
	if err != nil {
		uc.logger.Error("BookDuty: failed to record audit log for booking id=%d: %v", booking.ID, err)
	}
}

// notifyAdmins уведомляет админов о новом бронировании, не прерывая сценарий
func (uc *UseCase) notifyAdmins(ctx context.Context, booking *domain.Booking, schedule *domain.Schedule) {
	adminIDs, err := uc.users.GetAdminIDs(ctx)
	if err != nil {
		uc.logger.Error("BookDuty: failed to fetch admin ids: %v", err)
		return
	}

	dateStr := schedule.Date.Format(domain.DateFormat)
	notifications := make([]*domain.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notifications = append(notifications, &domain.Notification{
			UserID:  adminID,
			Title:   "New Duty Booking",
			Message: fmt.Sprintf("Student %d booked a duty on %s at %s", booking.StudentID, dateStr, schedule.Location),
			Type:    domain.NotificationInfo,
		})
	}

	if err := uc.notifications.CreateBatch(ctx, notifications); err != nil {
		uc.logger.Error("BookDuty: failed to notify admins for booking id=%d: %v", booking.ID, err)
	}
}
