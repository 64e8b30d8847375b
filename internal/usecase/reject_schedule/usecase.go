package reject_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	scheduleRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/schedule"
)

// UseCase use case отклонения расписания админом
// Отклонение каскадом отменяет все активные бронирования расписания
type UseCase struct {
	scheduleRepo  ScheduleRepository
	bookingRepo   BookingRepository
	auditLog      AuditRepository
	notifications NotificationRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	auditLog AuditRepository,
	notifications NotificationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		auditLog:      auditLog,
		notifications: notifications,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute отклоняет расписание
// Смена статуса и каскадная отмена бронирований выполняются в одной
// транзакции: либо расписание отклонено и все бронирования отменены,
// либо ничего не изменилось.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectSchedule: schedule=%d, admin=%d", req.ScheduleID, req.AdminID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectSchedule: validation failed: %v", err)
		return nil, err
	}

	var cancelled []*domain.Booking
	var schedule *domain.Schedule

	// 2. Переход статуса и каскад в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем расписание с блокировкой (FOR UPDATE)
		var err error
		schedule, err = uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("RejectSchedule: schedule id=%d not found", req.ScheduleID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("RejectSchedule: failed to get schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 2.2. Переводим расписание в cancelled (только из pending)
		if err := uc.scheduleRepo.MarkCancelled(txCtx, req.ScheduleID); err != nil {
			if errors.Is(err, scheduleRepo.ErrNotPending) {
				uc.logger.Warn("RejectSchedule: schedule id=%d is not pending", req.ScheduleID)
				return ErrInvalidTransition
			}
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			uc.logger.Error("RejectSchedule: failed to cancel schedule id=%d: %v", req.ScheduleID, err)
			return fmt.Errorf("%w: failed to cancel schedule: %v", ErrInternal, err)
		}

		// 2.3. Каскадно отменяем все активные бронирования
		cancelled, err = uc.bookingRepo.CancelAllBooked(txCtx, req.ScheduleID, domain.CancelReasonScheduleRejected)
		if err != nil {
			uc.logger.Error("RejectSchedule: failed to cancel bookings for schedule id=%d: %v",
				req.ScheduleID, err)
			return fmt.Errorf("%w: failed to cancel bookings: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RejectSchedule: schedule id=%d rejected, %d bookings cancelled",
		req.ScheduleID, len(cancelled))

	// 3. Журнал и уведомления пишутся после коммита и не влияют на результат
	uc.recordAudit(ctx, req, cancelled)
	uc.notifyStudents(ctx, schedule, cancelled)

	return &Response{
		ScheduleID:        req.ScheduleID,
		Status:            string(domain.ScheduleStatusCancelled),
		CancelledBookings: len(cancelled),
	}, nil
}

// recordAudit пишет записи журнала, не прерывая основной сценарий
func (uc *UseCase) recordAudit(ctx context.Context, req *Request, cancelled []*domain.Booking) {
	err := uc.auditLog.Record(ctx, &domain.DutyLog{
		ScheduleID:  req.ScheduleID,
		Action:      domain.AuditActionStatusCancelled,
		PerformedBy: req.AdminID,
		Notes:       fmt.Sprintf("%d bookings cancelled", len(cancelled)),
	})
	if err != nil {
		uc.logger.Error("RejectSchedule: failed to record audit log for schedule id=%d: %v",
			req.ScheduleID, err)
	}

	for _, b := range cancelled {
		err := uc.auditLog.Record(ctx, &domain.DutyLog{
			ScheduleID:  req.ScheduleID,
			BookingID:   &b.ID,
			Action:      domain.AuditActionCancelled,
			PerformedBy: req.AdminID,
			TargetUser:  &b.StudentID,
			Notes:       domain.CancelReasonScheduleRejected,
		})
		if err != nil {
			uc.logger.Error("RejectSchedule: failed to record audit log for booking id=%d: %v", b.ID, err)
		}
	}
}

// notifyStudents уведомляет студентов об отклонении, не прерывая сценарий
func (uc *UseCase) notifyStudents(ctx context.Context, schedule *domain.Schedule, cancelled []*domain.Booking) {
	if len(cancelled) == 0 {
		return
	}

	dateStr := schedule.Date.Format(domain.DateFormat)
	notifications := make([]*domain.Notification, 0, len(cancelled))
	for _, b := range cancelled {
		notifications = append(notifications, &domain.Notification{
			UserID:  b.StudentID,
			Title:   "Duty Schedule Rejected",
			Message: fmt.Sprintf("The duty schedule on %s at %s was rejected, your booking has been cancelled", dateStr, schedule.Location),
			Type:    domain.NotificationWarning,
		})
	}

	if err := uc.notifications.CreateBatch(ctx, notifications); err != nil {
		uc.logger.Error("RejectSchedule: failed to notify students for schedule id=%d: %v",
			schedule.ID, err)
	}
}
