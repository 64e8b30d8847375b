package reject_schedule

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	MarkCancelled(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CancelAllBooked(ctx context.Context, scheduleID int64, reason string) ([]*domain.Booking, error)
}

// AuditRepository интерфейс журнала действий
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.DutyLog) error
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
