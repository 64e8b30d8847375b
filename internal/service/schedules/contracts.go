package schedules

import (
	"context"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error)
	Approve(ctx context.Context, id int64, adminID int64) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByScheduleID(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error)
}

// AuditRepository интерфейс журнала действий
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.DutyLog) error
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
}

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
