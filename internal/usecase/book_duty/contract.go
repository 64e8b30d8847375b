package book_duty

import (
	"context"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByScheduleID(ctx context.Context, scheduleID int64, includeCancelled bool) ([]*domain.Booking, error)
	GetBookedByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// CancelMarkRepository интерфейс репозитория меток отмены
type CancelMarkRepository interface {
	Exists(ctx context.Context, studentID int64, dutyDate, today time.Time) (bool, error)
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
	GetAdminIDs(ctx context.Context) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
