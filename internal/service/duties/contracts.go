package duties

import (
	"context"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований дежурств
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Complete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний дежурств
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// CancelMarkRepository интерфейс репозитория меток отмены
type CancelMarkRepository interface {
	Record(ctx context.Context, mark *domain.CancelMark) error
}

// AuditRepository интерфейс журнала действий
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.DutyLog) error
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
}

// UserRepository интерфейс репозитория профилей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetAdminIDs(ctx context.Context) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
