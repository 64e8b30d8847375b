package notifications

import (
	"context"

	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
