package domain

import "time"

// NotificationType severity of a user-visible notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification represents a stored user notification.
// Доставка (колокольчик, push) - забота клиента; сервис только пишет
// и отдаёт записи.
type Notification struct {
	ID      int64
	UserID  int64
	Title   string
	Message string
	Type    NotificationType
	Read    bool
	ReadAt  *time.Time

	CreatedAt time.Time
}
