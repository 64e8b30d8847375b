package notifications

import (
	"context"
	"errors"
	"fmt"

	notificationRepo "github.com/m04kA/CDS-DutyRosterService/internal/infra/storage/notification"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/notifications/models"
)

// Service сервис для работы с уведомлениями пользователя
type Service struct {
	notifications NotificationRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notifications NotificationRepository, logger Logger) *Service {
	return &Service{
		notifications: notifications,
		logger:        logger,
	}
}

// List получает уведомления пользователя, свежие первыми
func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool) (*models.NotificationListResponse, error) {
	s.logger.Info("List: fetching notifications for user=%d, unreadOnly=%t", userID, unreadOnly)

	notifications, err := s.notifications.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d notifications for user=%d", len(notifications), userID)
	return models.FromDomainNotificationList(notifications), nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	s.logger.Info("MarkRead: marking notification id=%d read for user=%d", id, userID)

	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRead: successfully marked notification id=%d read", id)
	return nil
}
