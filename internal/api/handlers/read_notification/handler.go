package read_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/notifications"
)

const (
	msgInvalidNotificationID = "invalid notification id"
	msgNotificationNotFound  = "notification not found"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/{id}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	notificationID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Not found: notification_id=%d, user_id=%d",
				notificationID, identity.UserID)
			handlers.RespondNotFound(w, msgNotificationNotFound)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: notification_id=%d, error=%v",
				notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Notification marked read: notification_id=%d, user_id=%d",
		notificationID, identity.UserID)
	w.WriteHeader(http.StatusNoContent)
}
