package get_notifications

import (
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
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

// Handle GET /api/v1/notifications?unread=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	unreadOnly := r.URL.Query().Get("unread") == "true"

	result, err := h.service.List(r.Context(), identity.UserID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to fetch notifications: user_id=%d, error=%v",
			identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications - Fetched %d notifications: user_id=%d",
		len(result.Notifications), identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
