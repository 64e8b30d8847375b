package approve_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules"
)

const (
	msgInvalidScheduleID = "invalid schedule id"
	msgScheduleNotFound  = "duty schedule not found"
	msgNotPending        = "only pending schedules can be approved"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedules/{id}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	scheduleID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /schedules/{id}/approve - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.Approve(r.Context(), scheduleID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PATCH /schedules/{id}/approve - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrInvalidTransition):
			h.logger.Warn("PATCH /schedules/{id}/approve - Not pending: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgNotPending)

		default:
			h.logger.Error("PATCH /schedules/{id}/approve - Failed to approve schedule: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{id}/approve - Schedule approved successfully: schedule_id=%d, admin_id=%d",
		scheduleID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
