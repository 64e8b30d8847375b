package reject_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	rejectSchedule "github.com/m04kA/CDS-DutyRosterService/internal/usecase/reject_schedule"
)

const (
	msgInvalidScheduleID = "invalid schedule id"
	msgScheduleNotFound  = "duty schedule not found"
	msgNotPending        = "only pending schedules can be rejected"
)

type Handler struct {
	useCase RejectScheduleUseCase
	logger  Logger
}

func NewHandler(useCase RejectScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedules/{id}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	scheduleID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /schedules/{id}/reject - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectSchedule.Request{
		ScheduleID: scheduleID,
		AdminID:    identity.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectSchedule.ErrScheduleNotFound):
			h.logger.Warn("PATCH /schedules/{id}/reject - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, rejectSchedule.ErrInvalidTransition):
			h.logger.Warn("PATCH /schedules/{id}/reject - Not pending: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgNotPending)

		case errors.Is(err, rejectSchedule.ErrInvalidInput):
			h.logger.Warn("PATCH /schedules/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)

		default:
			h.logger.Error("PATCH /schedules/{id}/reject - Failed to reject schedule: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{id}/reject - Schedule rejected: schedule_id=%d, cancelled=%d, admin_id=%d",
		scheduleID, result.CancelledBookings, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
