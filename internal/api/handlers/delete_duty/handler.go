package delete_duty

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
)

const (
	msgInvalidDutyID = "invalid duty id"
	msgDutyNotFound  = "duty booking not found"
	msgAccessDenied  = "you can only delete your own duty"
	msgCannotDelete  = "duty can only be deleted while the schedule is pending"
)

type Handler struct {
	service DutyService
	logger  Logger
}

func NewHandler(service DutyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/duties/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dutyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /duties/{id} - Invalid duty id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDutyID)
		return
	}

	err = h.service.DeletePending(r.Context(), dutyID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrDutyNotFound), errors.Is(err, duties.ErrScheduleNotFound):
			h.logger.Warn("DELETE /duties/{id} - Duty not found: duty_id=%d", dutyID)
			handlers.RespondNotFound(w, msgDutyNotFound)

		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("DELETE /duties/{id} - Access denied: duty_id=%d, user_id=%d",
				dutyID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, duties.ErrCannotDelete):
			h.logger.Warn("DELETE /duties/{id} - Cannot delete: duty_id=%d", dutyID)
			handlers.RespondBadRequest(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /duties/{id} - Failed to delete duty: duty_id=%d, error=%v", dutyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /duties/{id} - Duty deleted successfully: duty_id=%d, user_id=%d",
		dutyID, identity.UserID)
	w.WriteHeader(http.StatusNoContent)
}
