package complete_duty

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

const (
	msgInvalidDutyID       = "invalid duty id"
	msgDutyNotFound        = "duty booking not found"
	msgAccessDenied        = "you can only complete your own duty"
	msgScheduleNotApproved = "duty schedule must be approved before completion"
	msgCannotComplete      = "duty cannot be completed in its current status"
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

// Handle PATCH /api/v1/duties/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dutyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /duties/{id}/complete - Invalid duty id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDutyID)
		return
	}

	err = h.service.Complete(r.Context(), dutyID, &models.CompleteDutyRequest{
		UserID: identity.UserID,
		Role:   identity.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrDutyNotFound), errors.Is(err, duties.ErrScheduleNotFound):
			h.logger.Warn("PATCH /duties/{id}/complete - Duty not found: duty_id=%d", dutyID)
			handlers.RespondNotFound(w, msgDutyNotFound)

		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("PATCH /duties/{id}/complete - Access denied: duty_id=%d, user_id=%d",
				dutyID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, duties.ErrScheduleNotApproved):
			h.logger.Warn("PATCH /duties/{id}/complete - Schedule not approved: duty_id=%d", dutyID)
			handlers.RespondBadRequest(w, msgScheduleNotApproved)

		case errors.Is(err, duties.ErrCannotComplete):
			h.logger.Warn("PATCH /duties/{id}/complete - Cannot complete: duty_id=%d", dutyID)
			handlers.RespondBadRequest(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /duties/{id}/complete - Failed to complete duty: duty_id=%d, error=%v",
				dutyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /duties/{id}/complete - Duty completed successfully: duty_id=%d, user_id=%d",
		dutyID, identity.UserID)
	w.WriteHeader(http.StatusNoContent)
}
