package cancel_duty

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDutyID      = "invalid duty id"
	msgDutyNotFound       = "duty booking not found"
	msgAccessDenied       = "you can only cancel your own duty"
	msgSameDayCancel      = "duty cannot be cancelled on the day of the duty"
	msgCannotCancel       = "duty cannot be cancelled in its current status"
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

// Handle PATCH /api/v1/duties/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dutyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /duties/{id}/cancel - Invalid duty id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDutyID)
		return
	}

	// Тело опционально - отмена без причины допустима
	var req CancelDutyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /duties/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PATCH /duties/{id}/cancel - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), dutyID, &models.CancelDutyRequest{
		UserID:             identity.UserID,
		Role:               identity.Role,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrDutyNotFound), errors.Is(err, duties.ErrScheduleNotFound):
			h.logger.Warn("PATCH /duties/{id}/cancel - Duty not found: duty_id=%d", dutyID)
			handlers.RespondNotFound(w, msgDutyNotFound)

		case errors.Is(err, duties.ErrSameDayCancelForbidden):
			h.logger.Warn("PATCH /duties/{id}/cancel - Same-day cancellation: duty_id=%d, user_id=%d",
				dutyID, identity.UserID)
			handlers.RespondBadRequest(w, msgSameDayCancel)

		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("PATCH /duties/{id}/cancel - Access denied: duty_id=%d, user_id=%d",
				dutyID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, duties.ErrCannotCancel):
			h.logger.Warn("PATCH /duties/{id}/cancel - Cannot cancel: duty_id=%d", dutyID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /duties/{id}/cancel - Failed to cancel duty: duty_id=%d, error=%v",
				dutyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /duties/{id}/cancel - Duty cancelled successfully: duty_id=%d, user_id=%d",
		dutyID, identity.UserID)
	w.WriteHeader(http.StatusNoContent)
}
