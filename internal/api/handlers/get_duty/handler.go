package get_duty

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
	msgAccessDenied  = "access denied"
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

// Handle GET /api/v1/duties/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dutyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /duties/{id} - Invalid duty id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDutyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), dutyID, identity.UserID, identity.Role)
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrDutyNotFound), errors.Is(err, duties.ErrScheduleNotFound):
			h.logger.Warn("GET /duties/{id} - Duty not found: duty_id=%d", dutyID)
			handlers.RespondNotFound(w, msgDutyNotFound)

		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("GET /duties/{id} - Access denied: duty_id=%d, user_id=%d", dutyID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /duties/{id} - Failed to fetch duty: duty_id=%d, error=%v", dutyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /duties/{id} - Duty fetched successfully: duty_id=%d", dutyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
