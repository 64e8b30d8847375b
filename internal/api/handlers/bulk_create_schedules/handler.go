package bulk_create_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPeriod      = "invalid period or days of week"
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

// Handle POST /api/v1/schedules/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /schedules/bulk - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkCreate(r.Context(), req.ToServiceRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules/bulk - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /schedules/bulk - Failed to create schedules: period=%s..%s, error=%v",
				req.StartDate, req.EndDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/bulk - Created %d schedules, skipped %d dates: admin_id=%d",
		len(result.Created), len(result.SkippedDates), identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
