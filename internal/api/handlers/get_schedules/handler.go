package get_schedules

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
)

const msgInvalidFilter = "invalid filter parameters"

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

// Handle GET /api/v1/schedules?startDate=...&endDate=...&location=...&status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	req := &models.ListSchedulesRequest{
		RequesterID: identity.UserID,
		Role:        identity.Role,
	}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		req.StartDate = &raw
	}
	if raw := query.Get("endDate"); raw != "" {
		req.EndDate = &raw
	}
	if raw := query.Get("location"); raw != "" {
		req.Location = &raw
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /schedules - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /schedules - Failed to fetch schedules: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules - Fetched %d schedules: user_id=%d", len(result.Schedules), identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
