package create_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgScheduleExists     = "a duty schedule already exists for this date and location"
	msgPastDate           = "schedule date must not be in the past"
	msgUnknownLocation    = "unknown hospital location"
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

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /schedules - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(identity.UserID))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleExists):
			h.logger.Warn("POST /schedules - Schedule exists: date=%s, location=%s", req.Date, req.Location)
			handlers.RespondConflict(w, msgScheduleExists)

		case errors.Is(err, schedules.ErrPastDate):
			h.logger.Warn("POST /schedules - Past date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, schedules.ErrUnknownLocation):
			h.logger.Warn("POST /schedules - Unknown location: location=%s", req.Location)
			handlers.RespondBadRequest(w, msgUnknownLocation)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /schedules - Failed to create schedule: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created successfully: schedule_id=%d, admin_id=%d",
		result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
