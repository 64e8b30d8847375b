package book_duty

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
	bookDuty "github.com/m04kA/CDS-DutyRosterService/internal/usecase/book_duty"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgStudentsOnly        = "only students can book duties"
	msgScheduleNotFound    = "duty schedule not found"
	msgScheduleNotBookable = "duty schedule is not open for booking"
	msgScheduleFull        = "duty schedule is fully booked"
	msgDuplicateBooking    = "you already booked this duty schedule"
	msgDateConflict        = "you already have a duty on this date"
	msgSameDayRebook       = "you cancelled a duty on this date today, try again tomorrow"
)

type Handler struct {
	useCase BookDutyUseCase
	logger  Logger
}

func NewHandler(useCase BookDutyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/duties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())
	if identity.Role != domain.RoleStudent {
		h.logger.Warn("POST /duties - Non-student booking attempt: user_id=%d, role=%s",
			identity.UserID, identity.Role)
		handlers.RespondForbidden(w, msgStudentsOnly)
		return
	}

	var req BookDutyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /duties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /duties - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookDuty.Request{
		StudentID:  identity.UserID,
		ScheduleID: req.ScheduleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookDuty.ErrScheduleNotFound):
			h.logger.Warn("POST /duties - Schedule not found: schedule_id=%d", req.ScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, bookDuty.ErrScheduleNotBookable):
			h.logger.Warn("POST /duties - Schedule not bookable: schedule_id=%d", req.ScheduleID)
			handlers.RespondBadRequest(w, msgScheduleNotBookable)

		case errors.Is(err, bookDuty.ErrScheduleFull):
			h.logger.Warn("POST /duties - Schedule full: schedule_id=%d, student_id=%d",
				req.ScheduleID, identity.UserID)
			handlers.RespondConflict(w, msgScheduleFull)

		case errors.Is(err, bookDuty.ErrDuplicateBooking):
			h.logger.Warn("POST /duties - Duplicate booking: schedule_id=%d, student_id=%d",
				req.ScheduleID, identity.UserID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, bookDuty.ErrDateConflict):
			h.logger.Warn("POST /duties - Date conflict: schedule_id=%d, student_id=%d",
				req.ScheduleID, identity.UserID)
			handlers.RespondConflict(w, msgDateConflict)

		case errors.Is(err, bookDuty.ErrSameDayRebookBlocked):
			h.logger.Warn("POST /duties - Same-day rebook blocked: schedule_id=%d, student_id=%d",
				req.ScheduleID, identity.UserID)
			handlers.RespondConflict(w, msgSameDayRebook)

		case errors.Is(err, bookDuty.ErrInvalidInput):
			h.logger.Warn("POST /duties - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /duties - Failed to book duty: schedule_id=%d, student_id=%d, error=%v",
				req.ScheduleID, identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /duties - Duty booked successfully: duty_id=%d, student_id=%d", result.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
