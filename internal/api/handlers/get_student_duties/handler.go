package get_student_duties

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties/models"
)

const (
	msgInvalidStudentID = "invalid student id"
	msgInvalidStatus    = "invalid status filter"
	msgAccessDenied     = "access denied"
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

// Handle GET /api/v1/students/{studentId}/duties?status=booked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	studentID, err := handlers.PathInt64(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /students/{studentId}/duties - Invalid student id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	req := &models.ListStudentDutiesRequest{
		StudentID:   studentID,
		RequesterID: identity.UserID,
		Role:        identity.Role,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListStudentDuties(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("GET /students/{studentId}/duties - Access denied: student_id=%d, user_id=%d",
				studentID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, duties.ErrInvalidInput):
			h.logger.Warn("GET /students/{studentId}/duties - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{studentId}/duties - Failed to fetch duties: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{studentId}/duties - Fetched %d duties: student_id=%d",
		len(result.Duties), studentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
