package get_parent_duties

import (
	"errors"
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/duties"
)

const (
	msgInvalidParentID = "invalid parent id"
	msgInvalidStatus   = "invalid status filter"
	msgAccessDenied    = "access denied"
	msgNoLinkedStudent = "no student is linked to this parent"
	msgParentNotFound  = "parent profile not found"
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

// Handle GET /api/v1/parents/{parentId}/duties?status=booked
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	parentID, err := handlers.PathInt64(r, "parentId")
	if err != nil {
		h.logger.Warn("GET /parents/{parentId}/duties - Invalid parent id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParentID)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.ListChildDuties(r.Context(), parentID, identity.UserID, identity.Role, status)
	if err != nil {
		switch {
		case errors.Is(err, duties.ErrAccessDenied):
			h.logger.Warn("GET /parents/{parentId}/duties - Access denied: parent_id=%d, user_id=%d",
				parentID, identity.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, duties.ErrNoLinkedStudent):
			h.logger.Warn("GET /parents/{parentId}/duties - No linked student: parent_id=%d", parentID)
			handlers.RespondNotFound(w, msgNoLinkedStudent)

		case errors.Is(err, duties.ErrDutyNotFound):
			h.logger.Warn("GET /parents/{parentId}/duties - Parent not found: parent_id=%d", parentID)
			handlers.RespondNotFound(w, msgParentNotFound)

		case errors.Is(err, duties.ErrInvalidInput):
			h.logger.Warn("GET /parents/{parentId}/duties - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /parents/{parentId}/duties - Failed to fetch duties: parent_id=%d, error=%v",
				parentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parents/{parentId}/duties - Fetched %d duties: parent_id=%d",
		len(result.Duties), parentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
