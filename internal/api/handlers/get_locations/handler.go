package get_locations

import (
	"net/http"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/service/schedules/models"
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

// LocationsResponse HTTP response model
type LocationsResponse struct {
	Locations []models.LocationResponse `json:"locations"`
}

// Handle GET /api/v1/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LocationsResponse{Locations: h.service.Locations()})
}
