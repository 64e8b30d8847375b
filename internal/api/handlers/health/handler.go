package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
)

// Pinger проверка доступности БД
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// HealthResponse HTTP response model
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, status, resp)
}
