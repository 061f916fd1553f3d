package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/portfolio/backend/internal/model"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Message   string `json:"message,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	now := model.NewTimestamp(time.Now()).String()

	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:    "unhealthy",
			Timestamp: now,
			Version:   h.version,
			Message:   "message store unavailable",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "healthy",
		Timestamp: now,
		Version:   h.version,
	})
}
