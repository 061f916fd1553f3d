package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// maxPortfolioBody caps the size of a portfolio replacement document.
const maxPortfolioBody = 1 << 20

// PortfolioHandler serves the portfolio profile document.
type PortfolioHandler struct {
	svc service.PortfolioService
}

// NewPortfolioHandler creates a PortfolioHandler.
func NewPortfolioHandler(svc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// Get handles GET /api/portfolio.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	doc, err := h.svc.Get(r.Context())
	if err != nil {
		slog.Error("portfolio load failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "load_failed"})
		return
	}
	_ = json.NewEncoder(w).Encode(doc)
}

// Replace handles PUT /api/portfolio. The body must be a JSON object and
// replaces the stored document in full.
func (h *PortfolioHandler) Replace(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var doc model.Portfolio
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPortfolioBody)).Decode(&doc); err != nil || doc == nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "portfolio must be a JSON object"})
		return
	}

	if err := h.svc.Replace(r.Context(), doc); err != nil {
		slog.Error("portfolio save failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "save_failed"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Portfolio data updated successfully"})
}

// Section returns a handler serving one top-level section of the document,
// e.g. GET /api/skills.
func (h *PortfolioHandler) Section(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		body, err := h.svc.Section(r.Context(), name)
		if errors.Is(err, service.ErrUnknownSection) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Endpoint not found"})
			return
		}
		if err != nil {
			slog.Error("portfolio section failed", "error", err, "section", name)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "load_failed"})
			return
		}
		_, _ = w.Write(body)
	}
}
