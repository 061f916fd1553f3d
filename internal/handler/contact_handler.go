package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// maxSubmitBody caps the size of a contact form request body.
const maxSubmitBody = 64 << 10

const thankYouMessage = "Thank you for your message! I will get back to you soon."

// ContactHandler handles contact form submission and the message inbox.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// Submit handles POST /api/contact.
// name, email and message are required; phone and subject are optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var sub model.ContactSubmission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&sub); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid JSON body"})
		return
	}

	msg, err := h.contactService.Submit(r.Context(), &sub)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": ve.Reason})
			return
		}
		slog.Error("contact submit failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(submitResponse{
		Success: true,
		Message: thankYouMessage,
		ID:      msg.ID,
	})
}

type listResponse struct {
	Success  bool                    `json:"success"`
	Messages []*model.ContactMessage `json:"messages"`
	Count    int                     `json:"count"`
}

// List handles GET /api/messages. Messages are returned newest first.
// Supports the query param status (all/unread/read/...).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	opts := model.ContactListOptions{
		Status: r.URL.Query().Get("status"),
		Sort:   "desc",
	}
	if s := r.URL.Query().Get("sort"); s == "asc" || s == "desc" {
		opts.Sort = s
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	_ = json.NewEncoder(w).Encode(listResponse{
		Success:  true,
		Messages: messages,
		Count:    len(messages),
	})
}

// UpdateStatus handles PUT /api/messages/{id}.
// The body may carry {"status": "..."}; it defaults to "read".
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid message id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	// An empty body is allowed and means "read".
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid JSON body"})
		return
	}

	msg, err := h.contactService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoMessages):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "No messages found"})
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Message not found"})
		default:
			slog.Error("contact status update failed", "error", err, "id", id)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		}
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": fmt.Sprintf("Message status updated to %s", msg.Status),
	})
}
