package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit validates sub and appends it. The store assigns id, timestamp and
// the "unread" status.
func (s *contactServiceImpl) Submit(ctx context.Context, sub *model.ContactSubmission) (*model.ContactMessage, error) {
	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}

	msg := sub.ToMessage()
	msg.Status = model.StatusUnread
	if err := s.repo.Append(ctx, msg); err != nil {
		return nil, err
	}
	slog.Info("contact message stored", "id", msg.ID)
	return msg, nil
}

// List returns contact messages according to the given filter/ordering options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus changes the status of a contact message.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = model.StatusRead
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
