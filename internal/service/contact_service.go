package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the submission and stores it. It returns the stored
	// record with id, timestamp and status filled in, or a *ValidationError.
	Submit(ctx context.Context, sub *model.ContactSubmission) (*model.ContactMessage, error)

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// UpdateStatus changes the status of a contact message. An empty status
	// marks the message as read.
	UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error)
}
