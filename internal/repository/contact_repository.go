package repository

import (
	"context"
	"time"

	"github.com/portfolio/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Append stores msg as a new record. It assigns msg.ID, msg.Timestamp and,
	// when empty, msg.Status.
	Append(ctx context.Context, msg *model.ContactMessage) error

	// List returns the stored messages filtered and ordered by opts.
	// An empty store yields an empty slice, never an error.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// UpdateStatus overwrites the status of the message with the given id and
	// returns the updated record. Unknown ids yield ErrNotFound; a store with
	// no messages at all yields ErrNoMessages.
	UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error)
}

// Clock returns the current time. Repositories use it to stamp new records.
type Clock func() time.Time

// prepareAppend fills the store-owned fields of msg for position count+1.
func prepareAppend(msg *model.ContactMessage, count int, now Clock) {
	msg.ID = count + 1
	msg.Timestamp = model.NewTimestamp(now())
	if msg.Status == "" {
		msg.Status = model.StatusUnread
	}
	if msg.Subject == "" {
		msg.Subject = model.DefaultSubject
	}
}

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

func cloneMessage(m *model.ContactMessage) *model.ContactMessage {
	c := *m
	return &c
}
