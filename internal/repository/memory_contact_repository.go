package repository

import (
	"context"
	"sync"

	"github.com/portfolio/backend/internal/model"
)

// MemoryContactRepository is an in-process ContactRepository. Nothing survives
// a restart; it backs tests and STORE_DRIVER=memory.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	messages []*model.ContactMessage
	appended bool
	now      Clock
}

// NewMemoryContactRepository creates an empty MemoryContactRepository.
// A nil clock uses time.Now.
func NewMemoryContactRepository(now Clock) *MemoryContactRepository {
	return &MemoryContactRepository{now: clockOrDefault(now)}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Append(_ context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prepareAppend(msg, len(r.messages), r.now)
	r.messages = append(r.messages, cloneMessage(msg))
	r.appended = true
	return nil
}

func (r *MemoryContactRepository) List(_ context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ContactMessage, len(r.messages))
	for i, m := range r.messages {
		out[i] = cloneMessage(m)
	}
	return model.ApplyListOptions(out, opts), nil
}

func (r *MemoryContactRepository) UpdateStatus(_ context.Context, id int, status string) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.appended {
		return nil, ErrNoMessages
	}
	for _, m := range r.messages {
		if m.ID == id {
			m.Status = status
			return cloneMessage(m), nil
		}
	}
	return nil, ErrNotFound
}

// Ping always succeeds.
func (r *MemoryContactRepository) Ping(_ context.Context) error {
	return nil
}
