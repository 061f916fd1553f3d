package repository

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/storage"
)

// MessagesKey is the document holding the contact message array.
const MessagesKey = "messages.json"

// FileContactRepository keeps all contact messages as one JSON array document.
// Every operation reads the whole document and, when mutating, rewrites it.
// mu serialises the read-modify-write cycle within the process.
type FileContactRepository struct {
	mu    sync.Mutex
	store *storage.LocalStorage
	key   string
	now   Clock
}

// NewFileContactRepository creates a FileContactRepository writing key under store.
// A nil clock uses time.Now.
func NewFileContactRepository(store *storage.LocalStorage, key string, now Clock) *FileContactRepository {
	if key == "" {
		key = MessagesKey
	}
	return &FileContactRepository{store: store, key: key, now: clockOrDefault(now)}
}

// Ensure FileContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*FileContactRepository)(nil)

// load reads the message array. exists is false when the file is absent, in
// which case messages is empty and err is nil.
func (r *FileContactRepository) load(ctx context.Context) (messages []*model.ContactMessage, exists bool, err error) {
	if err := r.store.Load(ctx, r.key, &messages); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.ContactMessage{}, false, nil
		}
		return nil, false, &StorageError{Op: "load", Path: r.store.Path(r.key), Err: err}
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	return messages, true, nil
}

func (r *FileContactRepository) save(ctx context.Context, messages []*model.ContactMessage) error {
	if err := r.store.Save(ctx, r.key, messages); err != nil {
		return &StorageError{Op: "save", Path: r.store.Path(r.key), Err: err}
	}
	return nil
}

// Append reads the current array, assigns the next id as len+1 and rewrites the file.
func (r *FileContactRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, _, err := r.load(ctx)
	if err != nil {
		return err
	}

	prepareAppend(msg, len(messages), r.now)
	messages = append(messages, cloneMessage(msg))
	return r.save(ctx, messages)
}

// List returns the stored messages filtered and ordered by opts.
func (r *FileContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.ApplyListOptions(messages, opts), nil
}

// UpdateStatus overwrites the status of the first message with the given id.
func (r *FileContactRepository) UpdateStatus(ctx context.Context, id int, status string) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, exists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoMessages
	}

	for _, m := range messages {
		if m.ID != id {
			continue
		}
		m.Status = status
		if err := r.save(ctx, messages); err != nil {
			return nil, err
		}
		return cloneMessage(m), nil
	}
	return nil, ErrNotFound
}

// Ping checks that the data directory is usable.
func (r *FileContactRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
