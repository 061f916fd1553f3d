package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoMessages is returned by UpdateStatus when no message has ever been
// stored. It matches ErrNotFound under errors.Is.
var ErrNoMessages = &noMessagesError{}

type noMessagesError struct{}

func (*noMessagesError) Error() string        { return "no messages found" }
func (*noMessagesError) Is(target error) bool { return target == ErrNotFound }

// StorageError reports a backing store that exists but cannot be used, such
// as an unreadable file or one holding malformed JSON.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
