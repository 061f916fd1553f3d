package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/model"
)

func openTestSQLite(t *testing.T, path string, now Clock) *SQLiteContactRepository {
	t.Helper()
	repo, err := OpenSQLiteContactRepository(context.Background(), path, now)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteContactRepository(t *testing.T) {
	runContactRepositoryTests(t, func(t *testing.T, now Clock) ContactRepository {
		return openTestSQLite(t, filepath.Join(t.TempDir(), "messages.db"), now)
	})
}

func TestSQLiteContactRepository_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.db")
	ctx := context.Background()

	first, err := OpenSQLiteContactRepository(ctx, path, stepClock(testBase))
	require.NoError(t, err)
	msg := newMessage("alice")
	require.NoError(t, first.Append(ctx, msg))
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path, nil)
	require.NoError(t, second.Ping(ctx))
	msgs, err := second.List(ctx, model.ContactListOptions{})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.Name, msgs[0].Name)
	assert.True(t, msgs[0].Timestamp.Equal(msg.Timestamp.Time))
}
