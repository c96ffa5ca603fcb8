package session_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/session"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadMissingFileMeansNoSessions(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), quietLogger())

	sessions, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path, quietLogger())
	user := &models.User{ID: 7, Name: "Jan", Email: "jan@example.com"}

	require.NoError(t, store.Save(42, user))

	sessions, err := store.Load()
	require.NoError(t, err)
	require.Contains(t, sessions, int64(42))
	assert.Equal(t, "jan@example.com", sessions[42].Email)
}

func TestClearRemovesOneSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path, quietLogger())
	require.NoError(t, store.Save(1, &models.User{ID: 7, Email: "a@example.com"}))
	require.NoError(t, store.Save(2, &models.User{ID: 8, Email: "b@example.com"}))

	require.NoError(t, store.Clear(1))

	sessions, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, sessions, int64(1))
	assert.Contains(t, sessions, int64(2))

	// Clearing a chat that has no session is a no-op
	require.NoError(t, store.Clear(99))
}

func TestCorruptedFileIsRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	store := session.NewStore(path, quietLogger())

	sessions, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, sessions)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
