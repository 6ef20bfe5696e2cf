package badger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/models"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(&common.BadgerConfig{
		Path:           t.TempDir(),
		ResetOnStartup: false,
	}, common.GetLogger())
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr.(*Manager)
}

func seedSession(t *testing.T, storage *HistoryStorage, sessionID string, count int) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < count; i++ {
		require.NoError(t, storage.SaveEntry(&models.ChatEntry{
			ID:          fmt.Sprintf("%s_entry_%d", sessionID, i),
			SessionID:   sessionID,
			UserMessage: fmt.Sprintf("question %d", i),
			Assistant:   fmt.Sprintf("answer %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestHistoryRecentBySession(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.history

	seedSession(t, storage, "session_a", 5)
	seedSession(t, storage, "session_b", 2)

	entries, err := storage.RecentBySession("session_a", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Most recent three, oldest first
	assert.Equal(t, "question 2", entries[0].UserMessage)
	assert.Equal(t, "question 4", entries[2].UserMessage)
}

func TestHistoryRecentBySessionEmpty(t *testing.T) {
	mgr := testManager(t)

	entries, err := mgr.history.RecentBySession("missing", 3)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryTrimSession(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.history

	seedSession(t, storage, "session_a", 12)
	require.NoError(t, storage.TrimSession("session_a", 10))

	entries, err := storage.RecentBySession("session_a", 0)
	require.NoError(t, err)
	require.Len(t, entries, 12-2)

	// The oldest two are gone
	assert.Equal(t, "question 2", entries[0].UserMessage)
}

func TestHistoryCounts(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.history

	seedSession(t, storage, "session_a", 3)
	seedSession(t, storage, "session_b", 1)

	entries, err := storage.CountEntries()
	require.NoError(t, err)
	assert.Equal(t, 4, entries)

	sessions, err := storage.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 2, sessions)
}
