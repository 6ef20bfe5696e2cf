// -----------------------------------------------------------------------
// Chat history storage backed by badgerhold
// -----------------------------------------------------------------------

package badger

import (
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// HistoryStorage persists chat exchanges keyed by entry ID and indexed by
// session
type HistoryStorage struct {
	store  *badgerhold.Store
	logger arbor.ILogger
}

// NewHistoryStorage creates a chat history storage
func NewHistoryStorage(store *badgerhold.Store, logger arbor.ILogger) *HistoryStorage {
	return &HistoryStorage{store: store, logger: logger}
}

// SaveEntry stores one user/assistant exchange
func (s *HistoryStorage) SaveEntry(entry *models.ChatEntry) error {
	if err := s.store.Upsert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to save chat entry %s: %w", entry.ID, err)
	}
	s.logger.Debug().Str("session_id", entry.SessionID).Str("agent", entry.AgentUsed).Msg("Chat entry saved")
	return nil
}

// RecentBySession returns the most recent entries for a session in
// chronological order, at most limit entries
func (s *HistoryStorage) RecentBySession(sessionID string, limit int) ([]*models.ChatEntry, error) {
	entries, err := s.sessionEntries(sessionID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// TrimSession deletes all but the newest keep entries of a session
func (s *HistoryStorage) TrimSession(sessionID string, keep int) error {
	entries, err := s.sessionEntries(sessionID)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	if len(entries) <= keep {
		return nil
	}

	excess := entries[:len(entries)-keep]
	for _, entry := range excess {
		if err := s.store.Delete(entry.ID, &models.ChatEntry{}); err != nil {
			return fmt.Errorf("failed to trim chat entry %s: %w", entry.ID, err)
		}
	}
	s.logger.Debug().Str("session_id", sessionID).Int("deleted", len(excess)).Msg("Session history trimmed")
	return nil
}

// CountEntries returns the total number of stored exchanges
func (s *HistoryStorage) CountEntries() (int, error) {
	count, err := s.store.Count(&models.ChatEntry{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count chat entries: %w", err)
	}
	return int(count), nil
}

// CountSessions returns the number of distinct sessions
func (s *HistoryStorage) CountSessions() (int, error) {
	var entries []*models.ChatEntry
	if err := s.store.Find(&entries, nil); err != nil {
		return 0, fmt.Errorf("failed to list chat entries: %w", err)
	}
	sessions := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		sessions[entry.SessionID] = struct{}{}
	}
	return len(sessions), nil
}

// sessionEntries loads a session's entries sorted oldest first
func (s *HistoryStorage) sessionEntries(sessionID string) ([]*models.ChatEntry, error) {
	var entries []*models.ChatEntry
	query := badgerhold.Where("SessionID").Eq(sessionID).Index("SessionID")
	if err := s.store.Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}
