// -----------------------------------------------------------------------
// Storage manager - owns the badger store and hands out typed storages
// -----------------------------------------------------------------------

package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

// Manager implements the StorageManager interface over a single badger store
type Manager struct {
	store   *badgerhold.Store
	history *HistoryStorage
	files   *FileStorage
	logger  arbor.ILogger
}

// NewManager opens the store and wires the typed storages
func NewManager(cfg *common.BadgerConfig, logger arbor.ILogger) (interfaces.StorageManager, error) {
	store, err := openStore(cfg.Path, cfg.ResetOnStartup)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("path", cfg.Path).Bool("reset", cfg.ResetOnStartup).Msg("Badger storage opened")

	return &Manager{
		store:   store,
		history: NewHistoryStorage(store, logger),
		files:   NewFileStorage(store, logger),
		logger:  logger,
	}, nil
}

// HistoryStorage returns the chat history storage
func (m *Manager) HistoryStorage() interfaces.HistoryStorage {
	return m.history
}

// FileStorage returns the uploaded-file metadata storage
func (m *Manager) FileStorage() interfaces.FileStorage {
	return m.files
}

// Close closes the underlying store
func (m *Manager) Close() error {
	m.logger.Info().Msg("Closing badger storage")
	return m.store.Close()
}
