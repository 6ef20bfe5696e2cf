package interfaces

import (
	"time"

	"github.com/ternarybob/lectio/internal/models"
)

// HistoryStorage persists chat exchanges per session
type HistoryStorage interface {
	SaveEntry(entry *models.ChatEntry) error
	RecentBySession(sessionID string, limit int) ([]*models.ChatEntry, error)
	TrimSession(sessionID string, keep int) error
	CountEntries() (int, error)
	CountSessions() (int, error)
}

// FileStorage persists uploaded-file metadata; bytes live on disk
type FileStorage interface {
	SaveFile(file *models.UploadedFile) error
	GetFile(id string) (*models.UploadedFile, error)
	ListOlderThan(cutoff time.Time) ([]*models.UploadedFile, error)
	DeleteFile(id string) error
	CountFiles() (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	HistoryStorage() HistoryStorage
	FileStorage() FileStorage
	Close() error
}
