// -----------------------------------------------------------------------
// Uploaded-file metadata storage backed by badgerhold
// -----------------------------------------------------------------------

package badger

import (
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ErrFileNotFound is returned when a file ID has no stored metadata
var ErrFileNotFound = errors.New("file not found")

// FileStorage persists upload metadata; the bytes themselves stay on disk
type FileStorage struct {
	store  *badgerhold.Store
	logger arbor.ILogger
}

// NewFileStorage creates an uploaded-file metadata storage
func NewFileStorage(store *badgerhold.Store, logger arbor.ILogger) *FileStorage {
	return &FileStorage{store: store, logger: logger}
}

// SaveFile stores metadata for an upload
func (s *FileStorage) SaveFile(file *models.UploadedFile) error {
	if err := s.store.Upsert(file.ID, file); err != nil {
		return fmt.Errorf("failed to save file metadata %s: %w", file.ID, err)
	}
	s.logger.Debug().Str("file_id", file.ID).Str("filename", file.Filename).Msg("File metadata saved")
	return nil
}

// GetFile returns metadata for a file ID
func (s *FileStorage) GetFile(id string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	if err := s.store.Get(id, &file); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to load file metadata %s: %w", id, err)
	}
	return &file, nil
}

// ListOlderThan returns files uploaded before the cutoff
func (s *FileStorage) ListOlderThan(cutoff time.Time) ([]*models.UploadedFile, error) {
	var files []*models.UploadedFile
	query := badgerhold.Where("UploadedAt").Lt(cutoff)
	if err := s.store.Find(&files, query); err != nil {
		return nil, fmt.Errorf("failed to list stale files: %w", err)
	}
	return files, nil
}

// DeleteFile removes a file's metadata
func (s *FileStorage) DeleteFile(id string) error {
	if err := s.store.Delete(id, &models.UploadedFile{}); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("failed to delete file metadata %s: %w", id, err)
	}
	return nil
}

// CountFiles returns the number of stored uploads
func (s *FileStorage) CountFiles() (int, error) {
	count, err := s.store.Count(&models.UploadedFile{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return int(count), nil
}
