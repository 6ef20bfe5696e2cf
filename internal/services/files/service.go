// -----------------------------------------------------------------------
// Upload service - saves uploaded documents to disk and records metadata
// -----------------------------------------------------------------------

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

// allowedTypes maps accepted content types to the extension uploads are
// stored under
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Service stores uploaded documents on disk with metadata in storage
type Service struct {
	dir     string
	storage interfaces.FileStorage
	logger  arbor.ILogger
}

// NewService creates the upload service, ensuring the upload directory exists
func NewService(cfg *common.UploadsConfig, storage interfaces.FileStorage, logger arbor.ILogger) (*Service, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}
	return &Service{dir: cfg.Dir, storage: storage, logger: logger}, nil
}

// Save writes an upload to disk and records its metadata. Returns the stored
// file record including its generated ID.
func (s *Service) Save(filename, contentType string, data []byte) (*models.UploadedFile, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported file type %q: only JPG, PNG, PDF and DOCX are accepted", contentType)
	}

	id := common.NewFileID()
	path := filepath.Join(s.dir, id+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write upload %s: %w", path, err)
	}

	file := &models.UploadedFile{
		ID:          id,
		Filename:    sanitizeFilename(filename),
		Path:        path,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now(),
	}

	if err := s.storage.SaveFile(file); err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info().
		Str("file_id", id).
		Str("filename", file.Filename).
		Int64("size", file.Size).
		Msg("File uploaded")
	return file, nil
}

// Resolve returns the stored file record for an ID
func (s *Service) Resolve(id string) (*models.UploadedFile, error) {
	return s.storage.GetFile(id)
}

// ListStale returns uploads recorded before the cutoff
func (s *Service) ListStale(cutoff time.Time) ([]*models.UploadedFile, error) {
	return s.storage.ListOlderThan(cutoff)
}

// Remove deletes an upload's bytes and metadata
func (s *Service) Remove(file *models.UploadedFile) error {
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload %s: %w", file.Path, err)
	}
	return s.storage.DeleteFile(file.ID)
}

// sanitizeFilename keeps only the base name so stored metadata never carries
// client-controlled paths
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	return name
}
