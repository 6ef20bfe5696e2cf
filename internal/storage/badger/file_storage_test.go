package badger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/lectio/internal/models"
)

func TestFileStorageRoundTrip(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.files

	file := &models.UploadedFile{
		ID:          "file_abc",
		Filename:    "report.pdf",
		Path:        "/tmp/file_abc.pdf",
		ContentType: "application/pdf",
		Size:        1234,
		UploadedAt:  time.Now(),
	}
	require.NoError(t, storage.SaveFile(file))

	got, err := storage.GetFile("file_abc")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Filename)
	assert.Equal(t, int64(1234), got.Size)

	count, err := storage.CountFiles()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFileStorageNotFound(t *testing.T) {
	mgr := testManager(t)

	_, err := mgr.files.GetFile("file_missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileStorageListOlderThan(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.files

	now := time.Now()
	require.NoError(t, storage.SaveFile(&models.UploadedFile{ID: "file_old", UploadedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, storage.SaveFile(&models.UploadedFile{ID: "file_new", UploadedAt: now}))

	stale, err := storage.ListOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "file_old", stale[0].ID)
}

func TestFileStorageDelete(t *testing.T) {
	mgr := testManager(t)
	storage := mgr.files

	require.NoError(t, storage.SaveFile(&models.UploadedFile{ID: "file_x", UploadedAt: time.Now()}))
	require.NoError(t, storage.DeleteFile("file_x"))

	_, err := storage.GetFile("file_x")
	assert.ErrorIs(t, err, ErrFileNotFound)

	// Deleting a missing file is not an error
	assert.NoError(t, storage.DeleteFile("file_x"))
}
